// Package sim provides an in-memory backend for tests and scripted sessions.
package sim

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-menu/backend/tcellterm"
	"github.com/odvcencio/furry-menu/terminal"
)

// Backend is a tcell simulation screen with input injection helpers.
//
// Text may be called from any goroutine; it is serialized with Show, which
// redraws the cells Text reads.
type Backend struct {
	*tcellterm.Backend
	mu     sync.Mutex
	screen tcell.SimulationScreen
	width  int
	height int
}

// New creates a simulation backend of the given size.
func New(width, height int) *Backend {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	return &Backend{
		Backend: tcellterm.Wrap(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

// Init initializes the simulation screen at the configured size.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.Backend.Init(); err != nil {
		return err
	}
	b.screen.SetSize(b.width, b.height)
	return nil
}

// Show flushes pending content to the simulated cells.
func (b *Backend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Backend.Show()
}

// Fini shuts the simulation screen down.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Backend.Fini()
}

// InjectMouse reports raw button state at a position.
func (b *Backend) InjectMouse(x, y int, buttons tcell.ButtonMask, mods tcell.ModMask) {
	b.screen.InjectMouse(x, y, buttons, mods)
}

// Press reports a button going down.
func (b *Backend) Press(x, y int, button terminal.MouseButton, shift bool) {
	b.InjectMouse(x, y, buttonMask(button), modMask(shift))
}

// Release reports all buttons up.
func (b *Backend) Release(x, y int) {
	b.InjectMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

// Wheel reports one wheel step.
func (b *Backend) Wheel(x, y int, down bool) {
	mask := tcell.WheelUp
	if down {
		mask = tcell.WheelDown
	}
	b.InjectMouse(x, y, mask, tcell.ModNone)
}

// InjectKey reports a key press.
func (b *Backend) InjectKey(key tcell.Key, r rune) {
	b.screen.InjectKey(key, r, tcell.ModNone)
}

// InjectTouch reports a touch event.
func (b *Backend) InjectTouch(ev terminal.TouchEvent) error {
	return b.screen.PostEvent(tcell.NewEventInterrupt(ev))
}

// InjectScroll reports a non-wheel scroll at a position.
func (b *Backend) InjectScroll(x, y int) error {
	return b.screen.PostEvent(tcell.NewEventInterrupt(terminal.ScrollEvent{X: x, Y: y}))
}

// Text returns the shown screen contents, one line per row.
func (b *Backend) Text() string {
	b.mu.Lock()
	cells, width, height := b.screen.GetContents()
	rows := make([]rune, 0, width*height)
	for _, cell := range cells[:width*height] {
		r := rune(0)
		if len(cell.Runes) > 0 {
			r = cell.Runes[0]
		}
		rows = append(rows, r)
	}
	b.mu.Unlock()

	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := rows[y*width+x]
			if r == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(r)
		}
		if y < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func buttonMask(button terminal.MouseButton) tcell.ButtonMask {
	switch button {
	case terminal.MouseLeft:
		return tcell.ButtonPrimary
	case terminal.MouseRight:
		return tcell.ButtonSecondary
	case terminal.MouseMiddle:
		return tcell.ButtonMiddle
	case terminal.MouseWheelUp:
		return tcell.WheelUp
	case terminal.MouseWheelDown:
		return tcell.WheelDown
	default:
		return tcell.ButtonNone
	}
}

func modMask(shift bool) tcell.ModMask {
	if shift {
		return tcell.ModShift
	}
	return tcell.ModNone
}
