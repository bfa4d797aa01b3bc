// Package tcellterm implements backend.Backend on top of tcell.
package tcellterm

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-menu/backend"
	"github.com/odvcencio/furry-menu/terminal"
)

// Backend drives a tcell screen with mouse and bracketed paste enabled.
//
// PollEvent must only be called from one goroutine.
type Backend struct {
	screen  tcell.Screen
	decoder terminal.MouseDecoder
	pending []terminal.Event
	pasting bool
	paste   strings.Builder
}

// New creates a backend for the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Wrap(screen), nil
}

// Wrap adapts an existing tcell screen.
func Wrap(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Screen returns the wrapped tcell screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the screen and enables mouse reporting.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	b.decoder.Reset()
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal size in cells.
func (b *Backend) Size() (int, int) {
	return b.screen.Size()
}

// HideCursor hides the text cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// Show flushes pending cell updates.
func (b *Backend) Show() {
	b.screen.Show()
}

// SetContent sets one cell.
func (b *Backend) SetContent(x, y int, mainc rune, combc []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, combc, style)
}

// SetRow writes a run of cells starting at startX.
func (b *Backend) SetRow(y int, startX int, cells []backend.Cell) {
	for i, cell := range cells {
		b.screen.SetContent(startX+i, y, cell.Rune, nil, cell.Style)
	}
}

// PollEvent blocks for the next decoded event.
func (b *Backend) PollEvent() terminal.Event {
	for {
		if len(b.pending) > 0 {
			ev := b.pending[0]
			b.pending = b.pending[1:]
			return ev
		}
		raw := b.screen.PollEvent()
		if raw == nil {
			return nil
		}
		b.pending = append(b.pending, b.convert(raw)...)
	}
}

func (b *Backend) convert(raw tcell.Event) []terminal.Event {
	switch e := raw.(type) {
	case *tcell.EventKey:
		if b.pasting {
			if e.Key() == tcell.KeyRune {
				b.paste.WriteRune(e.Rune())
			} else if e.Key() == tcell.KeyEnter {
				b.paste.WriteByte('\n')
			}
			return nil
		}
		mods := e.Modifiers()
		return []terminal.Event{terminal.KeyEvent{
			Key:   convertKey(e.Key()),
			Rune:  e.Rune(),
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}}
	case *tcell.EventMouse:
		x, y := e.Position()
		held, wheel := convertButtons(e.Buttons())
		decoded := b.decoder.Decode(x, y, held, wheel, convertMods(e.Modifiers()))
		out := make([]terminal.Event, 0, len(decoded))
		for _, ev := range decoded {
			out = append(out, ev)
		}
		return out
	case *tcell.EventResize:
		w, h := e.Size()
		return []terminal.Event{terminal.ResizeEvent{Width: w, Height: h}}
	case *tcell.EventPaste:
		if e.Start() {
			b.pasting = true
			b.paste.Reset()
			return nil
		}
		b.pasting = false
		return []terminal.Event{terminal.PasteEvent{Text: b.paste.String()}}
	case *tcell.EventInterrupt:
		// Injected events (touch, scroll) travel as interrupts.
		if ev, ok := e.Data().(terminal.Event); ok {
			return []terminal.Event{ev}
		}
	}
	return nil
}

func convertButtons(mask tcell.ButtonMask) (held terminal.MouseButton, wheel terminal.MouseButton) {
	switch {
	case mask&tcell.ButtonPrimary != 0:
		held = terminal.MouseLeft
	case mask&tcell.ButtonSecondary != 0:
		held = terminal.MouseRight
	case mask&tcell.ButtonMiddle != 0:
		held = terminal.MouseMiddle
	}
	switch {
	case mask&tcell.WheelUp != 0:
		wheel = terminal.MouseWheelUp
	case mask&tcell.WheelDown != 0:
		wheel = terminal.MouseWheelDown
	}
	return held, wheel
}

func convertMods(m tcell.ModMask) terminal.Modifiers {
	return terminal.Modifiers{
		Alt:   m&tcell.ModAlt != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Shift: m&tcell.ModShift != 0,
	}
}

func convertKey(k tcell.Key) terminal.Key {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune
	case tcell.KeyEnter:
		return terminal.KeyEnter
	case tcell.KeyEscape:
		return terminal.KeyEscape
	case tcell.KeyTab:
		return terminal.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace
	case tcell.KeyUp:
		return terminal.KeyUp
	case tcell.KeyDown:
		return terminal.KeyDown
	case tcell.KeyLeft:
		return terminal.KeyLeft
	case tcell.KeyRight:
		return terminal.KeyRight
	case tcell.KeyHome:
		return terminal.KeyHome
	case tcell.KeyEnd:
		return terminal.KeyEnd
	case tcell.KeyPgUp:
		return terminal.KeyPageUp
	case tcell.KeyPgDn:
		return terminal.KeyPageDown
	case tcell.KeyCtrlC:
		return terminal.KeyCtrlC
	default:
		return terminal.KeyNone
	}
}

var (
	_ backend.Backend   = (*Backend)(nil)
	_ backend.RowWriter = (*Backend)(nil)
)
