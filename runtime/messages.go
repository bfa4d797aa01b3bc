package runtime

import (
	"time"

	"github.com/odvcencio/furry-menu/terminal"
)

// Message represents an event flowing into the UI.
// Messages come from terminal input, timers, or background goroutines.
type Message interface {
	isMessage()
}

// Custom can be embedded to declare messages outside this package.
type Custom struct{}

func (Custom) isMessage() {}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg represents a mouse input event.
type MouseMsg struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
	// Target is the innermost widget under the pointer. The screen fills it
	// in before dispatch; it is nil when nothing was hit.
	Target Widget
}

func (MouseMsg) isMessage() {}

// TouchMsg represents a touch input event.
type TouchMsg struct {
	Action TouchAction
	// Touches lists active contact points. It is empty for TouchEnd.
	Touches []TouchPoint
	Shift   bool
	Target  Widget
}

func (TouchMsg) isMessage() {}

// TouchPoint is one contact point in page coordinates.
type TouchPoint struct {
	ID           int
	PageX, PageY int
}

// TouchAction identifies a touch phase.
type TouchAction int

const (
	TouchStart TouchAction = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// ScrollMsg reports a scroll that did not come from the mouse wheel.
type ScrollMsg struct {
	X, Y int
}

func (ScrollMsg) isMessage() {}

// PasteMsg represents pasted text from bracketed paste mode.
type PasteMsg struct {
	Text string
}

func (PasteMsg) isMessage() {}

// MouseButton identifies which mouse button was involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Index returns the conventional button number: 0 primary, 1 middle,
// 2 secondary. Other buttons return -1.
func (b MouseButton) Index() int {
	switch b {
	case MouseLeft:
		return 0
	case MouseMiddle:
		return 1
	case MouseRight:
		return 2
	default:
		return -1
	}
}

// IsWheel reports whether b is a wheel step.
func (b MouseButton) IsWheel() bool {
	return b == MouseWheelUp || b == MouseWheelDown
}

// MouseAction identifies what happened with the mouse.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	// MouseClick follows the release of the primary button.
	MouseClick
	// MouseContextMenu follows the press of the secondary button.
	MouseContextMenu
	// MouseOut is sent to the previous target when the pointer leaves it.
	MouseOut
)

// TickMsg is sent on each frame tick for animations.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// InvalidateMsg requests a render pass without forcing a full redraw.
type InvalidateMsg struct{}

func (InvalidateMsg) isMessage() {}

// CallbackMsg runs Fn on the event loop goroutine.
type CallbackMsg struct {
	Fn func()
}

func (CallbackMsg) isMessage() {}
