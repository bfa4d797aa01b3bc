// Package terminal defines backend-neutral input events.
package terminal

// Event is an input event produced by a backend.
type Event interface {
	isEvent()
}

// Modifiers reports keyboard modifiers held during an event.
type Modifiers struct {
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyEvent is a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) isEvent() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// PasteEvent carries bracketed paste text.
type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}

// MouseButton identifies a mouse button. Values line up with runtime.MouseButton.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// IsWheel reports whether the button is a wheel direction.
func (b MouseButton) IsWheel() bool {
	return b == MouseWheelUp || b == MouseWheelDown
}

// MouseAction identifies what happened. Values line up with runtime.MouseAction.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	MouseClick
	MouseContextMenu
	MouseOut
)

// MouseEvent is a decoded mouse event.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseEvent) isEvent() {}

// TouchAction identifies a touch phase. Values line up with runtime.TouchAction.
type TouchAction int

const (
	TouchStart TouchAction = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// TouchPoint is one contact on a touch surface, in page cells.
type TouchPoint struct {
	ID    int
	PageX int
	PageY int
}

// TouchEvent is a touch-surface event. End and cancel events carry no points.
type TouchEvent struct {
	Action  TouchAction
	Touches []TouchPoint
	Shift   bool
}

func (TouchEvent) isEvent() {}

// ScrollEvent reports a scroll that did not come from the mouse wheel.
type ScrollEvent struct {
	X, Y int
}

func (ScrollEvent) isEvent() {}
