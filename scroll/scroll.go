// Package scroll maps scroll input onto scrollable widgets.
package scroll

import (
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/terminal"
)

// Controller provides scroll control for widgets.
type Controller interface {
	ScrollBy(dx, dy int)
	ScrollTo(x, y int)
	PageBy(pages int)
	ScrollToStart()
	ScrollToEnd()
}

// WheelStep is the number of rows one wheel notch scrolls.
const WheelStep = 1

// WheelDelta returns the vertical delta for a wheel button, or 0.
func WheelDelta(button runtime.MouseButton) int {
	switch button {
	case runtime.MouseWheelUp:
		return -WheelStep
	case runtime.MouseWheelDown:
		return WheelStep
	default:
		return 0
	}
}

// Handle applies wheel presses and paging keys to ctrl.
// It reports whether msg was consumed.
func Handle(ctrl Controller, msg runtime.Message) bool {
	if ctrl == nil {
		return false
	}
	switch m := msg.(type) {
	case runtime.MouseMsg:
		if m.Action != runtime.MousePress {
			return false
		}
		if dy := WheelDelta(m.Button); dy != 0 {
			ctrl.ScrollBy(0, dy)
			return true
		}
	case runtime.KeyMsg:
		switch m.Key {
		case terminal.KeyPageUp:
			ctrl.PageBy(-1)
		case terminal.KeyPageDown:
			ctrl.PageBy(1)
		case terminal.KeyHome:
			ctrl.ScrollToStart()
		case terminal.KeyEnd:
			ctrl.ScrollToEnd()
		default:
			return false
		}
		return true
	}
	return false
}
