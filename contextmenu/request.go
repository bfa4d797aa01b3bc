package contextmenu

import (
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/furry-menu/runtime"
)

// TargetKey is the payload key holding the widget the gesture landed on.
const TargetKey = "target"

// Payload is data handed to the menu alongside a show request.
type Payload map[string]any

// Target returns the widget stored under TargetKey, or nil.
func (p Payload) Target() runtime.Widget {
	w, _ := p[TargetKey].(runtime.Widget)
	return w
}

// Position is a menu anchor in screen cells.
type Position struct {
	X, Y int
}

// ShowRequest asks a controller to display a menu.
type ShowRequest struct {
	// ID is unique per confirmed gesture and sorts by confirmation time.
	ID       ulid.ULID
	Position Position
	// Target is the trigger that confirmed the gesture.
	Target  runtime.Widget
	MenuID  string
	Payload Payload
}

// Controller owns which menu, if any, is visible.
type Controller interface {
	ShowMenu(req ShowRequest)
	// HideMenu hides the visible menu. It is a no-op when none is visible.
	HideMenu()
}

// CollectFailedMsg is posted to the event loop when a payload collector
// returns an error. No menu is shown for that gesture.
type CollectFailedMsg struct {
	runtime.Custom
	MenuID string
	Err    error
}
