package contextmenu

// PositionResolver computes a menu anchor from gesture coordinates.
type PositionResolver struct {
	OffsetX, OffsetY int
}

// Resolve subtracts the offsets from the gesture point. Gestures that carry
// no coordinates anchor at fallback, unshifted.
func (r PositionResolver) Resolve(ev gestureEvent, fallback Position) Position {
	if !ev.hasPoint {
		return fallback
	}
	pos := Position{X: ev.x, Y: ev.y}
	// A zero offset is the same as no offset.
	if r.OffsetX != 0 {
		pos.X -= r.OffsetX
	}
	if r.OffsetY != 0 {
		pos.Y -= r.OffsetY
	}
	return pos
}
