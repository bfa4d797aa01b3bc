package contextmenu

import "github.com/odvcencio/furry-menu/runtime"

// ButtonMatcher decides whether an input counts as the activation button and
// whether the shift modifier vetoes activation. Touches carry no button and
// always match once their hold is confirmed.
type ButtonMatcher struct {
	// Button is the activation button index: 0 primary, 1 middle, 2 secondary.
	Button          int
	SuppressOnShift bool
}

// Matches reports whether a mouse button is the activation button.
func (m ButtonMatcher) Matches(button runtime.MouseButton) bool {
	idx := button.Index()
	return idx >= 0 && idx == m.Button
}

// Suppressed reports whether shift blocks activation.
func (m ButtonMatcher) Suppressed(shift bool) bool {
	return m.SuppressOnShift && shift
}
