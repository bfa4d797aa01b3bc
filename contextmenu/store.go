package contextmenu

import (
	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/state"
)

// Store is a Controller that keeps the visible menu in a signal. The last
// request shown wins.
type Store struct {
	current *state.Signal[*ShowRequest]
	logger  *zap.Logger
}

// NewStore creates a store with no visible menu.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	current := state.NewSignal[*ShowRequest](nil)
	current.SetEqualFunc(state.EqualComparable[*ShowRequest])
	return &Store{current: current, logger: logger}
}

// ShowMenu makes req the visible menu.
func (s *Store) ShowMenu(req ShowRequest) {
	prev, _ := s.current.Swap(&req)
	if prev != nil {
		s.logger.Debug("menu replaced", zap.String("menu", prev.MenuID), zap.Stringer("request", prev.ID))
	}
}

// HideMenu clears the visible menu.
func (s *Store) HideMenu() {
	if prev, changed := s.current.Swap(nil); changed {
		s.logger.Debug("menu hidden", zap.String("menu", prev.MenuID), zap.Stringer("request", prev.ID))
	}
}

// Current returns the visible request, or nil.
func (s *Store) Current() *ShowRequest {
	return s.current.Get()
}

// Visible reports whether the menu with id is showing.
func (s *Store) Visible(menuID string) bool {
	req := s.current.Get()
	return req != nil && req.MenuID == menuID
}

// Signal exposes the visible request for subscription.
func (s *Store) Signal() state.Readable[*ShowRequest] {
	return s.current
}

var _ Controller = (*Store)(nil)
