package state

import "sync"

// Subscriptions collects unsubscribe callbacks so a widget can drop all of
// them at once when it is unbound.
type Subscriptions struct {
	mu     sync.Mutex
	unsubs []func()
	sched  Scheduler
}

// NewSubscriptions creates a Subscriptions that dispatches through scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// SetScheduler changes the scheduler used by later Observe calls.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
}

// Add tracks an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.mu.Lock()
	s.unsubs = append(s.unsubs, unsub)
	s.mu.Unlock()
}

// Observe subscribes fn to sub through the configured scheduler.
func (s *Subscriptions) Observe(sub Subscribable, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	s.mu.Lock()
	scheduler := s.sched
	s.mu.Unlock()

	if scheduled, ok := sub.(interface {
		SubscribeWithScheduler(Scheduler, func()) func()
	}); ok && scheduler != nil {
		s.Add(scheduled.SubscribeWithScheduler(scheduler, fn))
		return
	}
	s.Add(sub.Subscribe(fn))
}

// Len returns the number of tracked subscriptions.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unsubs)
}

// Clear unsubscribes everything tracked so far.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}
