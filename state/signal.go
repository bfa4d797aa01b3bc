// Package state provides small reactive primitives for widgets that share
// values with the rest of the UI.
package state

import (
	"sort"
	"sync"
)

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

// Readable exposes read-only reactive state.
type Readable[T any] interface {
	Subscribable
	Get() T
	SubscribeWithScheduler(scheduler Scheduler, fn func()) func()
}

type subscriber struct {
	id        int
	fn        func()
	scheduler Scheduler
}

// Signal holds a value and notifies subscribers on change.
// Subscribers are notified in subscription order.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]subscriber
	next  int
	equal EqualFunc[T]
}

// NewSignal creates a new signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) bool {
	_, changed := s.Swap(value)
	return changed
}

// Swap stores value and returns the previous one. Subscribers are notified
// only when the value changed.
func (s *Signal[T]) Swap(value T) (old T, changed bool) {
	if s == nil {
		return old, false
	}
	s.mu.Lock()
	old = s.value
	if s.equal != nil && s.equal(old, value) {
		s.mu.Unlock()
		return old, false
	}
	s.value = value
	subs := s.snapshotLocked()
	s.mu.Unlock()

	notify(subs)
	return old, true
}

// Update replaces the value using fn.
// fn runs outside the signal lock; Update is not atomic across goroutines.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// Subscribe registers a listener that runs synchronously on change.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
// A nil scheduler runs the listener synchronously.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]subscriber)
	}
	id := s.next
	s.next++
	s.subs[id] = subscriber{id: id, fn: fn, scheduler: scheduler}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Signal[T]) snapshotLocked() []subscriber {
	if len(s.subs) == 0 {
		return nil
	}
	subs := make([]subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	return subs
}

func notify(subs []subscriber) {
	for _, sub := range subs {
		if sub.scheduler == nil {
			sub.fn()
			continue
		}
		sub.scheduler.Schedule(sub.fn)
	}
}
