package state

import "sync"

// Computed is a value derived from other reactive sources. It recomputes
// whenever a dependency notifies, through its scheduler if one is set.
type Computed[T any] struct {
	signal    *Signal[T]
	compute   func() T
	scheduler Scheduler

	mu     sync.Mutex
	unsubs []func()
}

// NewComputed derives a value that recomputes synchronously.
func NewComputed[T any](compute func() T, deps ...Subscribable) *Computed[T] {
	return NewComputedWithScheduler(nil, compute, deps...)
}

// NewComputedWithScheduler derives a value whose recomputes go through
// scheduler.
func NewComputedWithScheduler[T any](scheduler Scheduler, compute func() T, deps ...Subscribable) *Computed[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	c := &Computed[T]{
		signal:    NewSignal(compute()),
		compute:   compute,
		scheduler: scheduler,
	}
	for _, dep := range deps {
		if dep != nil {
			c.unsubs = append(c.unsubs, dep.Subscribe(c.invalidate))
		}
	}
	return c
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
func (c *Computed[T]) SetEqualFunc(fn EqualFunc[T]) {
	if c == nil {
		return
	}
	c.signal.SetEqualFunc(fn)
}

// Get returns the last computed value.
func (c *Computed[T]) Get() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.signal.Get()
}

// Subscribe registers a listener for changes of the derived value.
func (c *Computed[T]) Subscribe(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.signal.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener dispatched through scheduler.
func (c *Computed[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.signal.SubscribeWithScheduler(scheduler, fn)
}

// Stop detaches from all dependencies. The value stays at its last result.
func (c *Computed[T]) Stop() {
	if c == nil {
		return
	}
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

func (c *Computed[T]) recompute() {
	c.signal.Set(c.compute())
}

func (c *Computed[T]) invalidate() {
	if c.scheduler == nil {
		c.recompute()
		return
	}
	c.scheduler.Schedule(c.recompute)
}
