package runtime

import "sync/atomic"

// Invalidator coalesces render requests. Any number of Invalidate calls
// between two frames post a single InvalidateMsg. It doubles as a
// state.Scheduler that runs callbacks inline and then asks for a frame.
type Invalidator struct {
	post      PostFunc
	pending   atomic.Bool
	coalesced atomic.Uint64
	onDrop    func()
}

// NewInvalidator creates an invalidator that posts through post.
func NewInvalidator(post PostFunc) *Invalidator {
	return &Invalidator{post: post}
}

// Invalidate requests a frame unless one is already queued.
func (i *Invalidator) Invalidate() {
	if i == nil || i.post == nil {
		return
	}
	if !i.pending.CompareAndSwap(false, true) {
		i.coalesced.Add(1)
		return
	}
	if i.post(InvalidateMsg{}) {
		return
	}
	// Queue full: the next call tries again.
	i.pending.Store(false)
	if i.onDrop != nil {
		i.onDrop()
	}
}

// Pending reports whether a frame request is queued.
func (i *Invalidator) Pending() bool {
	return i != nil && i.pending.Load()
}

// Coalesced returns how many requests were folded into a queued one.
func (i *Invalidator) Coalesced() uint64 {
	if i == nil {
		return 0
	}
	return i.coalesced.Load()
}

// Schedule runs fn and requests a frame.
func (i *Invalidator) Schedule(fn func()) {
	if fn == nil {
		return
	}
	fn()
	i.Invalidate()
}

// frameStarted is called when the loop takes the queued InvalidateMsg.
func (i *Invalidator) frameStarted() {
	if i == nil {
		return
	}
	i.pending.Store(false)
}
