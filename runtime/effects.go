package runtime

import (
	"context"
	"sync"
	"time"
)

// After posts a message after a delay.
func After(delay time.Duration, msg Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if msg == nil || post == nil {
				return
			}
			if delay <= 0 {
				post(msg)
				return
			}
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				post(msg)
			}
		},
	}
}

// Every posts messages on a fixed interval.
// Returning nil from fn skips posting.
func Every(interval time.Duration, fn func(time.Time) Message) Effect {
	return Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if interval <= 0 || fn == nil || post == nil {
				return
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case now := <-ticker.C:
					if msg := fn(now); msg != nil {
						post(msg)
					}
				}
			}
		},
	}
}

// Timer is a cancellable one-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
	// Pending reports whether the callback may still run. It is false once
	// the timer fired, was stopped, or its callback could not be posted.
	Pending() bool
}

type timerState int

const (
	timerPending timerState = iota
	timerFired
	timerStopped
	timerDropped
)

type loopTimer struct {
	mu    sync.Mutex
	state timerState
	done  chan struct{}
}

func (t *loopTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != timerPending {
		return false
	}
	t.state = timerStopped
	close(t.done)
	return true
}

func (t *loopTimer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == timerPending
}

// drop marks a timer whose callback never reached the loop.
func (t *loopTimer) drop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == timerPending {
		t.state = timerDropped
	}
}

func (t *loopTimer) fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != timerPending {
		return false
	}
	t.state = timerFired
	return true
}

// AfterFunc returns an effect that runs fn on the event loop after delay,
// and the Timer that cancels it.
//
// The effect waits off-loop and then posts a CallbackMsg. The timer state is
// checked again when that message is handled, so a Stop that wins the race
// against an already queued callback still suppresses it.
func AfterFunc(delay time.Duration, fn func()) (Effect, Timer) {
	t := &loopTimer{done: make(chan struct{})}
	callback := CallbackMsg{Fn: func() {
		if t.fire() && fn != nil {
			fn()
		}
	}}
	effect := Effect{
		Run: func(ctx context.Context, post PostFunc) {
			if post == nil {
				return
			}
			if delay > 0 {
				wait := time.NewTimer(delay)
				defer wait.Stop()
				select {
				case <-ctx.Done():
					return
				case <-t.done:
					return
				case <-wait.C:
				}
			}
			if !post(callback) {
				t.drop()
			}
		},
	}
	return effect, t
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }

func (stoppedTimer) Pending() bool { return false }
