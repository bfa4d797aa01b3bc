package runtime

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/state"
)

// Services exposes app-level scheduling and messaging helpers.
// The zero value is inert: posts fail, timers never fire, and the logger
// discards.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Scheduler returns a scheduler that runs callbacks on the event loop.
func (s Services) Scheduler() state.Scheduler {
	if s.app == nil {
		return nil
	}
	return state.SchedulerFunc(func(fn func()) {
		s.app.Post(CallbackMsg{Fn: fn})
	})
}

// InvalidateScheduler returns a scheduler that runs callbacks immediately
// and then requests a render pass.
func (s Services) InvalidateScheduler() state.Scheduler {
	if s.app == nil || s.app.invalidator == nil {
		return nil
	}
	return s.app.invalidator
}

// Invalidate requests a render pass.
func (s Services) Invalidate() {
	if s.app == nil {
		return
	}
	s.app.Invalidate()
}

// Post sends a message into the app loop.
func (s Services) Post(msg Message) bool {
	if s.app == nil {
		return false
	}
	return s.app.tryPost(msg)
}

// Spawn starts an effect using the app task context.
func (s Services) Spawn(effect Effect) {
	if s.app == nil {
		return
	}
	s.app.Spawn(effect)
}

// After schedules a delayed message.
func (s Services) After(delay time.Duration, msg Message) {
	if s.app == nil {
		return
	}
	s.app.After(delay, msg)
}

// Every schedules a recurring message.
func (s Services) Every(interval time.Duration, fn func(time.Time) Message) {
	if s.app == nil {
		return
	}
	s.app.Every(interval, fn)
}

// AfterFunc runs fn on the event loop after delay.
func (s Services) AfterFunc(delay time.Duration, fn func()) Timer {
	if s.app == nil {
		return stoppedTimer{}
	}
	effect, timer := AfterFunc(delay, fn)
	run := effect.Run
	effect.Run = func(ctx context.Context, post PostFunc) {
		run(ctx, func(msg Message) bool {
			if post(msg) {
				return true
			}
			s.Logger().Warn("timer callback dropped, event queue full", zap.Duration("delay", delay))
			return false
		})
	}
	s.app.Spawn(effect)
	return timer
}

// OnScroll registers fn to observe every scroll on the screen before the
// scroll is dispatched. It returns the unsubscribe function.
func (s Services) OnScroll(fn func(ScrollNotice)) func() {
	if s.app == nil {
		return func() {}
	}
	return s.app.scroll.add(fn)
}

// Logger returns the app logger.
func (s Services) Logger() *zap.Logger {
	if s.app == nil || s.app.logger == nil {
		return zap.NewNop()
	}
	return s.app.logger
}
