package runtime

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAfter_Immediate(t *testing.T) {
	calls := 0
	effect := After(0, ResizeMsg{Width: 1, Height: 1})
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected immediate post, got %d", calls)
	}
}

func TestEvery_Invalid(t *testing.T) {
	calls := 0
	effect := Every(0, func(time.Time) Message { return ResizeMsg{Width: 1, Height: 1} })
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Fatalf("expected no posts for invalid interval, got %d", calls)
	}

	calls = 0
	effect = Every(10*time.Millisecond, nil)
	effect.Run(context.Background(), func(Message) bool {
		calls++
		return true
	})
	if calls != 0 {
		t.Fatalf("expected no posts for nil callback, got %d", calls)
	}
}

func runEffect(effect Effect) <-chan Message {
	out := make(chan Message, 1)
	go effect.Run(context.Background(), func(msg Message) bool {
		out <- msg
		return true
	})
	return out
}

func TestAfterFunc_RunsOnCallback(t *testing.T) {
	calls := 0
	effect, _ := AfterFunc(time.Millisecond, func() { calls++ })

	select {
	case msg := <-runEffect(effect):
		cb, ok := msg.(CallbackMsg)
		if !ok {
			t.Fatalf("expected CallbackMsg, got %T", msg)
		}
		if calls != 0 {
			t.Fatalf("callback must not run off the loop")
		}
		cb.Fn()
		cb.Fn()
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
}

func TestAfterFunc_StopBeforeFire(t *testing.T) {
	effect, timer := AfterFunc(time.Hour, func() { t.Fatal("stopped timer fired") })
	if !timer.Stop() {
		t.Fatalf("expected first Stop to report true")
	}
	if timer.Stop() {
		t.Fatalf("expected second Stop to report false")
	}

	done := make(chan struct{})
	go func() {
		effect.Run(context.Background(), func(Message) bool {
			t.Error("stopped timer posted")
			return true
		})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stopped timer effect did not exit")
	}
}

func TestAfterFunc_StopAfterQueued(t *testing.T) {
	calls := 0
	effect, timer := AfterFunc(0, func() { calls++ })
	msg := <-runEffect(effect)

	if !timer.Stop() {
		t.Fatalf("expected Stop to win before the callback is handled")
	}
	msg.(CallbackMsg).Fn()
	if calls != 0 {
		t.Fatalf("expected queued callback to be suppressed, got %d calls", calls)
	}
}

func TestAfterFunc_StopAfterFire(t *testing.T) {
	effect, timer := AfterFunc(0, func() {})
	msg := <-runEffect(effect)
	msg.(CallbackMsg).Fn()
	if timer.Stop() {
		t.Fatalf("expected Stop after fire to report false")
	}
}

func TestAfterFunc_DroppedCallback(t *testing.T) {
	effect, timer := AfterFunc(0, func() { t.Fatal("dropped callback ran") })
	if !timer.Pending() {
		t.Fatalf("expected a new timer to be pending")
	}
	effect.Run(context.Background(), func(Message) bool { return false })

	if timer.Pending() {
		t.Fatalf("expected a dropped timer to stop reporting pending")
	}
	if timer.Stop() {
		t.Fatalf("expected Stop on a dropped timer to report false")
	}
}

func TestAfterFunc_PendingUntilFired(t *testing.T) {
	effect, timer := AfterFunc(0, func() {})
	msg := <-runEffect(effect)
	if !timer.Pending() {
		t.Fatalf("expected a queued callback to keep the timer pending")
	}
	msg.(CallbackMsg).Fn()
	if timer.Pending() {
		t.Fatalf("expected a fired timer to stop reporting pending")
	}
}

func TestServices_AfterFuncLogsDrop(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	app := NewApp(AppConfig{MessageBuffer: 1, Logger: zap.New(core)})
	app.messages <- InvalidateMsg{}

	timer := app.Services().AfterFunc(0, func() { t.Fatal("dropped callback ran") })
	app.taskCtx = context.Background()
	app.startPendingEffects()

	deadline := time.Now().Add(time.Second)
	for timer.Pending() {
		if time.Now().After(deadline) {
			t.Fatal("expected the callback to be dropped")
		}
		time.Sleep(time.Millisecond)
	}
	if logs.FilterMessage("timer callback dropped, event queue full").Len() != 1 {
		t.Fatalf("expected one drop warning, got %v", logs.All())
	}
}

func TestAfterFunc_ContextCancel(t *testing.T) {
	effect, _ := AfterFunc(time.Hour, func() {})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		effect.Run(ctx, func(Message) bool { return true })
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("effect ignored cancellation")
	}
}

func TestServices_ZeroValue(t *testing.T) {
	var s Services
	timer := s.AfterFunc(time.Millisecond, func() {})
	if timer.Stop() || timer.Pending() {
		t.Fatalf("zero services timer should already be stopped")
	}
	if s.Post(InvalidateMsg{}) {
		t.Fatalf("zero services should not accept posts")
	}
	s.OnScroll(func(ScrollNotice) {})()
	if s.Logger() == nil {
		t.Fatalf("expected a no-op logger")
	}
}
