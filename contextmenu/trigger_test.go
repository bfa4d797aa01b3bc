package contextmenu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-menu/runtime"
)

func TestTrigger_LeftHoldOpensMenu(t *testing.T) {
	h := newHarness(t, nil)

	res := h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	assert.True(t, res.Handled, "press with hold enabled stops propagation")

	h.clock.Advance(time.Second)
	assert.Equal(t, []string{"hide"}, h.ctrl.calls, "hide goes out before the payload is ready")

	h.spawner.Flush()
	require.Equal(t, []string{"hide", "show"}, h.ctrl.calls)

	req := h.ctrl.requests[0]
	assert.Equal(t, "file-menu", req.MenuID)
	assert.Equal(t, Position{X: 200, Y: 200}, req.Position)
	assert.Same(t, h.trigger, req.Target)
	assert.Equal(t, Payload{TargetKey: h.child}, req.Payload)
	assert.False(t, req.ID.IsZero())
}

func TestTrigger_HoldFiresOnce(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.clock.Advance(time.Second)
	h.clock.Advance(time.Second)
	h.mouse(runtime.MouseRelease, runtime.MouseLeft, 200, 200, false)
	h.spawner.Flush()

	assert.Equal(t, 1, h.shows())
	assert.Zero(t, h.clock.live())
}

func TestTrigger_ShortHoldDoesNothing(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.clock.Advance(999 * time.Millisecond)
	h.mouse(runtime.MouseRelease, runtime.MouseLeft, 200, 200, false)
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_MouseOutCancelsHold(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.mouse(runtime.MouseOut, runtime.MouseNone, 260, 200, false)
	h.clock.Advance(2 * time.Second)

	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_SecondPressReplacesHold(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 160, 160, false)
	h.clock.Advance(600 * time.Millisecond)
	h.mouse(runtime.MousePress, runtime.MouseLeft, 170, 170, false)
	h.clock.Advance(600 * time.Millisecond)
	assert.Empty(t, h.ctrl.calls, "the first timer was replaced")

	h.clock.Advance(400 * time.Millisecond)
	h.spawner.Flush()
	require.Equal(t, 1, h.shows())
	assert.Equal(t, Position{X: 170, Y: 170}, h.ctrl.requests[0].Position)
}

func TestTrigger_NonPrimaryPressDoesNotArm(t *testing.T) {
	h := newHarness(t, nil)

	res := h.mouse(runtime.MousePress, runtime.MouseMiddle, 200, 200, false)
	assert.False(t, res.Handled)
	assert.Zero(t, h.clock.live())
}

func TestTrigger_HoldDisabled(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.HoldToDisplay = HoldDisabled })

	res := h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	assert.False(t, res.Handled)
	res = h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 200, PageY: 200})
	assert.False(t, res.Handled)
	assert.Empty(t, h.clock.timers)
}

func TestTrigger_ContextMenuOpensImmediately(t *testing.T) {
	h := newHarness(t, nil)

	res := h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	assert.True(t, res.Handled)
	h.spawner.Flush()

	require.Equal(t, []string{"hide", "show"}, h.ctrl.calls)
	assert.Equal(t, Position{X: 180, Y: 190}, h.ctrl.requests[0].Position)
}

func TestTrigger_ContextMenuWithOtherButtonIgnored(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.ActivationButton = 1 })

	res := h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	assert.False(t, res.Handled)
	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_PrimaryClickActivation(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.ActivationButton = 0
		c.HoldToDisplay = HoldDisabled
	})

	res := h.mouse(runtime.MouseClick, runtime.MouseLeft, 155, 156, false)
	assert.True(t, res.Handled)
	h.spawner.Flush()
	assert.Equal(t, 1, h.shows())

	res = h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 155, 156, false)
	assert.False(t, res.Handled)
}

func TestTrigger_ShiftSuppression(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.DisableIfShiftIsPressed = true })

	res := h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, true)
	assert.False(t, res.Handled)
	assert.Empty(t, h.ctrl.calls)

	res = h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	assert.True(t, res.Handled)
}

func TestTrigger_ShiftIgnoredWhenNotConfigured(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, true)
	h.spawner.Flush()
	assert.Equal(t, 1, h.shows())
}

func TestTrigger_Disabled(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Disable = true })

	res := h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	assert.False(t, res.Handled)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.clock.Advance(time.Second)
	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 200, PageY: 200})
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_Offsets(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.PosX = 10
		c.PosY = 5
	})
	h.trigger.Layout(runtime.Rect{X: 0, Y: 0, Width: 300, Height: 300})

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 100, 50, false)
	h.spawner.Flush()

	require.Equal(t, 1, h.shows())
	assert.Equal(t, Position{X: 90, Y: 45}, h.ctrl.requests[0].Position)
}

func TestTrigger_ZeroOffsetsKeepPoint(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 171, 203, false)
	h.spawner.Flush()

	require.Equal(t, 1, h.shows())
	assert.Equal(t, Position{X: 171, Y: 203}, h.ctrl.requests[0].Position)
}

func TestTrigger_TouchHold(t *testing.T) {
	h := newHarness(t, nil)

	res := h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 210, PageY: 220})
	assert.True(t, res.Handled)

	h.clock.Advance(time.Second)
	h.spawner.Flush()
	require.Equal(t, 1, h.shows())
	assert.Equal(t, Position{X: 210, Y: 220}, h.ctrl.requests[0].Position)

	res = h.touch(runtime.TouchEnd)
	assert.True(t, res.Handled, "touch end after a fired hold suppresses the tap")

	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 210, PageY: 220})
	res = h.touch(runtime.TouchEnd)
	assert.False(t, res.Handled, "a short tap is left alone")
}

func TestTrigger_ScrollCancelsTouchHold(t *testing.T) {
	h := newHarness(t, nil)

	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 210, PageY: 220})
	h.scroll.Emit(h.child)
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_ScrollElsewhereKeepsTouchHold(t *testing.T) {
	h := newHarness(t, nil)

	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 210, PageY: 220})
	h.scroll.Emit(&leaf{})
	h.scroll.Emit(nil)
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	assert.Equal(t, 1, h.shows())
}

func TestTrigger_ScrollLeavesMouseHold(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.scroll.Emit(h.child)
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	assert.Equal(t, 1, h.shows())
}

func TestTrigger_TouchCancel(t *testing.T) {
	h := newHarness(t, nil)

	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 210, PageY: 220})
	h.touch(runtime.TouchCancel)
	h.clock.Advance(time.Second)

	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_MouseAndTouchAreIndependent(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 160, 160, false)
	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 170, PageY: 170})
	h.touch(runtime.TouchEnd)
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	require.Equal(t, 1, h.shows())
	assert.Equal(t, Position{X: 160, Y: 160}, h.ctrl.requests[0].Position)
}

func TestTrigger_CollectedPayload(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.Collect = func(context.Context) (Payload, error) {
			return Payload{"a": 1}, nil
		}
	})

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	h.spawner.Flush()

	require.Equal(t, 1, h.shows())
	assert.Equal(t, Payload{"a": 1, TargetKey: h.child}, h.ctrl.requests[0].Payload)
}

func TestTrigger_AsyncPayloadKeepsTarget(t *testing.T) {
	h := newHarness(t, func(c *Config) {
		c.Collect = func(context.Context) (Payload, error) {
			return Payload{"row": 3}, nil
		}
	})
	other := &leaf{}
	h.trigger.child = &column{children: []runtime.Widget{h.child, other}}

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	// A later event on another widget must not change the pending target.
	h.trigger.HandleMessage(runtime.MouseMsg{X: 181, Y: 190, Action: runtime.MouseMove, Target: other})
	h.spawner.Flush()

	require.Equal(t, 1, h.shows())
	assert.Same(t, h.child, h.ctrl.requests[0].Payload.Target())
}

func TestTrigger_CollectFailure(t *testing.T) {
	boom := errors.New("boom")
	h := newHarness(t, func(c *Config) {
		c.Collect = func(context.Context) (Payload, error) {
			return nil, boom
		}
	})

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	msgs := h.spawner.Flush()

	assert.Equal(t, []string{"hide"}, h.ctrl.calls)
	require.Len(t, msgs, 1)
	failed, ok := msgs[0].(CollectFailedMsg)
	require.True(t, ok)
	assert.Equal(t, "file-menu", failed.MenuID)
	assert.ErrorIs(t, failed.Err, boom)
}

func TestTrigger_PayloadAfterUnmountDropped(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
	h.trigger.Unmount()
	h.spawner.Flush()

	assert.Equal(t, []string{"hide"}, h.ctrl.calls)
}

func TestTrigger_UnmountCancelsHolds(t *testing.T) {
	h := newHarness(t, nil)

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 200, PageY: 200})
	require.Equal(t, 2, h.clock.live())
	require.Len(t, h.scroll.listeners, 1)

	h.trigger.Unmount()
	assert.Zero(t, h.clock.live())
	assert.Empty(t, h.scroll.listeners)
	assert.False(t, h.trigger.guard.active())

	h.trigger.Mount()
	assert.Len(t, h.scroll.listeners, 1)
	assert.Equal(t, 2, h.trigger.guard.installs)
}

func TestTrigger_IgnoresEventsOutside(t *testing.T) {
	h := newHarness(t, nil)

	res := h.trigger.HandleMessage(runtime.MouseMsg{
		X: 10, Y: 10, Button: runtime.MouseRight, Action: runtime.MouseContextMenu, Target: &leaf{},
	})
	assert.False(t, res.Handled)

	res = h.trigger.HandleMessage(runtime.MouseMsg{
		X: 10, Y: 10, Button: runtime.MouseRight, Action: runtime.MouseContextMenu,
	})
	assert.False(t, res.Handled)
	assert.Empty(t, h.ctrl.calls)
}

func TestTrigger_Attributes(t *testing.T) {
	var seen []string
	h := newHarness(t, func(c *Config) {
		c.Attributes = Attributes{
			OnMouseDown:   func(runtime.MouseMsg) { seen = append(seen, "down") },
			OnMouseUp:     func(runtime.MouseMsg) { seen = append(seen, "up") },
			OnMouseOut:    func(runtime.MouseMsg) { seen = append(seen, "out") },
			OnContextMenu: func(runtime.MouseMsg) { seen = append(seen, "contextmenu") },
			OnClick:       func(runtime.MouseMsg) { seen = append(seen, "click") },
			OnTouchStart:  func(runtime.TouchMsg) { seen = append(seen, "touchstart") },
			OnTouchEnd:    func(runtime.TouchMsg) { seen = append(seen, "touchend") },
		}
		c.Disable = true
	})

	h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false)
	h.mouse(runtime.MouseRelease, runtime.MouseLeft, 200, 200, false)
	h.mouse(runtime.MouseClick, runtime.MouseLeft, 200, 200, false)
	h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 200, 200, false)
	h.mouse(runtime.MouseOut, runtime.MouseNone, 200, 200, false)
	h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 200, PageY: 200})
	h.touch(runtime.TouchEnd)

	assert.Equal(t, []string{"down", "up", "click", "contextmenu", "out", "touchstart", "touchend"}, seen)
}

func TestTrigger_RequestIDsIncrease(t *testing.T) {
	h := newHarness(t, nil)

	for range 3 {
		h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 180, 190, false)
		h.spawner.Flush()
	}
	require.Equal(t, 3, h.shows())
	ids := h.ctrl.requests
	assert.Negative(t, ids[0].ID.Compare(ids[1].ID))
	assert.Negative(t, ids[1].ID.Compare(ids[2].ID))
}

func TestTrigger_NoPointUsesOrigin(t *testing.T) {
	h := newHarness(t, nil)

	h.touch(runtime.TouchStart)
	h.clock.Advance(time.Second)
	h.spawner.Flush()

	require.Equal(t, 1, h.shows())
	assert.Equal(t, Position{X: 150, Y: 150}, h.ctrl.requests[0].Position)
}

func TestNewTrigger_PanicsOnInvalidConfig(t *testing.T) {
	assert.PanicsWithError(t,
		"contextmenu: invalid trigger config: "+ErrMissingID.Error()+"\n"+ErrNoController.Error(),
		func() { NewTrigger(DefaultConfig(), &leaf{}) })

	_, err := New(Config{ID: "x", HoldToDisplay: -time.Second, ActivationButton: 3, Controller: &recorder{}}, nil)
	assert.ErrorIs(t, err, ErrInvalidHold)
	assert.ErrorIs(t, err, ErrInvalidButton)
	assert.NotErrorIs(t, err, ErrMissingID)
}

// column is a container for containment tests.
type column struct {
	leaf
	children []runtime.Widget
}

func (c *column) ChildWidgets() []runtime.Widget { return c.children }

func TestTrigger_PressWithoutTimersPropagates(t *testing.T) {
	h := newHarness(t, func(c *Config) { c.Timers = nil })

	assert.False(t, h.mouse(runtime.MousePress, runtime.MouseLeft, 200, 200, false).Handled)
	assert.False(t, h.touch(runtime.TouchStart, runtime.TouchPoint{PageX: 200, PageY: 200}).Handled)
	assert.Zero(t, h.shows())

	assert.True(t, h.mouse(runtime.MouseContextMenu, runtime.MouseRight, 200, 200, false).Handled,
		"the immediate path needs no timer")
}
