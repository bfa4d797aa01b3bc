package contextmenu

import (
	"context"
	"maps"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/runtime"
)

// dataCollector runs the payload producer off the event loop and delivers
// the result back on it.
type dataCollector struct {
	menuID  string
	collect CollectFunc
	logger  *zap.Logger
}

// start spawns the collector. target must already be captured: the message
// that confirmed the gesture is gone by the time the result arrives.
// Exactly one of done or fail runs, on the event loop, unless the result
// can no longer be posted. A failure is also posted as CollectFailedMsg.
func (c *dataCollector) start(spawner Spawner, target runtime.Widget, done func(Payload), fail func(error)) bool {
	if spawner == nil {
		c.logger.Error("payload not collected, no spawner", zap.String("menu", c.menuID))
		return false
	}
	collect := c.collect
	logger := c.logger
	menuID := c.menuID
	spawner.Spawn(runtime.Effect{Run: func(ctx context.Context, post runtime.PostFunc) {
		var (
			data Payload
			err  error
		)
		if collect != nil {
			data, err = collect(ctx)
		}
		var deliver func()
		if err != nil {
			if !post(CollectFailedMsg{MenuID: menuID, Err: err}) {
				logger.Error("collect failure dropped, event queue full", zap.String("menu", menuID), zap.Error(err))
			}
			deliver = func() { fail(err) }
		} else {
			payload := mergeTarget(data, target)
			deliver = func() { done(payload) }
		}
		if !post(runtime.CallbackMsg{Fn: deliver}) {
			logger.Error("payload result dropped, event queue full", zap.String("menu", menuID))
		}
	}})
	return true
}

// mergeTarget copies data and sets TargetKey. A nil payload yields a
// payload holding only the target.
func mergeTarget(data Payload, target runtime.Widget) Payload {
	out := make(Payload, len(data)+1)
	maps.Copy(out, data)
	out[TargetKey] = target
	return out
}
