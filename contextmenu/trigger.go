package contextmenu

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/widgets"
)

// Trigger wraps a widget and opens a context menu from gestures on it.
type Trigger struct {
	widgets.Component
	child runtime.Widget
	cfg   Config

	buttons   ButtonMatcher
	positions PositionResolver
	gestures  gestureRecognizer
	guard     scrollGuard
	collector dataCollector
	emitter   *menuEmitter
	logger    *zap.Logger

	// generation changes on unmount so late payloads are dropped.
	generation uint64
}

// New creates a trigger around child.
func New(cfg Config, child runtime.Widget) (*Trigger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("menu", cfg.ID))

	t := &Trigger{
		child:     child,
		cfg:       cfg,
		buttons:   ButtonMatcher{Button: cfg.ActivationButton, SuppressOnShift: cfg.DisableIfShiftIsPressed},
		positions: PositionResolver{OffsetX: cfg.PosX, OffsetY: cfg.PosY},
		collector: dataCollector{menuID: cfg.ID, collect: cfg.Collect, logger: logger},
		logger:    logger,
	}
	t.emitter = newMenuEmitter(cfg.Controller, cfg.ID, t, logger)
	t.gestures = gestureRecognizer{
		hold:    cfg.HoldToDisplay,
		timers:  t.timers,
		confirm: t.confirm,
		logger:  logger,
	}
	t.guard = scrollGuard{
		owner:   t,
		pending: t.gestures.touchPending,
		cancel:  t.gestures.scrolled,
	}
	return t, nil
}

// NewTrigger is like New but panics on an invalid config.
func NewTrigger(cfg Config, child runtime.Widget) *Trigger {
	t, err := New(cfg, child)
	if err != nil {
		panic(fmt.Errorf("contextmenu: invalid trigger config: %w", err))
	}
	return t
}

// MenuID returns the id of the menu this trigger opens.
func (t *Trigger) MenuID() string {
	return t.cfg.ID
}

// Child returns the wrapped widget.
func (t *Trigger) Child() runtime.Widget {
	return t.child
}

// ChildWidgets returns the wrapped widget.
func (t *Trigger) ChildWidgets() []runtime.Widget {
	if t.child == nil {
		return nil
	}
	return []runtime.Widget{t.child}
}

// Measure returns the child's size.
func (t *Trigger) Measure(constraints runtime.Constraints) runtime.Size {
	if t.child == nil {
		return constraints.Constrain(runtime.Size{})
	}
	return t.child.Measure(constraints)
}

// Layout gives the child the trigger's bounds.
func (t *Trigger) Layout(bounds runtime.Rect) {
	t.Component.Layout(bounds)
	if t.child != nil {
		t.child.Layout(bounds)
	}
}

// Render draws the child.
func (t *Trigger) Render(ctx runtime.RenderContext) {
	if t.child != nil {
		t.child.Render(ctx.Sub(t.Bounds()))
	}
}

// Mount starts watching scrolls.
func (t *Trigger) Mount() {
	source := t.cfg.Scroll
	if source == nil && !t.bound() {
		t.logger.Debug("no scroll source, touch holds survive scrolling")
		return
	}
	if source == nil {
		source = t.Services
	}
	t.guard.install(source)
}

// Unmount cancels pending holds, stops watching scrolls, and drops payloads
// still being collected.
func (t *Trigger) Unmount() {
	t.gestures.reset()
	t.guard.remove()
	t.generation++
}

func (t *Trigger) bound() bool {
	return t.Services != (runtime.Services{})
}

func (t *Trigger) timers() TimerService {
	if t.cfg.Timers != nil {
		return t.cfg.Timers
	}
	if t.bound() {
		return t.Services
	}
	return nil
}

func (t *Trigger) spawner() Spawner {
	if t.cfg.Spawner != nil {
		return t.cfg.Spawner
	}
	if t.bound() {
		return t.Services
	}
	return nil
}

// HandleMessage feeds pointer and touch input on the wrapped widget into
// the gesture recognizer.
func (t *Trigger) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.MouseMsg:
		if !t.owns(m.Target, m.X, m.Y, true) {
			return runtime.Unhandled()
		}
		return t.handleMouse(m)
	case runtime.TouchMsg:
		x, y, ok := 0, 0, false
		if len(m.Touches) > 0 {
			x, y, ok = m.Touches[0].PageX, m.Touches[0].PageY, true
		}
		if !t.owns(m.Target, x, y, ok) {
			return runtime.Unhandled()
		}
		return t.handleTouch(m)
	}
	if t.child != nil {
		return t.child.HandleMessage(msg)
	}
	return runtime.Unhandled()
}

// owns reports whether an event belongs to this trigger: its target is the
// trigger or inside it, or, without a target, its point is inside the
// trigger's bounds. Events with neither are owned.
func (t *Trigger) owns(target runtime.Widget, x, y int, hasPoint bool) bool {
	if target != nil {
		return runtime.Contains(t, target)
	}
	if !hasPoint {
		return true
	}
	return t.Bounds().Contains(x, y)
}

func (t *Trigger) handleMouse(m runtime.MouseMsg) runtime.HandleResult {
	ev := mouseGesture(m)
	handled := false
	attrs := t.cfg.Attributes
	switch m.Action {
	case runtime.MousePress:
		handled = t.gestures.mouseDown(ev)
		call(attrs.OnMouseDown, m)
	case runtime.MouseRelease:
		t.gestures.mouseUp(ev)
		call(attrs.OnMouseUp, m)
	case runtime.MouseOut:
		t.gestures.mouseOut()
		call(attrs.OnMouseOut, m)
	case runtime.MouseContextMenu:
		if t.buttons.Matches(m.Button) {
			handled = t.confirm(ev)
		}
		call(attrs.OnContextMenu, m)
	case runtime.MouseClick:
		if t.buttons.Matches(m.Button) {
			handled = t.confirm(ev)
		}
		call(attrs.OnClick, m)
	}
	return result(handled)
}

func (t *Trigger) handleTouch(m runtime.TouchMsg) runtime.HandleResult {
	handled := false
	attrs := t.cfg.Attributes
	switch m.Action {
	case runtime.TouchStart:
		handled = t.gestures.touchStart(touchGesture(m))
		call(attrs.OnTouchStart, m)
	case runtime.TouchEnd:
		handled = t.gestures.touchEnd()
		call(attrs.OnTouchEnd, m)
	case runtime.TouchCancel:
		t.gestures.touchCancel()
	}
	return result(handled)
}

// confirm runs a confirmed gesture: hide the visible menu, collect the
// payload, then show. It reports whether the gesture was acted on, in which
// case the triggering event must not propagate.
func (t *Trigger) confirm(ev gestureEvent) bool {
	if t.cfg.Disable {
		t.logger.Debug("gesture ignored, trigger disabled")
		return false
	}
	if t.buttons.Suppressed(ev.shift) {
		t.logger.Debug("gesture ignored, shift pressed")
		return false
	}

	bounds := t.Bounds()
	pos := t.positions.Resolve(ev, Position{X: bounds.X, Y: bounds.Y})
	t.emitter.hide()

	target := ev.target
	if target == nil {
		target = t
	}
	generation := t.generation
	t.collector.start(t.spawner(), target,
		func(payload Payload) {
			if generation != t.generation {
				t.logger.Debug("payload dropped, trigger unmounted")
				return
			}
			t.emitter.show(pos, payload)
		},
		func(err error) {
			t.logger.Error("payload collection failed", zap.Error(err))
		},
	)
	return true
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}

func result(handled bool) runtime.HandleResult {
	if handled {
		return runtime.Handled()
	}
	return runtime.Unhandled()
}
