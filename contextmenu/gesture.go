package contextmenu

import (
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/runtime"
)

// gestureEvent is the part of an input message a gesture needs later. It is
// copied when the gesture starts so a hold that fires afterwards sees the
// press as it was.
type gestureEvent struct {
	modality modality
	x, y     int
	hasPoint bool
	shift    bool
	button   runtime.MouseButton
	target   runtime.Widget
}

func mouseGesture(m runtime.MouseMsg) gestureEvent {
	return gestureEvent{
		modality: modalityMouse,
		x:        m.X,
		y:        m.Y,
		hasPoint: true,
		shift:    m.Shift,
		button:   m.Button,
		target:   m.Target,
	}
}

func touchGesture(m runtime.TouchMsg) gestureEvent {
	ev := gestureEvent{
		modality: modalityTouch,
		shift:    m.Shift,
		target:   m.Target,
	}
	if len(m.Touches) > 0 {
		ev.x, ev.y = m.Touches[0].PageX, m.Touches[0].PageY
		ev.hasPoint = true
	}
	return ev
}

type modality int

const (
	modalityMouse modality = iota
	modalityTouch
)

func (m modality) String() string {
	if m == modalityTouch {
		return "touch"
	}
	return "mouse"
}

// holdSlot is one {Idle, Pending} machine. It is Pending exactly while it
// owns a timer.
type holdSlot struct {
	timer runtime.Timer
	event gestureEvent
	seq   uint64
}

func (s *holdSlot) pending() bool {
	return s.timer != nil && s.timer.Pending()
}

// abandoned reports whether the slot still holds a timer that will never
// fire, which happens when its callback was dropped.
func (s *holdSlot) abandoned() bool {
	return s.timer != nil && !s.timer.Pending()
}

func (s *holdSlot) clear() {
	s.timer = nil
	s.event = gestureEvent{}
}

// cancel stops the pending timer and returns to Idle.
func (s *holdSlot) cancel() bool {
	if s.timer == nil {
		return false
	}
	stopped := s.timer.Stop()
	s.clear()
	return stopped
}

// gestureRecognizer tracks the mouse and touch hold slots of one trigger.
// All methods run on the event loop.
type gestureRecognizer struct {
	hold    time.Duration
	timers  func() TimerService
	confirm func(gestureEvent) bool
	logger  *zap.Logger

	mouse        holdSlot
	touch        holdSlot
	touchHandled bool
}

func (g *gestureRecognizer) holdEnabled() bool {
	return g.hold >= 0
}

// pending reports whether a hold is armed for m. A slot whose callback was
// dropped is cleared here.
func (g *gestureRecognizer) pending(m modality) bool {
	s := g.slot(m)
	if s.abandoned() {
		g.logger.Warn("hold dropped, callback never delivered", zap.Stringer("modality", m))
		s.clear()
	}
	return s.pending()
}

func (g *gestureRecognizer) touchPending() bool {
	return g.pending(modalityTouch)
}

func (g *gestureRecognizer) slot(m modality) *holdSlot {
	if m == modalityTouch {
		return &g.touch
	}
	return &g.mouse
}

// arm starts the hold timer for ev's modality, replacing any pending one.
func (g *gestureRecognizer) arm(ev gestureEvent, fired func()) bool {
	timers := g.timers()
	if timers == nil {
		g.logger.Warn("hold ignored, no timer service")
		return false
	}
	s := g.slot(ev.modality)
	s.cancel()
	s.seq++
	seq := s.seq
	s.event = ev
	s.timer = timers.AfterFunc(g.hold, func() {
		if s.seq != seq || s.timer == nil {
			return
		}
		ev := s.event
		s.clear()
		g.logger.Debug("hold fired", zap.Stringer("modality", ev.modality))
		g.confirm(ev)
		if fired != nil {
			fired()
		}
	})
	g.logger.Debug("hold armed", zap.Stringer("modality", ev.modality), zap.Duration("hold", g.hold))
	return true
}

func (g *gestureRecognizer) cancel(m modality, reason string) {
	if g.slot(m).cancel() {
		g.logger.Debug("hold cancelled", zap.Stringer("modality", m), zap.String("reason", reason))
	}
}

// mouseDown arms the mouse hold for the primary button. It reports whether
// the press should stop propagating.
func (g *gestureRecognizer) mouseDown(ev gestureEvent) bool {
	if !g.holdEnabled() || ev.button != runtime.MouseLeft {
		return false
	}
	return g.arm(ev, nil)
}

func (g *gestureRecognizer) mouseUp(ev gestureEvent) {
	if ev.button == runtime.MouseLeft {
		g.cancel(modalityMouse, "release")
	}
}

func (g *gestureRecognizer) mouseOut() {
	g.cancel(modalityMouse, "pointer left")
}

// touchStart arms the touch hold. It reports whether the touch should stop
// propagating.
func (g *gestureRecognizer) touchStart(ev gestureEvent) bool {
	g.touchHandled = false
	if !g.holdEnabled() {
		return false
	}
	return g.arm(ev, func() { g.touchHandled = true })
}

// touchEnd cancels the touch hold and reports whether the touch already
// opened a menu, in which case its default action must be suppressed.
func (g *gestureRecognizer) touchEnd() bool {
	g.cancel(modalityTouch, "touch end")
	return g.touchHandled
}

func (g *gestureRecognizer) touchCancel() {
	g.cancel(modalityTouch, "touch cancel")
}

// scrolled cancels a pending touch hold.
func (g *gestureRecognizer) scrolled() {
	g.cancel(modalityTouch, "scroll")
}

func (g *gestureRecognizer) reset() {
	g.cancel(modalityMouse, "reset")
	g.cancel(modalityTouch, "reset")
	g.touchHandled = false
}
