// Package agent drives a furry-menu app over the simulation backend. It is
// used by scripted sessions and end-to-end tests: inject input, wait for the
// screen to settle, and inspect what is drawn.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-menu/backend/sim"
	"github.com/odvcencio/furry-menu/runtime"
	"github.com/odvcencio/furry-menu/terminal"
)

// Common errors returned by Agent methods.
var (
	ErrNoApp      = errors.New("agent: no app configured")
	ErrTimeout    = errors.New("agent: timed out")
	ErrRunning    = errors.New("agent: already running")
	ErrNotRunning = errors.New("agent: not running")
)

// Agent runs an App against a simulation backend.
type Agent struct {
	mu      sync.Mutex
	app     *runtime.App
	sim     *sim.Backend
	poll    time.Duration
	timeout time.Duration
	cancel  context.CancelFunc
	done    chan error
}

// Config configures an Agent.
type Config struct {
	// App must have been created with Sim as its backend.
	App *runtime.App
	Sim *sim.Backend

	// Poll is how often Wait re-checks the screen. Default 5ms.
	Poll time.Duration
	// Timeout bounds Wait and Do. Default 1s.
	Timeout time.Duration
}

// New creates an agent.
func New(cfg Config) *Agent {
	poll := cfg.Poll
	if poll <= 0 {
		poll = 5 * time.Millisecond
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Agent{
		app:     cfg.App,
		sim:     cfg.Sim,
		poll:    poll,
		timeout: timeout,
	}
}

// Backend returns the underlying simulation backend.
func (a *Agent) Backend() *sim.Backend {
	return a.sim
}

// Start runs the app in the background and returns once its loop is
// processing messages.
func (a *Agent) Start(ctx context.Context) error {
	if a.app == nil || a.sim == nil {
		return ErrNoApp
	}
	a.mu.Lock()
	if a.done != nil {
		a.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	a.cancel, a.done = cancel, done
	a.mu.Unlock()

	ready := make(chan struct{})
	a.app.Post(runtime.CallbackMsg{Fn: func() { close(ready) }})
	go func() { done <- a.app.Run(ctx) }()

	select {
	case <-ready:
		return nil
	case err := <-done:
		a.mu.Lock()
		a.cancel, a.done = nil, nil
		a.mu.Unlock()
		cancel()
		return fmt.Errorf("agent: app exited during start: %w", err)
	case <-time.After(a.timeout):
		_ = a.Stop()
		return ErrTimeout
	}
}

// Stop cancels the app and waits for Run to return. Cancellation is not
// reported as an error.
func (a *Agent) Stop() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()
	if done == nil {
		return ErrNotRunning
	}
	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Do runs fn on the event loop with the app's screen and waits for it.
func (a *Agent) Do(fn func(*runtime.Screen)) error {
	if a.app == nil {
		return ErrNoApp
	}
	finished := make(chan struct{})
	posted := a.app.TryPost(runtime.CallbackMsg{Fn: func() {
		defer close(finished)
		if fn != nil {
			fn(a.app.Screen())
		}
	}})
	if !posted {
		return fmt.Errorf("agent: event queue full")
	}
	select {
	case <-finished:
		return nil
	case <-time.After(a.timeout):
		return ErrTimeout
	}
}

// Wait polls cond until it holds or the timeout passes.
func (a *Agent) Wait(cond func() bool) error {
	deadline := time.Now().Add(a.timeout)
	for {
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(a.poll)
	}
}

// WaitForText waits until text is on screen.
func (a *Agent) WaitForText(text string) error {
	if err := a.Wait(func() bool { return a.ContainsText(text) }); err != nil {
		return fmt.Errorf("wait for %q: %w", text, err)
	}
	return nil
}

// WaitForNoText waits until text is gone from the screen.
func (a *Agent) WaitForNoText(text string) error {
	if err := a.Wait(func() bool { return !a.ContainsText(text) }); err != nil {
		return fmt.Errorf("wait for %q to go: %w", text, err)
	}
	return nil
}

// Press reports button going down at (x, y).
func (a *Agent) Press(x, y int, button terminal.MouseButton) {
	a.sim.Press(x, y, button, false)
}

// Release reports all buttons up at (x, y).
func (a *Agent) Release(x, y int) {
	a.sim.Release(x, y)
}

// Click presses and releases the primary button.
func (a *Agent) Click(x, y int) {
	a.sim.Press(x, y, terminal.MouseLeft, false)
	a.sim.Release(x, y)
}

// RightClick presses and releases the secondary button.
func (a *Agent) RightClick(x, y int, shift bool) {
	a.sim.Press(x, y, terminal.MouseRight, shift)
	a.sim.Release(x, y)
}

// Hold keeps the primary button down at (x, y) for d, then releases it.
func (a *Agent) Hold(x, y int, d time.Duration) {
	a.sim.Press(x, y, terminal.MouseLeft, false)
	time.Sleep(d)
	a.sim.Release(x, y)
}

// Move reports the pointer at (x, y) with no buttons down.
func (a *Agent) Move(x, y int) {
	a.sim.Release(x, y)
}

// Wheel reports one wheel step.
func (a *Agent) Wheel(x, y int, down bool) {
	a.sim.Wheel(x, y, down)
}

// Key reports a key press.
func (a *Agent) Key(key tcell.Key, r rune) {
	a.sim.InjectKey(key, r)
}

// Touch reports a touch event.
func (a *Agent) Touch(action terminal.TouchAction, points ...terminal.TouchPoint) error {
	return a.sim.InjectTouch(terminal.TouchEvent{Action: action, Touches: points})
}

// Scroll reports a non-wheel scroll at (x, y).
func (a *Agent) Scroll(x, y int) error {
	return a.sim.InjectScroll(x, y)
}

// CaptureText returns the shown screen, one line per row.
func (a *Agent) CaptureText() string {
	if a.sim == nil {
		return ""
	}
	return a.sim.Text()
}

// ContainsText reports whether text is on screen.
func (a *Agent) ContainsText(text string) bool {
	return strings.Contains(a.CaptureText(), text)
}

// FindText returns the cell position of text on screen, or (-1, -1).
func (a *Agent) FindText(text string) (x, y int) {
	for row, line := range strings.Split(a.CaptureText(), "\n") {
		if idx := strings.Index(line, text); idx >= 0 {
			return len([]rune(line[:idx])), row
		}
	}
	return -1, -1
}

// Snapshot describes the screen and the widget tree of every layer.
func (a *Agent) Snapshot() (Snapshot, error) {
	snap := Snapshot{Timestamp: time.Now()}
	err := a.Do(func(screen *runtime.Screen) {
		if screen == nil {
			return
		}
		snap.Width, snap.Height = screen.Size()
		snap.LayerCount = screen.LayerCount()
		for i := range screen.LayerCount() {
			layer := screen.Layer(i)
			if layer == nil || layer.Root == nil {
				continue
			}
			snap.Widgets = append(snap.Widgets, describe(layer.Root))
		}
	})
	if err != nil {
		return Snapshot{}, err
	}
	snap.Text = a.CaptureText()
	return snap, nil
}

// SnapshotJSON returns Snapshot encoded as indented JSON.
func (a *Agent) SnapshotJSON() ([]byte, error) {
	snap, err := a.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

func describe(w runtime.Widget) WidgetInfo {
	info := WidgetInfo{
		ID:   widgetID(w),
		Type: strings.TrimPrefix(fmt.Sprintf("%T", w), "*"),
	}
	if b, ok := w.(runtime.BoundsProvider); ok {
		info.Bounds = b.Bounds()
	}
	if c, ok := w.(runtime.ChildProvider); ok {
		for _, child := range c.ChildWidgets() {
			if child != nil {
				info.Children = append(info.Children, describe(child))
			}
		}
	}
	return info
}

func widgetID(w runtime.Widget) string {
	if id, ok := w.(interface{ MenuID() string }); ok {
		return id.MenuID()
	}
	return fmt.Sprintf("%p", w)
}
