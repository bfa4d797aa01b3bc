package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/backend"
	"github.com/odvcencio/furry-menu/terminal"
)

// ErrNoBackend is returned by Run when the app has no backend.
var ErrNoBackend = errors.New("backend is required")

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	// Logger receives runtime diagnostics. Nil discards them.
	Logger *zap.Logger
}

// App runs a widget tree against a terminal backend.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	invalidator    *Invalidator
	logger         *zap.Logger
	scroll         scrollListeners

	taskMu         sync.Mutex
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingEffects []Effect

	running atomic.Bool
	dirty   bool
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		logger:         logger,
	}
	app.invalidator = NewInvalidator(app.tryPost)
	app.invalidator.onDrop = func() {
		logger.Debug("render request dropped, queue full")
	}
	return app
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	return a.screen
}

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.taskMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.taskMu.Unlock()
		return
	}
	ctx := a.taskCtx
	a.taskMu.Unlock()
	go effect.Run(ctx, a.tryPost)
}

// After schedules a delayed message using the app task context.
func (a *App) After(delay time.Duration, msg Message) {
	a.Spawn(After(delay, msg))
}

// Every schedules a recurring message using the app task context.
func (a *App) Every(interval time.Duration, fn func(time.Time) Message) {
	a.Spawn(Every(interval, fn))
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the event loop.
func (a *App) Post(msg Message) {
	if !a.tryPost(msg) {
		a.logger.Warn("message dropped, queue full", zap.String("message", fmt.Sprintf("%T", msg)))
	}
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	defer func() {
		taskCancel()
		a.taskMu.Lock()
		a.taskCtx = nil
		a.taskCancel = nil
		a.taskMu.Unlock()
	}()
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	a.screen.scroll = &a.scroll
	a.screen.SetServices(a.Services())

	a.taskMu.Lock()
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	a.taskMu.Unlock()

	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running.Store(true)
	a.dirty = true
	a.logger.Debug("app started", zap.Int("width", w), zap.Int("height", h))

	a.startPendingEffects()

	go a.pollEvents()

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running.Load() {
		select {
		case <-ctx.Done():
			a.stop()
		case msg := <-a.messages:
			if _, ok := msg.(InvalidateMsg); ok {
				a.invalidator.frameStarted()
			}
			if a.update(a, msg) {
				a.dirty = true
			}
		case now := <-ticks:
			if a.update(a, TickMsg{Time: now}) {
				a.dirty = true
			}
		}

		if a.running.Load() && a.dirty {
			a.render()
			a.dirty = false
		}
	}
	if root := a.screen.Root(); root != nil {
		a.screen.SetRoot(nil)
	}
	a.logger.Debug("app stopped")

	return ctx.Err()
}

// DefaultUpdate handles input messages and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case InvalidateMsg:
		return true
	case CallbackMsg:
		if m.Fn != nil {
			m.Fn()
		}
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.stop()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.Spawn(c)
		return false
	case PushOverlay, PopOverlay:
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) stop() {
	a.running.Store(false)
	a.taskMu.Lock()
	cancel := a.taskCancel
	a.taskMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) pollEvents() {
	for a.running.Load() {
		ev := a.backend.PollEvent()
		if ev == nil {
			if !a.running.Load() {
				return
			}
			continue
		}
		if msg := messageFromEvent(ev); msg != nil {
			a.Post(msg)
		}
	}
}

func messageFromEvent(ev terminal.Event) Message {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return KeyMsg{
			Key:   e.Key,
			Rune:  e.Rune,
			Alt:   e.Alt,
			Ctrl:  e.Ctrl,
			Shift: e.Shift,
		}
	case terminal.ResizeEvent:
		return ResizeMsg{Width: e.Width, Height: e.Height}
	case terminal.MouseEvent:
		return MouseMsg{
			X:      e.X,
			Y:      e.Y,
			Button: MouseButton(e.Button),
			Action: MouseAction(e.Action),
			Alt:    e.Alt,
			Ctrl:   e.Ctrl,
			Shift:  e.Shift,
		}
	case terminal.TouchEvent:
		touches := make([]TouchPoint, len(e.Touches))
		for i, p := range e.Touches {
			touches[i] = TouchPoint{ID: p.ID, PageX: p.PageX, PageY: p.PageY}
		}
		return TouchMsg{Action: TouchAction(e.Action), Touches: touches, Shift: e.Shift}
	case terminal.ScrollEvent:
		return ScrollMsg{X: e.X, Y: e.Y}
	case terminal.PasteEvent:
		return PasteMsg{Text: e.Text}
	default:
		return nil
	}
}

func (a *App) render() {
	if a.screen == nil {
		return
	}
	a.screen.Render()
	buf := a.screen.Buffer()
	if buf.IsDirty() {
		w, h := buf.Size()
		rowWriter, hasRowWriter := a.backend.(backend.RowWriter)
		if hasRowWriter && buf.DirtyCount() > w*h/2 {
			cells := buf.Cells()
			for y := 0; y < h; y++ {
				rowWriter.SetRow(y, 0, cells[y*w:(y+1)*w])
			}
		} else {
			buf.ForEachDirtyCell(func(x, y int, cell Cell) {
				a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
			})
		}
		buf.ClearDirty()
	}
	a.backend.Show()
}

func (a *App) startPendingEffects() {
	a.taskMu.Lock()
	effects := a.pendingEffects
	a.pendingEffects = nil
	a.taskMu.Unlock()
	for _, effect := range effects {
		a.Spawn(effect)
	}
}
