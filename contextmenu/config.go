package contextmenu

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-menu/runtime"
)

var (
	// ErrMissingID is returned when a trigger has no menu id.
	ErrMissingID = errors.New("contextmenu: id is required")
	// ErrInvalidHold is returned for a hold duration below HoldDisabled.
	ErrInvalidHold = errors.New("contextmenu: hold duration must be >= -1ms")
	// ErrInvalidButton is returned for an activation button outside 0..2.
	ErrInvalidButton = errors.New("contextmenu: activation button must be 0, 1 or 2")
	// ErrNoController is returned when a trigger has nowhere to send requests.
	ErrNoController = errors.New("contextmenu: controller is required")
)

const (
	// DefaultHoldToDisplay is how long a press or touch must be held.
	DefaultHoldToDisplay = time.Second
	// DefaultActivationButton is the secondary button.
	DefaultActivationButton = 2
	// HoldDisabled turns hold-to-display off.
	HoldDisabled = -time.Millisecond
)

// CollectFunc produces the payload for a confirmed gesture. It always runs
// off the event loop; ctx is cancelled when the app stops. A nil payload is
// fine.
type CollectFunc func(ctx context.Context) (Payload, error)

// TimerService schedules callbacks on the event loop.
type TimerService interface {
	AfterFunc(delay time.Duration, fn func()) runtime.Timer
}

// ScrollSource reports scrolls anywhere on the screen.
type ScrollSource interface {
	OnScroll(fn func(runtime.ScrollNotice)) func()
}

// Spawner runs effects off the event loop.
type Spawner interface {
	Spawn(effect runtime.Effect)
}

// Attributes are handlers invoked after the trigger's own handling of each
// event, whether or not the trigger acted on it.
type Attributes struct {
	OnMouseDown   func(runtime.MouseMsg)
	OnMouseUp     func(runtime.MouseMsg)
	OnMouseOut    func(runtime.MouseMsg)
	OnContextMenu func(runtime.MouseMsg)
	OnClick       func(runtime.MouseMsg)
	OnTouchStart  func(runtime.TouchMsg)
	OnTouchEnd    func(runtime.TouchMsg)
}

// Config configures a Trigger.
type Config struct {
	// ID names the menu this trigger opens.
	ID string
	// HoldToDisplay is how long the primary button or a touch must be held.
	// A negative duration disables holding.
	HoldToDisplay time.Duration
	// ActivationButton is the button whose context-menu or click event opens
	// the menu immediately: 0 primary, 1 middle, 2 secondary.
	ActivationButton        int
	Disable                 bool
	DisableIfShiftIsPressed bool
	// PosX and PosY are subtracted from the gesture position.
	PosX, PosY int
	Collect    CollectFunc
	Attributes Attributes

	Controller Controller

	// Timers, Scroll and Spawner default to the services the trigger is
	// bound to.
	Timers  TimerService
	Scroll  ScrollSource
	Spawner Spawner
	Logger  *zap.Logger
}

// DefaultConfig returns a config with the default hold and button.
func DefaultConfig() Config {
	return Config{
		HoldToDisplay:    DefaultHoldToDisplay,
		ActivationButton: DefaultActivationButton,
	}
}

// Validate checks the config for contract violations.
func (c Config) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, ErrMissingID)
	}
	if c.HoldToDisplay < HoldDisabled {
		errs = append(errs, ErrInvalidHold)
	}
	if c.ActivationButton < 0 || c.ActivationButton > 2 {
		errs = append(errs, ErrInvalidButton)
	}
	if c.Controller == nil {
		errs = append(errs, ErrNoController)
	}
	return errors.Join(errs...)
}
