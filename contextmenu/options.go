package contextmenu

import (
	"errors"
	"time"
)

// Options is the file-backed subset of Config.
type Options struct {
	// HoldToDisplayMs is the hold duration in milliseconds; -1 disables it.
	HoldToDisplayMs         int  `mapstructure:"holdToDisplayMs"`
	ActivationButton        int  `mapstructure:"activationButton"`
	Disable                 bool `mapstructure:"disable"`
	DisableIfShiftIsPressed bool `mapstructure:"disableIfShiftIsPressed"`
	PosX                    int  `mapstructure:"posX"`
	PosY                    int  `mapstructure:"posY"`
}

// DefaultOptions mirrors DefaultConfig.
func DefaultOptions() Options {
	return Options{
		HoldToDisplayMs:  int(DefaultHoldToDisplay / time.Millisecond),
		ActivationButton: DefaultActivationButton,
	}
}

// Apply copies the options onto cfg.
func (o Options) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.HoldToDisplay = time.Duration(o.HoldToDisplayMs) * time.Millisecond
	cfg.ActivationButton = o.ActivationButton
	cfg.Disable = o.Disable
	cfg.DisableIfShiftIsPressed = o.DisableIfShiftIsPressed
	cfg.PosX = o.PosX
	cfg.PosY = o.PosY
}

// Validate checks the options that Config.Validate would reject.
func (o Options) Validate() error {
	var errs []error
	if o.HoldToDisplayMs < -1 {
		errs = append(errs, ErrInvalidHold)
	}
	if o.ActivationButton < 0 || o.ActivationButton > 2 {
		errs = append(errs, ErrInvalidButton)
	}
	return errors.Join(errs...)
}
