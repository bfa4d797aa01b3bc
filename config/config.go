// Package config loads furry-menu settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/odvcencio/furry-menu/contextmenu"
	"github.com/odvcencio/furry-menu/logging"
)

// EnvPrefix prefixes environment overrides, e.g. FURRY_MENU_MENU_POSX.
const EnvPrefix = "FURRY_MENU"

// ErrInvalidSize is returned for a non-positive replay screen size.
var ErrInvalidSize = errors.New("config: replay size must be positive")

// AppConfig tunes the event loop.
type AppConfig struct {
	MessageBuffer int           `mapstructure:"messageBuffer"`
	TickRate      time.Duration `mapstructure:"tickRate"`
}

// ReplayConfig sizes the simulated screen used by replay.
type ReplayConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config is the whole settings tree.
type Config struct {
	Log    logging.Config      `mapstructure:"log"`
	Menu   contextmenu.Options `mapstructure:"menu"`
	App    AppConfig           `mapstructure:"app"`
	Replay ReplayConfig        `mapstructure:"replay"`
}

// SetDefaults registers every key with its default.
func SetDefaults(v *viper.Viper) {
	log := logging.DefaultConfig()
	v.SetDefault("log.level", log.Level)
	v.SetDefault("log.file", log.File)
	v.SetDefault("log.maxSizeMb", log.MaxSizeMB)
	v.SetDefault("log.maxBackups", log.MaxBackups)
	v.SetDefault("log.maxAgeDays", log.MaxAgeDays)
	v.SetDefault("log.compress", log.Compress)
	v.SetDefault("log.name", log.Name)

	menu := contextmenu.DefaultOptions()
	v.SetDefault("menu.holdToDisplayMs", menu.HoldToDisplayMs)
	v.SetDefault("menu.activationButton", menu.ActivationButton)
	v.SetDefault("menu.disable", menu.Disable)
	v.SetDefault("menu.disableIfShiftIsPressed", menu.DisableIfShiftIsPressed)
	v.SetDefault("menu.posX", menu.PosX)
	v.SetDefault("menu.posY", menu.PosY)

	v.SetDefault("app.messageBuffer", 128)
	v.SetDefault("app.tickRate", "0s")

	v.SetDefault("replay.width", 60)
	v.SetDefault("replay.height", 16)
}

// Default returns the configuration with nothing loaded.
func Default() *Config {
	cfg, err := FromViper(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return cfg
}

// Load reads path, if set, over the defaults and applies FURRY_MENU_*
// environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values the components would reject.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Menu.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Replay.Width <= 0 || c.Replay.Height <= 0 {
		errs = append(errs, ErrInvalidSize)
	}
	return errors.Join(errs...)
}

// Trigger returns a trigger config for the menu id with the file options
// applied.
func (c *Config) Trigger(id string) contextmenu.Config {
	cfg := contextmenu.DefaultConfig()
	cfg.ID = id
	c.Menu.Apply(&cfg)
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
