// Package logging builds the zap logger used by furry-menu. The terminal
// belongs to the UI while it runs, so logs go to a rotated file.
package logging

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the log file and level.
type Config struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMb"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	Compress   bool   `mapstructure:"compress"`
	Name       string `mapstructure:"name"`
}

// DefaultConfig logs info and above nowhere until a file is set.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Name:       "furry-menu",
	}
}

// ErrInvalidLevel is returned for an unknown level name.
var ErrInvalidLevel = errors.New("logging: invalid level")

// New builds a JSON logger writing to cfg.File through lumberjack. Without a
// file it returns a no-op logger. The returned closer flushes and releases
// the file.
func New(cfg Config) (*zap.Logger, io.Closer, error) {
	if cfg.File == "" {
		return zap.NewNop(), nopCloser{}, nil
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	logger, err := NewWithWriter(cfg, zapcore.AddSync(file))
	if err != nil {
		return nil, nil, err
	}
	return logger, closer{logger: logger, file: file}, nil
}

// NewWithWriter builds a JSON logger writing to w.
func NewWithWriter(cfg Config, w zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, errors.Join(ErrInvalidLevel, err)
		}
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, level)
	logger := zap.New(core, zap.AddStacktrace(zap.ErrorLevel))
	if cfg.Name != "" {
		logger = logger.Named(cfg.Name)
	}
	return logger, nil
}

type closer struct {
	logger *zap.Logger
	file   *lumberjack.Logger
}

func (c closer) Close() error {
	_ = c.logger.Sync()
	return c.file.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
