// Package logger builds the zap logger used by the cmd binaries. Library
// packages stay on the lighter logs.Logger interface; an adapter bridges
// the two.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls log level and encoding.
type Config struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json"}
}

// New creates a zap logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}

// Sugar wraps a zap logger into the logs.Logger shape used by library
// packages.
type Sugar struct {
	Z *zap.SugaredLogger
}

func (s Sugar) Warn(msg string, args ...any)  { s.Z.Warnw(msg, args...) }
func (s Sugar) Info(msg string, args ...any)  { s.Z.Infow(msg, args...) }
func (s Sugar) Error(msg string, args ...any) { s.Z.Errorw(msg, args...) }
