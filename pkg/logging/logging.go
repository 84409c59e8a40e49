// Package logging builds the zap logger shared by the commands and services.
//
// Production mode writes JSON lines to stderr so that user-facing output on
// stdout stays clean. Development mode uses zap's colored console encoder.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the logger is built
type Options struct {
	Level       string   // debug, info, warn, error
	Development bool     // Console encoder instead of JSON
	OutputPaths []string // Defaults to stderr
}

// New builds a logger from opts
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = !opts.Development

	cfg.OutputPaths = []string{"stderr"}
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
