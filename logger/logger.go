// SPDX-License-Identifier: MIT

// Package logger builds the zap loggers used by the lsqr command and offers
// helpers for carrying per-run context. Library packages never log through a
// global: they accept a *zap.Logger via options and default to zap.NewNop().
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the encoder, level and destination of a logger.
type Config struct {
	// JSON selects structured JSON output; otherwise a console encoder.
	JSON bool
	// Level is one of debug, info, warn, error (case-insensitive, "" = info).
	Level string
	// Output receives the log lines; nil means stderr.
	Output io.Writer
}

// ParseLevel maps a level name onto a zapcore.Level.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return lvl, fmt.Errorf("logger: level %q: %w", name, err)
	}

	return lvl, nil
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var enc zapcore.Encoder
	if cfg.JSON {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		ec.CallerKey = zapcore.OmitKey
		enc = zapcore.NewConsoleEncoder(ec)
	}

	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(out), lvl)), nil
}

// Component returns l named after a component, e.g. "solver".
func Component(l *zap.Logger, name string) *zap.Logger {
	return OrNop(l).Named(name)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}

	return l
}
