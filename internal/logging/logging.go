// Package logging builds the structured logger shared by both entry points.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrUnknownLevel is returned for a level name other than debug, info, warn or error
var ErrUnknownLevel = errors.New("unknown log level")

// Rotation limits of the log file
const (
	MaxFileSizeMB  = 20
	MaxFileBackups = 3
	MaxFileAgeDays = 28
)

// Levels lists the accepted level names
var Levels = []string{"debug", "info", "warn", "error"}

// Options configures the logger
type Options struct {
	Level       string // debug, info, warn or error; empty means info
	File        string // optional rotating log file, written in addition to stderr
	Development bool   // console encoding instead of JSON
}

// ParseLevel maps a level name to a zap level
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// New builds a logr.Logger backed by zap. The returned function flushes and
// closes the outputs.
func New(opts Options) (logr.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}

	zapConfig := zap.NewProductionConfig()
	if opts.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("failed to build logger: %w", err)
	}

	var rotator *lumberjack.Logger
	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    MaxFileSizeMB,
			MaxBackups: MaxFileBackups,
			MaxAge:     MaxFileAgeDays,
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zapConfig.Level,
		)
		zapLogger = zapLogger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	cleanup := func() {
		_ = zapLogger.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
	return zapr.NewLogger(zapLogger), cleanup, nil
}
