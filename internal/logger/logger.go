// Package logger builds the application zap logger.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	// Debug lowers the level to debug.
	Debug bool
	// File receives JSON log lines. Required when Console is false.
	File string
	// Console additionally writes human-readable lines to stdout. Must
	// stay off while the TUI owns the terminal, or log lines tear the
	// alt screen.
	Console bool
}

// New creates the application logger. The file sink is JSON with ISO8601
// timestamps; the optional console sink uses the console encoder.
func New(opts Options) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	var cores []zapcore.Core

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(f),
			level,
		))
	}

	if opts.Console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// Sync flushes the logger, swallowing the spurious stdout sync errors some
// platforms report.
func Sync(l *zap.Logger) {
	if err := l.Sync(); err != nil {
		msg := err.Error()
		if msg == "sync /dev/stdout: invalid argument" ||
			msg == "sync /dev/stderr: inappropriate ioctl for device" {
			return
		}
	}
}
