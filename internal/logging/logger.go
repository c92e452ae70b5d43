// Package logging builds the zap loggers used across the tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.WarnLevel, fmt.Errorf("unknown log level %q", level)
}

// New returns a console logger writing to w at the given level.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}

// Open builds a logger from a level and an optional file path. An empty path
// logs to fallback; a nil fallback discards everything. The returned close
// function flushes the logger and closes the file, if any.
func Open(level, path string, fallback io.Writer) (*zap.Logger, func() error, error) {
	if path == "" {
		if fallback == nil {
			return zap.NewNop(), func() error { return nil }, nil
		}
		logger, err := New(level, fallback)
		if err != nil {
			return nil, nil, err
		}
		return logger, func() error { _ = logger.Sync(); return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(level, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() error {
		_ = logger.Sync()
		return f.Close()
	}, nil
}
