// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is the global logger instance.
// It discards output until Setup is called, since the TUI owns the terminal.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup points the global logger at a log file and returns a function that
// closes it. An empty path logs to stderr.
func Setup(path, level string) (func() error, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	if path == "" {
		Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	Logger = slog.New(slog.NewTextHandler(f, opts))
	return f.Close, nil
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
