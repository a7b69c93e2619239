// Package logger provides a simple wrapper around slog for structured logging.
// Output goes to a log file rather than the terminal, which the TUI owns.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global logger instance.
var Logger = slog.New(slog.NewTextHandler(defaultWriter(), nil))

// defaultWriter opens the log file. PRISM_LOG_PATH overrides the default
// location under the user config dir. Logging is best-effort: if the file
// cannot be opened, output is discarded instead of corrupting the screen.
func defaultWriter() io.Writer {
	path := os.Getenv("PRISM_LOG_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return io.Discard
		}
		path = filepath.Join(home, ".config", "prism-tui", "prism-tui.log")
	}
	return fileWriter(path)
}

// fileWriter opens path for appending, creating parent directories as needed.
func fileWriter(path string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
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
