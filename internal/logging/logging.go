// Package logging provides structured logging using Go's slog package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Warn level).
	// Resolution warnings are the primary output of this codebase, so the
	// default level keeps them visible without debug noise.
	InitLogger(LevelWarn, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	InitLoggerWriter(level, format, os.Stderr)
}

// InitLoggerWriter initializes the global logger writing to w.
func InitLoggerWriter(level Level, format Format, w io.Writer) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// ReferenceNotFound logs a reference-not-found build warning with its
// source location. A nil log uses the default logger.
func ReferenceNotFound(log *slog.Logger, kind, target, source string, line int, args ...any) {
	if log == nil {
		log = defaultLogger
	}
	allArgs := []any{
		"kind", kind,
		"target", target,
		"source", source,
		"line", line,
	}
	allArgs = append(allArgs, args...)
	log.Warn("reference not found", allArgs...)
}

// AmbiguousReference logs an ambiguous cross-reference warning listing
// all candidate targets. A nil log uses the default logger.
func AmbiguousReference(log *slog.Logger, target, candidates, source string, line int, args ...any) {
	if log == nil {
		log = defaultLogger
	}
	allArgs := []any{
		"target", target,
		"candidates", candidates,
		"source", source,
		"line", line,
	}
	allArgs = append(allArgs, args...)
	log.Warn("more than one target found for cross-reference", allArgs...)
}

// ResolvePass logs a summary line for one resolution pass over a document.
// A nil log uses the default logger.
func ResolvePass(log *slog.Logger, docname string, pending, resolved, fallback int, args ...any) {
	if log == nil {
		log = defaultLogger
	}
	allArgs := []any{
		"docname", docname,
		"pending", pending,
		"resolved", resolved,
		"fallback", fallback,
	}
	allArgs = append(allArgs, args...)
	log.Info("resolve_pass", allArgs...)
}
