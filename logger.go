package assetkit

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"time"
)

// Logger wraps slog.Logger with asset-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithName adds an asset name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("asset", name),
	}
}

// WithManagerID adds the manager instance id to the logger.
func (l *Logger) WithManagerID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("manager_id", id),
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name, path string, hit bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"asset", name,
			"path", path,
			"error", err,
		)
		return
	}
	if hit {
		l.DebugContext(ctx, "load served from cache",
			"asset", name,
		)
		return
	}
	l.DebugContext(ctx, "load completed",
		"asset", name,
		"path", path,
		"duration", duration,
	)
}

// LogUnload logs an unload operation.
func (l *Logger) LogUnload(ctx context.Context, name string, removed bool) {
	l.DebugContext(ctx, "unload",
		"asset", name,
		"removed", removed,
	)
}

// LogUnloadAll logs a bulk unload.
func (l *Logger) LogUnloadAll(ctx context.Context, count int) {
	l.InfoContext(ctx, "unloaded all assets",
		"count", count,
	)
}

// LogReaderCreated logs the implicit construction of a reader.
func (l *Logger) LogReaderCreated(ctx context.Context, readerType, forType reflect.Type) {
	l.DebugContext(ctx, "reader created",
		"reader", readerType.String(),
		"type", forType.String(),
	)
}

// LogDisposeError logs a failure to release an asset or stream.
func (l *Logger) LogDisposeError(ctx context.Context, name string, err error) {
	l.WarnContext(ctx, "dispose failed",
		"asset", name,
		"error", err,
	)
}
