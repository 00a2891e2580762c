package logger

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Package-level logger, swapped atomically so tests can capture output
// without racing concurrent handlers.
var singleton atomic.Pointer[slog.Logger]

func init() {
	singleton.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// Init installs the process logger. Level defaults to info; set
// LOG_LEVEL=debug to lower it.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	singleton.Store(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}

// Set replaces the singleton logger. Intended for tests.
func Set(l *slog.Logger) {
	singleton.Store(l)
}

func get() *slog.Logger {
	return singleton.Load()
}

func Info(msg string, fields map[string]any) {
	get().LogAttrs(context.Background(), slog.LevelInfo, msg, attrs(fields)...)
}

func Warn(msg string, fields map[string]any) {
	get().LogAttrs(context.Background(), slog.LevelWarn, msg, attrs(fields)...)
}

func Error(msg string, fields map[string]any) {
	get().LogAttrs(context.Background(), slog.LevelError, msg, attrs(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	get().LogAttrs(context.Background(), slog.LevelError, msg, attrs(fields)...)
	os.Exit(1)
}

func attrs(fields map[string]any) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}
