package main

import (
	"io"
	"log/slog"
)

// newLogger builds a *slog.Logger the way
// specialistvlad-burstgridgo/internal/app/logger.go does: an isolated
// instance (never the global default) with a selectable text/JSON handler,
// threaded explicitly into the parser rather than reached for through a
// package-level logger.
func newLogger(debug, jsonFormat bool, out io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler)
}
