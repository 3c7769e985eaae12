package logger

import (
	"io"
	"log/slog"
	"os"
)

// SetupGlobal installs the process-wide slog logger.
func SetupGlobal(debug bool, json bool) {
	slog.SetDefault(New(os.Stdout, debug, json))
}

// New builds a logger writing to w. Debug mode lowers the level and adds
// source locations.
func New(w io.Writer, debug bool, json bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
