// Package logging builds the slog logger shared by the servers and services.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the logger level and output format.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// New returns a logger writing to stderr.
func New(opts Options) *slog.Logger {
	return NewWithWriter(os.Stderr, opts)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler).With("service", "companystats")
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
