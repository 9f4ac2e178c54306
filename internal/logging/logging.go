// Package logging constructs the application's slog loggers. Verbosity is an
// explicit constructor argument threaded through component constructors, not
// process-wide state.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Verbose bool
	Output  io.Writer
}

// New creates a logger writing human-readable diagnostics to cfg.Output
// (stderr when nil). Verbose enables debug-level output; at the default
// level only warnings and errors are emitted, so a normal run is silent.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Discard returns a logger that drops everything. Used by tests and as the
// default when a component is constructed without a logger.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
