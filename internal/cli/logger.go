package cli

import (
	"io"
	"log/slog"

	"github.com/leapstack-labs/introspect/internal/cli/config"
)

// newLogger builds the process logger. Diagnostics go to w (stderr) so that
// stdout carries only command output. Verbose lowers the level to debug.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
