// Package logging configures the process-wide slog logger.
//
// Logs always go to stderr so that stdout carries only the validation
// report. The level comes from the --debug flag or the LOG_LEVEL environment
// variable (debug, info, warn, error); JSON output is selected with
// --log-json.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel is the environment variable consulted for the default level.
const EnvLogLevel = "LOG_LEVEL"

// Options describes how the logger is built.
type Options struct {
	// Module and Version are attached to every record.
	Module  string
	Version string

	// Level is the minimum level emitted.
	Level slog.Level

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// AddSource adds file:line to records.
	AddSource bool
}

// ParseLevel converts a level name to a slog.Level. Unknown or empty values
// yield slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// LevelFromEnv returns the level configured in LOG_LEVEL, or fallback when
// the variable is unset.
func LevelFromEnv(fallback slog.Level) slog.Level {
	v, ok := os.LookupEnv(EnvLogLevel)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return ParseLevel(v)
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:     opts.Level,
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Module != "" {
		logger = logger.With("module", opts.Module)
	}
	if opts.Version != "" {
		logger = logger.With("version", opts.Version)
	}
	return logger
}

// SetDefault installs a logger built from opts on stderr as the slog default.
func SetDefault(opts Options) {
	slog.SetDefault(New(os.Stderr, opts))
}
