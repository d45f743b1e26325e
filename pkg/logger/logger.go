// Package logger builds the zerolog logger used across the engine.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger configured for the given level ("debug", "info",
// "warn", "error") and format ("json" or "console"). Unknown levels fall
// back to info.
func New(level, format string) zerolog.Logger {
	return NewWithOutput(level, format, os.Stderr)
}

// NewWithOutput is New with an explicit output writer.
func NewWithOutput(level, format string, out io.Writer) zerolog.Logger {
	lvl := parseLevel(level)

	if format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "gapscan").
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
