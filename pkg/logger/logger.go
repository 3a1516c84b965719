package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger with structured JSON output.
// Level is parsed from the given string (e.g. "debug", "info", "warn", "error").
func New(level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stdout).Level(lvl).With().
		Timestamp().
		Str("service", service).
		Logger()
}
