package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Level defaults to info and can be
// lowered with LOG_LEVEL=debug.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// ConsoleWriter is easier to read while developing locally.
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level := zerolog.InfoLevel
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = zerolog.DebugLevel
	}
	return logger.Level(level)
}
