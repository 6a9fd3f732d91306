package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Dev mode gets pretty console output
// and debug level; anything else logs structured JSON at info.
func New(mode string) zerolog.Logger {
	level := zerolog.InfoLevel
	if mode == "dev" {
		level = zerolog.DebugLevel
	}

	var log zerolog.Logger
	if mode == "dev" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log = zerolog.New(output)
	} else {
		log = zerolog.New(os.Stdout)
	}

	return log.With().Timestamp().Logger().Level(level)
}
