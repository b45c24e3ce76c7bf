package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

// Init configures the process logger. Development mode uses the human
// readable console writer, anything else emits JSON.
func Init(development bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	if development {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func Logger() *zerolog.Logger {
	return &logger
}
