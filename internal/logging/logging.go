package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Everything goes to stderr: stdout is
// reserved for the single JSON result the bridge emits.
func Init(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
