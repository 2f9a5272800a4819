package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns the process logger tagged with component. Call Configure
// first; an unconfigured process gets zerolog's default JSON logger.
func New(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}
