package app

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// configureLogging points the package-global zerolog logger (also used by
// internal/clock and internal/availability) at w, console-formatted. It is
// called once per command invocation from buildContext, gated by
// --verbose/--no-color.
func configureLogging(w io.Writer, verbose, noColor bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	})
}
