// Package clock supplies "now" in a configured IANA zone, falling back to
// the host's local zone when the configured name can't be loaded.
package clock

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Clock is injected into the decider so tests can freeze "now" instead of
// racing the wall clock; production code uses System.
type Clock interface {
	Now() time.Time
}

// System is the real clock: time.Now() in a resolved *time.Location.
type System struct {
	loc *time.Location
}

// New resolves name via LoadZone and returns a System clock in that zone.
func New(name string) *System {
	return &System{loc: LoadZone(name)}
}

func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

func (s *System) Location() *time.Location {
	return s.loc
}

// Fixed is a deterministic Clock for tests: it always returns the same
// instant, already attached to the desired zone.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// LoadZone loads an IANA zone by name. On failure it logs at info level and
// falls back to the host's local zone; this is a one-time step meant to run
// once at request entry, not per event.
func LoadZone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Info().Str("requested_tz", name).Err(err).Msg("timezone.load.fallback_to_local")
		return time.Local
	}
	return loc
}
