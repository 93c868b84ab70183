package ports

import (
	"context"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

// CalcFlags selects options for a body position calculation.
type CalcFlags uint32

const (
	// FlagSpeed asks for longitude, latitude and distance speeds.
	FlagSpeed CalcFlags = 1 << iota

	// FlagSidereal returns longitudes in the sidereal zodiac (Lahiri).
	FlagSidereal

	// FlagTopocentric asks for observer-centered rather than geocentric positions
	// where the provider supports it.
	FlagTopocentric
)

// Has reports whether every bit of f is set.
func (c CalcFlags) Has(f CalcFlags) bool {
	return c&f == f
}

// EphemerisProvider supplies raw astronomical values. Charts are assembled
// from its output by the application layer; the provider knows nothing about
// signs, houses-of-bodies or aspects.
type EphemerisProvider interface {
	// Name identifies the provider in logs, errors and health output.
	Name() string

	// JulianDay converts a proleptic Gregorian UTC date and fractional hour.
	JulianDay(year, month, day int, hour float64) float64

	// BodyPosition returns the ecliptic position of body at jd.
	BodyPosition(ctx context.Context, jd float64, body domain.Body, flags CalcFlags) (domain.EclipticPosition, error)

	// Houses solves the cusps of system for an observer at lat/lon.
	Houses(ctx context.Context, jd, lat, lon float64, system domain.HouseSystemCode) (domain.HouseCusps, error)
}

// Initializer is implemented by providers that need a one-time setup
// before they can answer queries.
type Initializer interface {
	Init(ctx context.Context) error
}

// AyanamsaProvider is implemented by providers that can report the
// sidereal offset at jd. It is used to shift house cusps for sidereal charts.
type AyanamsaProvider interface {
	Ayanamsa(jd float64) float64
}

// ReadinessGate reports whether the provider finished initializing.
type ReadinessGate interface {
	Ready() bool
	// Require returns a domain.NotInitializedError until Ready.
	Require() error
}
