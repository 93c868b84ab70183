package domain

import (
	"strings"
)

// Body identifies a celestial body placed in a chart.
type Body int

// Bodies in ephemeris id order.
const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

var bodyNames = [...]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

var bodySymbols = [...]string{
	"☉", "☽", "☿", "♀", "♂", "♃", "♄", "⛢", "♆", "♇",
}

// DefaultBodies is the set drawn on a standard chart (Sun through Neptune).
var DefaultBodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}

// AllBodies includes Pluto.
var AllBodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

// Valid reports whether b is a known body.
func (b Body) Valid() bool {
	return b >= Sun && b <= Pluto
}

// String returns the body's display name.
func (b Body) String() string {
	if !b.Valid() {
		return "Unknown"
	}

	return bodyNames[b]
}

// Symbol returns the astronomical glyph for the body.
func (b Body) Symbol() string {
	if !b.Valid() {
		return "?"
	}

	return bodySymbols[b]
}

// ParseBody parses a body name, ignoring case and surrounding space.
func ParseBody(name string) (Body, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range bodyNames {
		if strings.EqualFold(n, trimmed) {
			return Body(i), nil
		}
	}

	return 0, NewValidationErrorWithValue("body", "unknown body", name)
}

// ParseBodies parses a list of body names. An empty list yields DefaultBodies.
// Duplicates are rejected so aspect pairs stay unique.
func ParseBodies(names []string) ([]Body, error) {
	if len(names) == 0 {
		return append([]Body(nil), DefaultBodies...), nil
	}

	seen := make(map[Body]bool, len(names))
	bodies := make([]Body, 0, len(names))

	for _, name := range names {
		b, err := ParseBody(name)
		if err != nil {
			return nil, err
		}

		if seen[b] {
			return nil, NewValidationErrorWithValue("bodies", "duplicate body", name)
		}

		seen[b] = true
		bodies = append(bodies, b)
	}

	return bodies, nil
}
