package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GeoLocation is an observer position on Earth in decimal degrees.
type GeoLocation struct {
	latitude  float64
	longitude float64
}

// NewGeoLocation validates latitude and longitude.
func NewGeoLocation(lat, lon float64) (GeoLocation, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return GeoLocation{}, NewValidationErrorWithValue("latitude", "must be a finite number", lat)
	}

	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return GeoLocation{}, NewValidationErrorWithValue("longitude", "must be a finite number", lon)
	}

	if lat < -90 || lat > 90 {
		return GeoLocation{}, NewValidationErrorWithValue("latitude", "must be between -90 and 90", lat)
	}

	if lon < -180 || lon > 180 {
		return GeoLocation{}, NewValidationErrorWithValue("longitude", "must be between -180 and 180", lon)
	}

	return GeoLocation{latitude: lat, longitude: lon}, nil
}

// ParseGeoLocation parses a "lat,lon" pair.
func ParseGeoLocation(raw string) (GeoLocation, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return GeoLocation{}, NewValidationErrorWithValue("location", `must be "lat,lon"`, raw)
	}

	lat, err := parseCoordinate(parts[0])
	if err != nil {
		return GeoLocation{}, NewValidationErrorWithValue("location", "latitude is not a number", raw)
	}

	lon, err := parseCoordinate(parts[1])
	if err != nil {
		return GeoLocation{}, NewValidationErrorWithValue("location", "longitude is not a number", raw)
	}

	loc, err := NewGeoLocation(lat, lon)
	if err != nil {
		return GeoLocation{}, fmt.Errorf("location %q: %w", raw, err)
	}

	return loc, nil
}

// parseCoordinate rejects NaN/Inf spellings that strconv accepts.
func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}

	return v, nil
}

// Latitude returns the latitude in degrees.
func (g GeoLocation) Latitude() float64 { return g.latitude }

// Longitude returns the longitude in degrees, east positive.
func (g GeoLocation) Longitude() float64 { return g.longitude }

// String formats the location as "lat,lon".
func (g GeoLocation) String() string {
	return strconv.FormatFloat(g.latitude, 'f', -1, 64) + "," + strconv.FormatFloat(g.longitude, 'f', -1, 64)
}
