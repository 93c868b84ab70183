package domain

import "strings"

// City is a named, preset birth location.
type City struct {
	Name     string
	Region   string
	Location GeoLocation
}

// MatchesName compares city names ignoring case and surrounding space.
func (c City) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}
