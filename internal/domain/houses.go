package domain

import (
	"math"
	"strings"
)

// HouseSystemCode is the single-letter code of a house division method.
type HouseSystemCode string

// Supported house systems.
const (
	HousePlacidus  HouseSystemCode = "P"
	HousePorphyry  HouseSystemCode = "O"
	HouseEqual     HouseSystemCode = "E"
	HouseWholeSign HouseSystemCode = "W"
)

var houseSystemNames = map[HouseSystemCode]string{
	HousePlacidus:  "Placidus",
	HousePorphyry:  "Porphyry",
	HouseEqual:     "Equal",
	HouseWholeSign: "Whole Sign",
}

// ParseHouseSystem accepts a code ("P") or a name ("placidus"). Empty means Placidus.
func ParseHouseSystem(s string) (HouseSystemCode, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return HousePlacidus, nil
	}

	for code, name := range houseSystemNames {
		if strings.EqualFold(string(code), trimmed) || strings.EqualFold(name, trimmed) ||
			strings.EqualFold(strings.ReplaceAll(name, " ", ""), trimmed) {
			return code, nil
		}
	}

	return "", NewValidationErrorWithValue("houseSystem", "unsupported house system", s)
}

// String returns the house system's name.
func (c HouseSystemCode) String() string {
	if name, ok := houseSystemNames[c]; ok {
		return name
	}

	return string(c)
}

// HouseCusps is the raw output of an ephemeris house calculation.
// Cusps[0] is the cusp of house 1.
type HouseCusps struct {
	Cusps               [12]float64
	Ascendant           float64
	Midheaven           float64
	ARMC                float64
	Vertex              float64
	EquatorialAscendant float64
}

// HouseSystem is a chart's house division.
type HouseSystem struct {
	Code HouseSystemCode
	HouseCusps
}

// Finite reports whether every cusp and angle is a finite number.
func (h HouseCusps) Finite() bool {
	for _, c := range h.Cusps {
		if !isFinite(c) {
			return false
		}
	}

	return isFinite(h.Ascendant) && isFinite(h.Midheaven) && isFinite(h.ARMC) &&
		isFinite(h.Vertex) && isFinite(h.EquatorialAscendant)
}

// HouseOf returns the house (1-12) containing longitude. House i spans the
// half-open arc [cusp i, cusp i+1) counter-clockwise, wrapping past 360.
// When no arc matches, house 1 is returned.
func (h HouseSystem) HouseOf(longitude float64) int {
	return HouseOf(h.Cusps, longitude)
}

// HouseOf is HouseSystem.HouseOf for a bare cusp array.
func HouseOf(cusps [12]float64, longitude float64) int {
	for i := range 12 {
		start := cusps[i]
		end := cusps[(i+1)%12]

		if AngleInArc(longitude, start, end) {
			return i + 1
		}
	}

	return 1
}

// AngleInArc reports whether angle lies in [start, end) going counter-clockwise.
// If the normalized start exceeds the end the arc wraps past 0.
func AngleInArc(angle, start, end float64) bool {
	a := NormalizeDegrees(angle)
	s := NormalizeDegrees(start)
	e := NormalizeDegrees(end)

	if s <= e {
		return a >= s && a < e
	}

	return a >= s || a < e
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Shift subtracts offset from every cusp and angle, as when converting a
// tropical house solution to the sidereal zodiac. Whole-sign cusps are
// rebuilt from the shifted Ascendant so they stay on sign boundaries.
func (h HouseCusps) Shift(offset float64, code HouseSystemCode) HouseCusps {
	out := HouseCusps{
		Ascendant:           NormalizeDegrees(h.Ascendant - offset),
		Midheaven:           NormalizeDegrees(h.Midheaven - offset),
		ARMC:                h.ARMC,
		Vertex:              NormalizeDegrees(h.Vertex - offset),
		EquatorialAscendant: NormalizeDegrees(h.EquatorialAscendant - offset),
	}

	if code == HouseWholeSign {
		first := float64(SignOf(out.Ascendant)) * DegreesPerSign
		for i := range out.Cusps {
			out.Cusps[i] = NormalizeDegrees(first + float64(i)*DegreesPerSign)
		}

		return out
	}

	for i, c := range h.Cusps {
		out.Cusps[i] = NormalizeDegrees(c - offset)
	}

	return out
}
