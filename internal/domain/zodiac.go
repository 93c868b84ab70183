package domain

import (
	"math"
	"strings"
)

// DegreesPerSign is the width of every zodiac sign.
const DegreesPerSign = 30.0

// Sign is one of the 12 zodiac signs, Aries = 0.
type Sign int

// Signs in ecliptic order.
const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signSymbols = [...]string{
	"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓",
}

// String returns the sign's name.
func (s Sign) String() string {
	return signNames[((int(s)%12)+12)%12]
}

// Symbol returns the sign's glyph.
func (s Sign) Symbol() string {
	return signSymbols[((int(s)%12)+12)%12]
}

// ParseSign parses a sign name, ignoring case.
func ParseSign(name string) (Sign, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range signNames {
		if strings.EqualFold(n, trimmed) {
			return Sign(i), nil
		}
	}

	return 0, NewValidationErrorWithValue("sign", "unknown zodiac sign", name)
}

// NormalizeDegrees maps any finite angle into [0,360).
func NormalizeDegrees(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}

	// math.Mod(-1e-15, 360) + 360 rounds to 360.
	if n >= 360 {
		n = 0
	}

	return n
}

// SignOf returns the sign containing an ecliptic longitude.
func SignOf(longitude float64) Sign {
	return Sign(int(math.Floor(NormalizeDegrees(longitude)/DegreesPerSign)) % 12)
}

// DegreeInSign returns the offset of a longitude inside its sign, in [0,30).
func DegreeInSign(longitude float64) float64 {
	return math.Mod(NormalizeDegrees(longitude), DegreesPerSign)
}

// ZodiacMode selects the reference frame for longitudes.
type ZodiacMode string

const (
	// ZodiacTropical measures from the vernal equinox.
	ZodiacTropical ZodiacMode = "tropical"

	// ZodiacSidereal measures from the fixed stars (Lahiri ayanamsa).
	ZodiacSidereal ZodiacMode = "sidereal"
)

// ParseZodiacMode parses a zodiac mode. Empty means tropical.
func ParseZodiacMode(s string) (ZodiacMode, error) {
	switch ZodiacMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ZodiacTropical:
		return ZodiacTropical, nil
	case ZodiacSidereal:
		return ZodiacSidereal, nil
	default:
		return "", NewValidationErrorWithValue("zodiac", "must be tropical or sidereal", s)
	}
}
