package ephemeris

import "math"

const (
	// J2000 is the Julian Day of 2000-01-01 12:00 TT.
	J2000 = 2451545.0

	daysPerCentury = 36525.0
)

// JulianDay converts a proleptic Gregorian UTC date to a Julian Day
// (Meeus, Astronomical Algorithms, ch. 7). Dates before the 1582 reform
// use the Julian calendar.
func JulianDay(year, month, day int, hour float64) float64 {
	y, m := float64(year), float64(month)
	if month <= 2 {
		y--
		m += 12
	}

	var b float64
	if year > 1582 || (year == 1582 && (month > 10 || (month == 10 && day >= 15))) {
		a := math.Floor(y / 100)
		b = 2 - a + math.Floor(a/4)
	}

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) +
		float64(day) + hour/24 + b - 1524.5
}

// centuries returns Julian centuries since J2000.
func centuries(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}
