package ephemeris

import (
	"math"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

const (
	// PolarLatitude is where Placidus semi-arcs stop being defined for
	// parts of the ecliptic; at or beyond it Placidus falls back to Porphyry.
	PolarLatitude = 66.0

	placidusTolerance = 1e-9
	placidusMaxIter   = 100
)

// SiderealTime returns Greenwich mean sidereal time in degrees (Meeus 12.4).
func SiderealTime(jd float64) float64 {
	t := centuries(jd)

	return domain.NormalizeDegrees(280.46061837 + 360.98564736629*(jd-J2000) +
		0.000387933*t*t - t*t*t/38710000)
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func Obliquity(jd float64) float64 {
	t := centuries(jd)

	return 23.43929111 - 0.0130041667*t - 1.6667e-7*t*t + 5.0278e-7*t*t*t
}

// ComputeHouses derives the angles and cusps for a moment and place.
// lon is east-positive.
func ComputeHouses(jd, lat, lon float64, system domain.HouseSystemCode) (domain.HouseCusps, error) {
	armc := domain.NormalizeDegrees(SiderealTime(jd) + lon)

	return housesFromARMC(armc, lat, Obliquity(jd), system)
}

func housesFromARMC(armc, lat, eps float64, system domain.HouseSystemCode) (domain.HouseCusps, error) {
	h := domain.HouseCusps{
		ARMC:                armc,
		Midheaven:           raToEcliptic(armc, eps),
		Ascendant:           ascendant(armc, lat, eps),
		Vertex:              ascendant(armc+180, 90-lat, eps),
		EquatorialAscendant: ascendant(armc, 0, eps),
	}

	switch system {
	case domain.HouseEqual:
		h.Cusps = equalCusps(h.Ascendant)
	case domain.HouseWholeSign:
		h.Cusps = equalCusps(math.Floor(h.Ascendant/domain.DegreesPerSign) * domain.DegreesPerSign)
	case domain.HousePorphyry:
		h.Cusps = porphyryCusps(h.Ascendant, h.Midheaven)
	case domain.HousePlacidus:
		cusps, ok := placidusCusps(h, lat, eps)
		if !ok {
			cusps = porphyryCusps(h.Ascendant, h.Midheaven)
		}

		h.Cusps = cusps
	default:
		return domain.HouseCusps{}, domain.NewValidationErrorWithValue("houseSystem", "unsupported house system", string(system))
	}

	return h, nil
}

// raToEcliptic returns the ecliptic longitude on the meridian with right
// ascension ra.
func raToEcliptic(ra, eps float64) float64 {
	r := ra * deg

	return domain.NormalizeDegrees(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(eps*deg)) * rad)
}

// ascendant returns the ecliptic longitude rising in the east for a
// horizon at latitude lat.
func ascendant(armc, lat, eps float64) float64 {
	a, e, p := armc*deg, eps*deg, lat*deg

	return domain.NormalizeDegrees(math.Atan2(math.Cos(a), -(math.Sin(a)*math.Cos(e) + math.Tan(p)*math.Sin(e))) * rad)
}

func equalCusps(start float64) [12]float64 {
	var c [12]float64
	for i := range c {
		c[i] = domain.NormalizeDegrees(start + float64(i)*domain.DegreesPerSign)
	}

	return c
}

// porphyryCusps trisects each quadrant between the angles.
func porphyryCusps(asc, mc float64) [12]float64 {
	ic := domain.NormalizeDegrees(mc + 180)

	var c [12]float64

	c[9] = mc
	c[0] = asc
	c[3] = ic

	upper := domain.NormalizeDegrees(asc - mc)
	lower := domain.NormalizeDegrees(ic - asc)

	c[10] = domain.NormalizeDegrees(mc + upper/3)
	c[11] = domain.NormalizeDegrees(mc + 2*upper/3)
	c[1] = domain.NormalizeDegrees(asc + lower/3)
	c[2] = domain.NormalizeDegrees(asc + 2*lower/3)

	return opposites(c)
}

// opposites fills houses 5 through 9 from the cusps facing them.
func opposites(c [12]float64) [12]float64 {
	for _, i := range []int{0, 1, 2, 10, 11} {
		c[(i+6)%12] = domain.NormalizeDegrees(c[i] + 180)
	}

	return c
}

// placidusCusps trisects the diurnal and nocturnal semi-arcs in time.
// It reports false where a semi-arc is undefined.
func placidusCusps(h domain.HouseCusps, lat, eps float64) ([12]float64, bool) {
	if math.Abs(lat) >= PolarLatitude {
		return [12]float64{}, false
	}

	type target struct {
		house     int
		fraction  float64
		nocturnal bool
	}

	targets := []target{
		{house: 11, fraction: 1.0 / 3},
		{house: 12, fraction: 2.0 / 3},
		{house: 2, fraction: 2.0 / 3, nocturnal: true},
		{house: 3, fraction: 1.0 / 3, nocturnal: true},
	}

	var c [12]float64

	c[0] = h.Ascendant
	c[9] = h.Midheaven

	tanLat := math.Tan(lat * deg)
	sinEps := math.Sin(eps * deg)

	for _, tg := range targets {
		ra := h.ARMC + tg.fraction*90
		if tg.nocturnal {
			ra = h.ARMC + 180 - tg.fraction*90
		}

		lon := raToEcliptic(ra, eps)
		converged := false

		for range placidusMaxIter {
			decl := math.Asin(sinEps * math.Sin(lon*deg))

			x := -tanLat * math.Tan(decl)
			if x < -1 || x > 1 {
				return [12]float64{}, false
			}

			diurnal := math.Acos(x) * rad

			if tg.nocturnal {
				ra = h.ARMC + 180 - tg.fraction*(180-diurnal)
			} else {
				ra = h.ARMC + tg.fraction*diurnal
			}

			next := raToEcliptic(ra, eps)
			if math.Abs(math.Remainder(next-lon, 360)) < placidusTolerance {
				lon = next
				converged = true

				break
			}

			lon = next
		}

		if !converged {
			return [12]float64{}, false
		}

		c[tg.house-1] = lon
	}

	return opposites(c), true
}
