package ephemeris

import (
	"math"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
)

const (
	deg = math.Pi / 180
	rad = 180 / math.Pi

	auKm = 149597870.7

	// General precession in longitude, degrees per Julian century.
	precessionRate = 1.3969713

	// Lahiri ayanamsa at J2000 and its rate, degrees per Julian century.
	lahiriJ2000 = 23.857092
	lahiriRate  = 1.3969713

	keplerTolerance = 1e-12
	keplerMaxIter   = 30
)

type vec3 struct{ x, y, z float64 }

func (v vec3) sub(o vec3) vec3 { return vec3{v.x - o.x, v.y - o.y, v.z - o.z} }

// spherical returns longitude (degrees, normalized), latitude (degrees)
// and distance.
func (v vec3) spherical() (float64, float64, float64) {
	r := math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)

	return domain.NormalizeDegrees(math.Atan2(v.y, v.x) * rad), math.Atan2(v.z, math.Hypot(v.x, v.y)) * rad, r
}

// heliocentric returns the J2000 ecliptic position of a planet in au.
func heliocentric(el orbitalElements, t float64) vec3 {
	a := el.A.at(t)
	e := el.E.at(t)
	i := el.I.at(t) * deg
	l := el.L.at(t)
	peri := el.Peri.at(t)
	node := el.Node.at(t) * deg

	w := peri*deg - node
	m := math.Remainder(l-peri, 360) * deg

	ea := solveKepler(m, e)

	xp := a * (math.Cos(ea) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(ea)

	cw, sw := math.Cos(w), math.Sin(w)
	cn, sn := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(i), math.Sin(i)

	return vec3{
		x: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		z: sw*si*xp + cw*si*yp,
	}
}

// solveKepler solves M = E - e sin E for the eccentric anomaly by Newton
// iteration. Angles in radians.
func solveKepler(m, e float64) float64 {
	ea := m
	if e > 0.8 {
		ea = math.Pi
	}

	for range keplerMaxIter {
		delta := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= delta

		if math.Abs(delta) < keplerTolerance {
			break
		}
	}

	return ea
}

// geocentric returns the ecliptic longitude, latitude (degrees, mean
// equinox of date) and distance (au) of body at jd.
func (t *elementTable) geocentric(body domain.Body, jd float64) (float64, float64, float64) {
	c := centuries(jd)

	if body == domain.Moon {
		return t.moon(c)
	}

	earth := heliocentric(t.Planets[earthKey], c)

	var v vec3
	if body == domain.Sun {
		v = vec3{}.sub(earth)
	} else {
		v = heliocentric(t.Planets[key(body)], c).sub(earth)
	}

	lon, lat, dist := v.spherical()

	return domain.NormalizeDegrees(lon + precessionRate*c), lat, dist
}

// moon evaluates the truncated lunar series at c centuries from J2000.
// The series is referred to the mean equinox of date already.
func (t *elementTable) moon(c float64) (float64, float64, float64) {
	lp := 218.3164477 + 481267.88123421*c
	d := (297.8501921 + 445267.1114034*c) * deg
	m := (357.5291092 + 35999.0502909*c) * deg
	mp := (134.9633964 + 477198.8675055*c) * deg
	f := (93.2720950 + 483202.0175233*c) * deg

	// Terms in M shrink with the decreasing eccentricity of Earth's orbit.
	ecc := 1 - 0.002516*c - 0.0000074*c*c

	sum := func(terms []lunarTerm, fn func(float64) float64) float64 {
		var total float64

		for _, term := range terms {
			arg := term.D*d + term.M*m + term.MP*mp + term.F*f
			total += term.Coeff * math.Pow(ecc, math.Abs(term.M)) * fn(arg)
		}

		return total
	}

	lon := domain.NormalizeDegrees(lp + sum(t.Moon.Longitude, math.Sin))
	lat := sum(t.Moon.Latitude, math.Sin)
	dist := (385000.56 + sum(t.Moon.Distance, math.Cos)) / auKm

	return lon, lat, dist
}

// lahiri returns the Lahiri ayanamsa in degrees.
func lahiri(jd float64) float64 {
	return lahiriJ2000 + lahiriRate*centuries(jd)
}
