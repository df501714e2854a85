package astro

import (
	"math"
	"time"
)

// PlanetWindow classifies when a planet is worth looking for.
type PlanetWindow int

const (
	WindowNotVisible PlanetWindow = iota
	WindowMorning
	WindowEvening
	WindowAllNight
)

// String returns a short description of the viewing window.
func (w PlanetWindow) String() string {
	switch w {
	case WindowMorning:
		return "Morning sky (before sunrise)"
	case WindowEvening:
		return "Evening sky (after sunset)"
	case WindowAllNight:
		return "Visible most of the night"
	default:
		return "Not visible (too close to Sun)"
	}
}

// PlanetElements holds the simplified mean orbital elements used for
// visibility estimation. Values are NASA/JPL approximations at J2000.0;
// no perturbation terms are carried.
type PlanetElements struct {
	Name               string
	OrbitalPeriodDays  float64
	MagnitudeMin       float64 // brightest (most negative)
	MagnitudeMax       float64 // dimmest
	SemiMajorAxisAU    float64
	Eccentricity       float64
	MeanLongitudeJ2000 float64 // degrees at J2000.0
}

// IsInner reports whether the planet orbits inside Earth's orbit.
func (p PlanetElements) IsInner() bool {
	return p.SemiMajorAxisAU < 1.0
}

var earthElements = PlanetElements{
	Name: "Earth", OrbitalPeriodDays: 365.25, SemiMajorAxisAU: 1.0,
	Eccentricity: 0.017, MeanLongitudeJ2000: 100.46,
}

// Planets lists the seven tracked bodies, ordered outward from the Sun.
var Planets = []PlanetElements{
	{Name: "Mercury", OrbitalPeriodDays: 87.97, MagnitudeMin: -2.6, MagnitudeMax: 5.7, SemiMajorAxisAU: 0.387, Eccentricity: 0.206, MeanLongitudeJ2000: 252.25},
	{Name: "Venus", OrbitalPeriodDays: 224.70, MagnitudeMin: -4.9, MagnitudeMax: -3.8, SemiMajorAxisAU: 0.723, Eccentricity: 0.007, MeanLongitudeJ2000: 181.98},
	{Name: "Mars", OrbitalPeriodDays: 686.98, MagnitudeMin: -2.9, MagnitudeMax: 1.8, SemiMajorAxisAU: 1.524, Eccentricity: 0.093, MeanLongitudeJ2000: 355.45},
	{Name: "Jupiter", OrbitalPeriodDays: 4332.59, MagnitudeMin: -2.9, MagnitudeMax: -1.6, SemiMajorAxisAU: 5.203, Eccentricity: 0.048, MeanLongitudeJ2000: 34.40},
	{Name: "Saturn", OrbitalPeriodDays: 10759.22, MagnitudeMin: -0.5, MagnitudeMax: 1.5, SemiMajorAxisAU: 9.537, Eccentricity: 0.054, MeanLongitudeJ2000: 49.94},
	{Name: "Uranus", OrbitalPeriodDays: 30688.5, MagnitudeMin: 5.3, MagnitudeMax: 5.9, SemiMajorAxisAU: 19.19, Eccentricity: 0.047, MeanLongitudeJ2000: 313.23},
	{Name: "Neptune", OrbitalPeriodDays: 60182.0, MagnitudeMin: 7.8, MagnitudeMax: 8.0, SemiMajorAxisAU: 30.07, Eccentricity: 0.009, MeanLongitudeJ2000: 304.88},
}

// meanLongitude propagates the mean longitude linearly from J2000.0.
func meanLongitude(p PlanetElements, t time.Time) float64 {
	days := DaysSinceJ2000(t)
	dailyMotion := 360.0 / p.OrbitalPeriodDays
	return Normalize360(p.MeanLongitudeJ2000 + dailyMotion*days)
}

// PlanetElongation returns the approximate angular distance from the Sun
// in degrees [0, 180]. Inner planets are capped by their maximum
// elongation; outer planets sweep the full range up to opposition.
func PlanetElongation(p PlanetElements, t time.Time) float64 {
	earthLon := meanLongitude(earthElements, t)
	planetLon := meanLongitude(p, t)

	angleDiff := Normalize360(planetLon - earthLon)

	if p.IsInner() {
		maxElongation := rad2Deg(math.Asin(p.SemiMajorAxisAU))

		var phase float64
		if angleDiff < 180 {
			phase = angleDiff / 180.0
		} else {
			phase = (360 - angleDiff) / 180.0
		}

		return math.Abs(maxElongation * math.Sin(phase*math.Pi))
	}

	if angleDiff > 180 {
		return 360 - angleDiff
	}
	return angleDiff
}

// PlanetViewingWindow classifies visibility from elongation alone. Inner
// planets need at least 18 degrees of separation; outer planets shift from
// morning to evening sky as they approach opposition.
func PlanetViewingWindow(p PlanetElements, elongation float64) PlanetWindow {
	if elongation < 10 {
		return WindowNotVisible
	}

	if p.IsInner() {
		if elongation < 18 {
			return WindowNotVisible
		}
		return WindowEvening
	}

	switch {
	case elongation > 150:
		return WindowAllNight
	case elongation > 90:
		return WindowEvening
	default:
		return WindowMorning
	}
}

// ViewingHint returns a one-line pointer for where and when to look.
func ViewingHint(p PlanetElements, w PlanetWindow, elongation float64) string {
	switch w {
	case WindowAllNight:
		return "Rises at sunset, sets at sunrise"
	case WindowEvening:
		if p.IsInner() {
			return "Look west after sunset"
		}
		return "Best in evening, high after sunset"
	case WindowMorning:
		if elongation > 45 {
			return "Best in morning before sunrise"
		}
		return "Low in morning sky"
	default:
		return ""
	}
}

// PlanetMagnitude estimates the apparent magnitude from the planet's
// magnitude range and its elongation. Outer planets brighten toward
// opposition; inner planets are brightest at moderate elongation.
func PlanetMagnitude(p PlanetElements, elongation float64) float64 {
	if p.IsInner() {
		switch {
		case elongation < 20:
			return p.MagnitudeMax
		case elongation > 40:
			return (p.MagnitudeMin + p.MagnitudeMax) / 2
		default:
			return p.MagnitudeMin
		}
	}

	factor := elongation / 180.0
	return p.MagnitudeMax - (p.MagnitudeMax-p.MagnitudeMin)*factor
}

// planetEquatorial returns the approximate geocentric RA/Dec of a planet,
// treating orbits as circular and coplanar with the ecliptic. Crude, but
// sufficient for rise/set estimates to tens of minutes.
func planetEquatorial(p PlanetElements, t time.Time) Equatorial {
	earthLon := deg2Rad(meanLongitude(earthElements, t))
	planetLon := deg2Rad(meanLongitude(p, t))

	// Heliocentric positions in the ecliptic plane (AU).
	ex := math.Cos(earthLon)
	ey := math.Sin(earthLon)
	px := p.SemiMajorAxisAU * math.Cos(planetLon)
	py := p.SemiMajorAxisAU * math.Sin(planetLon)

	// Geocentric ecliptic longitude.
	gLon := math.Atan2(py-ey, px-ex)

	d := DaysSinceJ2000(t)
	eps := deg2Rad(23.439 - 0.00000036*d)

	x := math.Cos(gLon)
	y := math.Cos(eps) * math.Sin(gLon)
	z := math.Sin(eps) * math.Sin(gLon)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}

	return Equatorial{
		RA:  rad2Deg(ra),
		Dec: rad2Deg(math.Asin(z)),
	}
}

// PlanetAltitude computes the planet's approximate altitude in degrees.
func PlanetAltitude(p PlanetElements, lat, lon float64, t time.Time) float64 {
	eq := planetEquatorial(p, t)

	decRad := deg2Rad(eq.Dec)
	latRad := deg2Rad(lat)

	h := hourAngleRad(localSiderealDeg(lon, t), eq.RA)

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(h)
	return rad2Deg(math.Asin(sinAlt))
}

// PlanetRiseSet estimates the planet's rise and set times for the
// observer's local calendar day of date at (lat, lon).
func PlanetRiseSet(p PlanetElements, lat, lon float64, date time.Time) (rise, set EventResult) {
	start, end := localDayWindow(lon, date)

	altFunc := func(t time.Time) float64 {
		return PlanetAltitude(p, lat, lon, t)
	}

	rise = FindAltitudeEvent(altFunc, start, end, SunHorizonAltitude, CrossingUp, solverSteps, solverTolerance)
	set = FindAltitudeEvent(altFunc, start, end, SunHorizonAltitude, CrossingDown, solverSteps, solverTolerance)
	return rise, set
}
