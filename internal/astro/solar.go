package astro

import (
	"math"
	"time"
)

// Equatorial represents equatorial coordinates (right ascension and
// declination) in degrees. RA is in degrees (0-360).
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// Altitude targets for the standard solar events, in degrees. The horizon
// value accounts for refraction plus the Sun's apparent radius (90°50'
// zenith).
const (
	SunHorizonAltitude           = -0.833
	CivilTwilightAltitude        = -6.0
	NauticalTwilightAltitude     = -12.0
	AstronomicalTwilightAltitude = -18.0
)

// SunEquatorial returns an approximate geocentric RA/Dec for the Sun at
// time t, using a simplified NOAA/Meeus-style low-order series. Good to
// arcminute-level accuracy, which keeps event times inside a minute.
func SunEquatorial(t time.Time) Equatorial {
	d := DaysSinceJ2000(t)

	// Mean anomaly and mean longitude of the Sun (deg)
	g := deg2Rad(357.529 + 0.98560028*d)
	q := deg2Rad(280.459 + 0.98564736*d)

	// Ecliptic longitude with equation of center
	l := q +
		deg2Rad(1.915)*math.Sin(g) +
		deg2Rad(0.020)*math.Sin(2*g)

	// Obliquity of the ecliptic (deg)
	eps := deg2Rad(23.439 - 0.00000036*d)

	x := math.Cos(l)
	y := math.Cos(eps) * math.Sin(l)
	z := math.Sin(eps) * math.Sin(l)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(z)

	return Equatorial{
		RA:  rad2Deg(ra),
		Dec: rad2Deg(dec),
	}
}

// SunAltitude computes the Sun's approximate geometric altitude (degrees)
// at geographic location (lat, lon) at time t.
func SunAltitude(lat, lon float64, t time.Time) float64 {
	eq := SunEquatorial(t)

	decRad := deg2Rad(eq.Dec)
	latRad := deg2Rad(lat)

	h := hourAngleRad(localSiderealDeg(lon, t), eq.RA)

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(h)
	return rad2Deg(math.Asin(sinAlt))
}

// localDayWindow bounds the observer's mean solar calendar day in UTC:
// UTC midnight of date shifted by -lon/15 hours. Searching this window
// keeps a night's events together even when they straddle UTC midnight,
// so a west-longitude evening dusk is not confused with the previous one.
func localDayWindow(lon float64, date time.Time) (start, end time.Time) {
	utcMidnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start = utcMidnight.Add(-time.Duration(lon / 15.0 * float64(time.Hour)))
	return start, start.Add(24 * time.Hour)
}

// SunCrossings finds the times when the Sun's altitude crosses targetAlt
// (degrees) during the observer's local calendar day of date at (lat,
// lon): the upward crossing (rise/dawn) and the downward crossing
// (set/dusk). A missing crossing means the event does not occur on that
// day (polar conditions). Returned times are UTC.
func SunCrossings(lat, lon float64, date time.Time, targetAlt float64) (rise, set EventResult) {
	start, end := localDayWindow(lon, date)

	altFunc := func(t time.Time) float64 {
		return SunAltitude(lat, lon, t)
	}

	rise = FindAltitudeEvent(altFunc, start, end, targetAlt, CrossingUp, solverSteps, solverTolerance)
	set = FindAltitudeEvent(altFunc, start, end, targetAlt, CrossingDown, solverSteps, solverTolerance)
	return rise, set
}

// SunRiseSet computes sunrise and sunset for the observer's local
// calendar day of date.
func SunRiseSet(lat, lon float64, date time.Time) (rise, set EventResult) {
	return SunCrossings(lat, lon, date, SunHorizonAltitude)
}

// SolarNoon estimates the instant of local solar noon: the midpoint of
// sunrise and sunset when both occur, otherwise the time of maximum
// altitude found by sampling.
func SolarNoon(lat, lon float64, date time.Time) time.Time {
	rise, set := SunRiseSet(lat, lon, date)
	if rise.OK && set.OK {
		return rise.Time.Add(set.Time.Sub(rise.Time) / 2)
	}

	start, _ := localDayWindow(lon, date)
	best := start
	bestAlt := SunAltitude(lat, lon, start)
	for i := 1; i < solverSteps; i++ {
		t := start.Add(time.Duration(i) * 30 * time.Minute)
		if alt := SunAltitude(lat, lon, t); alt > bestAlt {
			best, bestAlt = t, alt
		}
	}
	return best
}
