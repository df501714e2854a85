// Package astro implements the pure astronomical math used by the local
// fallback calculators: Julian dates, solar and lunar positions, twilight
// and rise/set event solving, moon phase, and simplified planet visibility.
//
// All functions are deterministic and do no I/O. Accuracy targets are
// "good enough to decide whether to look up", roughly a minute for event
// times and a percent for illumination, not ephemeris grade.
package astro

import (
	"math"
	"time"
)

// j2000 is the J2000.0 epoch: 2000-01-01 12:00:00 UTC.
var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DaysSinceJ2000 returns the number of UTC days since the J2000.0 epoch.
func DaysSinceJ2000(t time.Time) float64 {
	return t.UTC().Sub(j2000).Hours() / 24.0
}

// JulianDay converts a time to a Julian day number.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	year, month, day := u.Date()
	hour := float64(u.Hour()) +
		float64(u.Minute())/60.0 +
		float64(u.Second())/3600.0 +
		float64(u.Nanosecond())/(3600.0*1e9)

	y := year
	m := int(month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	a := y / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(b) - 1524.5 +
		hour/24.0

	return jd
}

// JulianCenturies returns centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return (JulianDay(t) - 2451545.0) / 36525.0
}

func deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

// Normalize360 wraps an angle in degrees into [0, 360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

// localSiderealDeg returns the local sidereal time in degrees at longitude
// lon (east positive) for time t.
func localSiderealDeg(lon float64, t time.Time) float64 {
	d := DaysSinceJ2000(t)
	gmst := 280.46061837 + 360.98564736629*d
	return Normalize360(gmst + lon)
}

// hourAngleRad returns the hour angle in radians, normalized to [-pi, pi].
func hourAngleRad(lstDeg, raDeg float64) float64 {
	h := deg2Rad(lstDeg) - deg2Rad(raDeg)
	for h > math.Pi {
		h -= 2 * math.Pi
	}
	for h < -math.Pi {
		h += 2 * math.Pi
	}
	return h
}
