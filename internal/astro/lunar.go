package astro

import (
	"math"
	"time"
)

// SynodicMonth is the new-moon-to-new-moon period in days.
const SynodicMonth = 29.53058867

// referenceNewMoon is a known new moon: 2000-01-06 18:14 UTC.
var referenceNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// ReferenceNewMoon returns the epoch used for synodic phase interpolation.
func ReferenceNewMoon() time.Time {
	return referenceNewMoon
}

// MoonPhase identifies one of the eight conventional phase names.
type MoonPhase int

const (
	NewMoon MoonPhase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var moonPhaseNames = [...]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// String returns the conventional phase name.
func (p MoonPhase) String() string {
	if p < NewMoon || p > WaningCrescent {
		return "Unknown"
	}
	return moonPhaseNames[p]
}

// MoonPhaseFromName maps a conventional phase name back to its enum value.
// The second return is false for unrecognized names.
func MoonPhaseFromName(name string) (MoonPhase, bool) {
	for i, n := range moonPhaseNames {
		if n == name {
			return MoonPhase(i), true
		}
	}
	return NewMoon, false
}

// MoonAge returns the moon age in days since new moon (0 to ~29.53).
func MoonAge(t time.Time) float64 {
	days := t.UTC().Sub(referenceNewMoon).Hours() / 24.0
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}
	return age
}

// MoonPhaseAngle returns the phase angle in degrees [0, 360), 0 at new
// moon and 180 at full moon.
func MoonPhaseAngle(t time.Time) float64 {
	return MoonAge(t) / SynodicMonth * 360.0
}

// MoonIllumination returns the illuminated fraction of the lunar disk
// [0, 1], via the (1 - cos) / 2 curve over the phase angle.
func MoonIllumination(t time.Time) float64 {
	angle := deg2Rad(MoonPhaseAngle(t))
	return (1 - math.Cos(angle)) / 2
}

// MoonPhaseAt buckets the phase angle into the eight conventional names.
// Bins are 45 degrees wide and centered on the cardinal phases, so New
// covers [337.5, 22.5) and Full covers [157.5, 202.5).
func MoonPhaseAt(t time.Time) MoonPhase {
	angle := Normalize360(MoonPhaseAngle(t) + 22.5)
	return MoonPhase(int(angle/45.0) % 8)
}

// NextMoonPhase finds the next instant after t at which the phase angle
// reaches the center of the given phase, by stepping then bisecting on the
// angular distance. Resolution is about a minute.
func NextMoonPhase(after time.Time, phase MoonPhase) time.Time {
	targetAngle := float64(phase) * 45.0

	current := MoonPhaseAngle(after)
	deltaDeg := Normalize360(targetAngle - current)
	if deltaDeg < 1e-9 {
		deltaDeg = 360.0
	}
	daysUntil := deltaDeg / 360.0 * SynodicMonth

	estimate := after.Add(time.Duration(daysUntil * 24 * float64(time.Hour)))

	// Refine: bisect on the signed angular offset around the estimate.
	lo := estimate.Add(-12 * time.Hour)
	hi := estimate.Add(12 * time.Hour)
	offset := func(t time.Time) float64 {
		d := Normalize360(MoonPhaseAngle(t) - targetAngle)
		if d > 180 {
			d -= 360
		}
		return d
	}
	for hi.Sub(lo) > time.Minute {
		mid := lo.Add(hi.Sub(lo) / 2)
		if offset(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}

// moonEquatorial returns an approximate geocentric RA/Dec for the Moon,
// using a truncated Meeus-style series with the dominant periodic terms.
func moonEquatorial(t time.Time) Equatorial {
	d := DaysSinceJ2000(t)

	// Fundamental arguments, deg/day linear coefficients.
	lp := Normalize360(218.3164477 + 13.17639648*d) // mean longitude of the Moon
	m := Normalize360(357.5291092 + 0.98560028*d)   // mean anomaly of the Sun
	mm := Normalize360(134.9633964 + 13.06499295*d) // mean anomaly of the Moon
	dd := Normalize360(297.8501921 + 12.19074912*d) // mean elongation from the Sun
	f := Normalize360(93.2720950 + 13.22935024*d)   // argument of latitude

	lr := deg2Rad(lp)
	mr := deg2Rad(m)
	mmr := deg2Rad(mm)
	dr := deg2Rad(dd)
	fr := deg2Rad(f)

	lon := lr +
		deg2Rad(6.289)*math.Sin(mmr) +
		deg2Rad(1.274)*math.Sin(2*dr-mmr) +
		deg2Rad(0.658)*math.Sin(2*dr) +
		deg2Rad(0.214)*math.Sin(2*mmr) -
		deg2Rad(0.186)*math.Sin(mr) -
		deg2Rad(0.114)*math.Sin(2*fr)

	lat := deg2Rad(5.128)*math.Sin(fr) +
		deg2Rad(0.280)*math.Sin(mmr+fr) +
		deg2Rad(0.277)*math.Sin(mmr-fr) +
		deg2Rad(0.173)*math.Sin(2*dr-fr)

	eps := deg2Rad(23.439291 - 0.0000137*d)

	x := math.Cos(lat) * math.Cos(lon)
	y := math.Cos(lat) * math.Sin(lon)
	z := math.Sin(lat)

	yEq := y*math.Cos(eps) - z*math.Sin(eps)
	zEq := y*math.Sin(eps) + z*math.Cos(eps)

	ra := math.Atan2(yEq, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(zEq)

	return Equatorial{
		RA:  rad2Deg(ra),
		Dec: rad2Deg(dec),
	}
}

// MoonDistance returns the approximate Earth-Moon distance in km from a
// truncated cosine series over the Moon's mean anomaly and elongation.
func MoonDistance(t time.Time) float64 {
	tc := JulianCenturies(t)

	dElong := Normalize360(297.8501921 + 445267.1114034*tc) // mean elongation
	m1 := Normalize360(134.9633964 + 477198.8675055*tc)     // Moon mean anomaly

	dr := deg2Rad(dElong)
	m1r := deg2Rad(m1)

	return 385000.56 -
		20905.0*math.Cos(m1r) -
		3699.0*math.Cos(2*dr-m1r) -
		2956.0*math.Cos(2*dr) -
		570.0*math.Cos(2*m1r) -
		246.0*math.Cos(2*dr+m1r)
}

// moonHorizonAltitude is the altitude of the Moon's center when the upper
// limb sits on the apparent horizon, with a small distance-dependent
// correction for the changing angular size.
func moonHorizonAltitude(distanceKm float64) float64 {
	const (
		meanDistKm  = 384400.0
		baseHorizon = -0.90
		kScale      = 0.6
	)

	if distanceKm <= 0 {
		return baseHorizon
	}

	frac := (distanceKm - meanDistKm) / meanDistKm
	return baseHorizon - kScale*frac
}

// MoonAltitude computes the Moon's approximate topocentric altitude in
// degrees at (lat, lon) at time t, correcting the geocentric position for
// horizontal parallax.
func MoonAltitude(lat, lon float64, t time.Time) float64 {
	eq := moonEquatorial(t)
	dist := MoonDistance(t)

	raRad := deg2Rad(eq.RA)
	decRad := deg2Rad(eq.Dec)
	latRad := deg2Rad(lat)

	lstDeg := localSiderealDeg(lon, t)
	h := hourAngleRad(lstDeg, eq.RA)

	pi := horizontalParallax(dist)

	sinPhi := math.Sin(latRad)
	cosPhi := math.Cos(latRad)

	// Meeus approximate factors for an observer at sea level.
	rhoSinPhi := 0.99883 * sinPhi
	rhoCosPhi := 0.99883 * cosPhi

	sinDec := math.Sin(decRad)
	cosDec := math.Cos(decRad)
	sinPi := math.Sin(pi)

	deltaAlpha := math.Atan2(
		-rhoCosPhi*sinPi*math.Sin(h),
		cosDec-rhoCosPhi*sinPi*math.Cos(h),
	)

	raTopo := raRad + deltaAlpha
	decTopo := math.Atan2(
		sinDec-rhoSinPhi*sinPi,
		cosDec-rhoCosPhi*sinPi*math.Cos(h),
	)

	ht := hourAngleRad(lstDeg, rad2Deg(raTopo))

	sinAlt := sinPhi*math.Sin(decTopo) + cosPhi*math.Cos(decTopo)*math.Cos(ht)
	return rad2Deg(math.Asin(sinAlt))
}

func horizontalParallax(distanceKm float64) float64 {
	const earthRadiusKm = 6378.14
	if distanceKm <= earthRadiusKm {
		return deg2Rad(1.0)
	}
	return math.Asin(earthRadiusKm / distanceKm)
}

// MoonRiseSet computes the Moon's approximate rise and set times for the
// observer's local calendar day of date at (lat, lon). Either event may
// not occur on a given day since the Moon's day is longer than 24 hours.
func MoonRiseSet(lat, lon float64, date time.Time) (rise, set EventResult) {
	start, end := localDayWindow(lon, date)

	altFunc := func(t time.Time) float64 {
		return MoonAltitude(lat, lon, t) - moonHorizonAltitude(MoonDistance(t))
	}

	rise = FindAltitudeEvent(altFunc, start, end, 0, CrossingUp, solverSteps, solverTolerance)
	set = FindAltitudeEvent(altFunc, start, end, 0, CrossingDown, solverSteps, solverTolerance)
	return rise, set
}
