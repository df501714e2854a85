package astro

import (
	"time"
)

// AltitudeFunc returns altitude in degrees at time t (topocentric).
type AltitudeFunc func(t time.Time) float64

// EventType describes whether we are looking for a rising or setting event.
type EventType int

const (
	// CrossingUp means altitude is increasing through the target value (rise).
	CrossingUp EventType = iota
	// CrossingDown means altitude is decreasing through the target value (set).
	CrossingDown
)

// EventResult holds the output of an altitude event search.
type EventResult struct {
	Time time.Time // approximate time of the event
	OK   bool      // false means the event does not occur in the window
}

const (
	// solverSteps is the number of samples across a 24h search window,
	// one every 30 minutes.
	solverSteps = 48
	// solverTolerance bounds the bisection: converges well inside a minute.
	solverTolerance = 30 * time.Second
)

// FindAltitudeEvent searches for a time in [start, end] where the altitude
// function crosses targetDeg in the direction specified by eventType, using
// a bracket-then-bisect strategy. An absent crossing (polar day or night)
// returns OK=false rather than iterating forever.
func FindAltitudeEvent(f AltitudeFunc, start, end time.Time, targetDeg float64, eventType EventType, steps int, tol time.Duration) EventResult {
	if !start.Before(end) {
		return EventResult{OK: false}
	}
	if steps < 2 {
		steps = 2
	}

	// Sample across [start, end] to find a sign change in (altitude - target)
	interval := end.Sub(start) / time.Duration(steps-1)

	var (
		prevT   = start
		prevAlt = f(prevT) - targetDeg
	)

	for i := 1; i < steps; i++ {
		t := start.Add(time.Duration(i) * interval)
		alt := f(t) - targetDeg

		if hasCrossing(prevAlt, alt, eventType) {
			return bisect(f, prevT, t, targetDeg, eventType, tol)
		}

		prevT, prevAlt = t, alt
	}

	return EventResult{OK: false}
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return a1*a2 <= 0
	}
}

func bisect(f AltitudeFunc, a, b time.Time, targetDeg float64, eventType EventType, tol time.Duration) EventResult {
	altA := f(a) - targetDeg

	if !hasCrossing(altA, f(b)-targetDeg, eventType) {
		return EventResult{OK: false}
	}

	for b.Sub(a) > tol {
		mid := a.Add(b.Sub(a) / 2)
		altM := f(mid) - targetDeg

		if hasCrossing(altA, altM, eventType) {
			b = mid
		} else {
			a = mid
			altA = altM
		}
	}

	return EventResult{
		Time: a.Add(b.Sub(a) / 2),
		OK:   true,
	}
}
