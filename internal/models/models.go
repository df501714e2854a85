// Package models defines the shared data structures passed between the
// calculators, the orchestrator, the scorer and the briefing synthesizer.
package models

import (
	"fmt"
	"math"
	"time"
)

// GeoLocation is an observer position in decimal degrees. Elevation is
// optional and only informational at the accuracy this service targets.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"` // meters above sea level
}

// Validate rejects coordinates outside the valid ranges. NaN and
// infinities are rejected too.
func (g GeoLocation) Validate() error {
	if math.IsNaN(g.Latitude) || math.IsInf(g.Latitude, 0) {
		return fmt.Errorf("latitude is not a number")
	}
	if math.IsNaN(g.Longitude) || math.IsInf(g.Longitude, 0) {
		return fmt.Errorf("longitude is not a number")
	}
	if g.Latitude < -90 || g.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", g.Latitude)
	}
	if g.Longitude < -180 || g.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", g.Longitude)
	}
	return nil
}

// IsPolar reports whether the latitude is high enough that solar events
// can be absent for whole days.
func (g GeoLocation) IsPolar() bool {
	return math.Abs(g.Latitude) > 66.5
}

// EventTime is a timestamp for an event that may simply not happen on a
// given day, such as moonrise or sunset at polar latitudes. A zero-valued
// EventTime means "does not occur", which is distinct from missing data.
type EventTime struct {
	At     time.Time `json:"at,omitempty"`
	Occurs bool      `json:"occurs"`
}

// EventAt wraps a concrete event time.
func EventAt(t time.Time) EventTime {
	return EventTime{At: t, Occurs: true}
}

// NoEvent marks an event that does not occur in the requested window.
func NoEvent() EventTime {
	return EventTime{}
}

// Clock renders the event as HH:MM UTC, or a fixed marker when the event
// does not occur.
func (e EventTime) Clock() string {
	if !e.Occurs {
		return "does not occur"
	}
	return e.At.UTC().Format("15:04")
}

// Provenance records where a calculator's answer came from.
type Provenance string

const (
	// ProvenanceLive means the upstream source answered and parsed.
	ProvenanceLive Provenance = "live"
	// ProvenanceLocalFallback means the upstream failed and a local
	// computation supplied the answer instead.
	ProvenanceLocalFallback Provenance = "local_fallback"
	// ProvenanceUnavailable means neither the source nor any fallback
	// produced an answer.
	ProvenanceUnavailable Provenance = "unavailable"
)

// Failure reason codes attached to non-live results.
const (
	ReasonTimeout    = "timeout"
	ReasonHTTPStatus = "http_status"
	ReasonBadPayload = "bad_payload"
	ReasonNoFallback = "no_fallback"
)

// SourceResult wraps one calculator's output with its provenance. The
// orchestrator returns one of these per domain regardless of outcome, so
// consumers can always distinguish "absent" from "failed".
type SourceResult[T any] struct {
	Source     string        `json:"source"`
	Data       T             `json:"data,omitempty"`
	Provenance Provenance    `json:"provenance"`
	Reason     string        `json:"reason,omitempty"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Available reports whether Data carries a usable answer. A zero-valued
// result is not available.
func (r SourceResult[T]) Available() bool {
	return r.Provenance == ProvenanceLive || r.Provenance == ProvenanceLocalFallback
}

// Live builds a result backed by a successful upstream fetch.
func Live[T any](source string, data T) SourceResult[T] {
	return SourceResult[T]{
		Source:     source,
		Data:       data,
		Provenance: ProvenanceLive,
		FetchedAt:  time.Now().UTC(),
	}
}

// Fallback builds a result computed locally after an upstream failure.
func Fallback[T any](source string, data T, reason string) SourceResult[T] {
	return SourceResult[T]{
		Source:     source,
		Data:       data,
		Provenance: ProvenanceLocalFallback,
		Reason:     reason,
		FetchedAt:  time.Now().UTC(),
	}
}

// Local builds a result for a domain that is always computed locally and
// has no live source. A live fetch never happened, so the provenance is
// local_fallback with no failure reason.
func Local[T any](source string, data T) SourceResult[T] {
	return SourceResult[T]{
		Source:     source,
		Data:       data,
		Provenance: ProvenanceLocalFallback,
		FetchedAt:  time.Now().UTC(),
	}
}

// Unavailable builds a result for a domain that produced no answer.
func Unavailable[T any](source string, reason string) SourceResult[T] {
	return SourceResult[T]{
		Source:     source,
		Provenance: ProvenanceUnavailable,
		Reason:     reason,
		FetchedAt:  time.Now().UTC(),
	}
}
