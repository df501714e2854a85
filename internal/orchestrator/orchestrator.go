// Package orchestrator fans the domain calculators out concurrently and
// assembles their results into one SkyData. A failing domain never
// blocks or poisons the others; the caller always receives the complete
// result set with per-domain provenance.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"skybrief/internal/calculators"
	"skybrief/internal/logger"
	"skybrief/internal/metrics"
	"skybrief/internal/models"
)

// Orchestrator coordinates one aggregation pass over all domains.
type Orchestrator struct {
	calc *calculators.Calculators
	log  *logger.Logger
}

// New creates an orchestrator over the given calculator set.
func New(calc *calculators.Calculators) *Orchestrator {
	return &Orchestrator{
		calc: calc,
		log:  logger.GetGlobalLogger().WithComponent("orchestrator"),
	}
}

// Aggregate runs every calculator concurrently and collects the results.
// An invalid location fails fast; nothing else does.
func (o *Orchestrator) Aggregate(ctx context.Context, loc models.GeoLocation, date time.Time) (*models.SkyData, error) {
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}

	o.log.Info("starting sky data aggregation", map[string]interface{}{
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"date":      date.UTC().Format("2006-01-02"),
	})

	moonChan := make(chan models.SourceResult[models.MoonState], 1)
	sunChan := make(chan models.SourceResult[models.SunTimes], 1)
	planetsChan := make(chan models.SourceResult[[]models.PlanetSighting], 1)
	meteorsChan := make(chan models.SourceResult[models.MeteorActivity], 1)
	eclipseChan := make(chan models.SourceResult[models.EclipseOutlook], 1)
	swChan := make(chan models.SourceResult[models.SpaceWeather], 1)
	cloudsChan := make(chan models.SourceResult[models.NightClouds], 1)

	go func() {
		start := time.Now()
		r := o.calc.Moon(ctx, loc, date)
		r.Elapsed = time.Since(start)
		moonChan <- r
	}()
	go func() {
		start := time.Now()
		r := o.calc.Sun(ctx, loc, date)
		r.Elapsed = time.Since(start)
		sunChan <- r
	}()
	go func() {
		start := time.Now()
		r := o.calc.Planets(ctx, loc, date)
		r.Elapsed = time.Since(start)
		planetsChan <- r
	}()
	go func() {
		start := time.Now()
		r := o.calc.Meteors(ctx, loc, date)
		r.Elapsed = time.Since(start)
		meteorsChan <- r
	}()
	go func() {
		start := time.Now()
		r := o.calc.Eclipse(ctx, loc, date)
		r.Elapsed = time.Since(start)
		eclipseChan <- r
	}()
	go func() {
		start := time.Now()
		r := o.calc.SpaceWeather(ctx, loc, date)
		r.Elapsed = time.Since(start)
		swChan <- r
	}()
	go func() {
		start := time.Now()
		r := o.calc.Clouds(ctx, loc, date)
		r.Elapsed = time.Since(start)
		cloudsChan <- r
	}()

	data := &models.SkyData{
		Location: loc,
		Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
	}

	completed := 0
	for completed < 7 {
		select {
		case r := <-moonChan:
			o.record("moon", r.Provenance, r.Reason, r.Elapsed)
			data.Moon = r
			completed++
		case r := <-sunChan:
			o.record("sun", r.Provenance, r.Reason, r.Elapsed)
			data.Sun = r
			completed++
		case r := <-planetsChan:
			o.record("planets", r.Provenance, r.Reason, r.Elapsed)
			data.Planets = r
			completed++
		case r := <-meteorsChan:
			o.record("meteors", r.Provenance, r.Reason, r.Elapsed)
			data.Meteors = r
			completed++
		case r := <-eclipseChan:
			o.record("eclipse", r.Provenance, r.Reason, r.Elapsed)
			data.Eclipse = r
			completed++
		case r := <-swChan:
			o.record("space_weather", r.Provenance, r.Reason, r.Elapsed)
			data.SpaceWeather = r
			completed++
		case r := <-cloudsChan:
			o.record("clouds", r.Provenance, r.Reason, r.Elapsed)
			data.Clouds = r
			completed++
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	o.log.Info("aggregation completed", map[string]interface{}{
		"provenance": data.ProvenanceSummary(),
	})
	return data, nil
}

// record instruments one domain result. Local-only domains report
// local_fallback without a reason, which is their normal state, so only
// actual upstream failures are worth a warning.
func (o *Orchestrator) record(domain string, prov models.Provenance, reason string, elapsed time.Duration) {
	metrics.ObserveSource(domain, string(prov), elapsed)
	if prov == models.ProvenanceUnavailable || (prov == models.ProvenanceLocalFallback && reason != "") {
		o.log.Warn("domain degraded", map[string]interface{}{
			"domain":     domain,
			"provenance": string(prov),
			"reason":     reason,
		})
	}
}
