// Package briefing synthesizes aggregated sky data and its viewing
// score into a daily briefing: a structured record for machines and a
// narrative paragraph written for screen readers.
package briefing

import (
	"context"
	"fmt"
	"time"

	"skybrief/internal/logger"
	"skybrief/internal/metrics"
	"skybrief/internal/models"
	"skybrief/internal/orchestrator"
	"skybrief/internal/scoring"
)

// DailyBriefing is the synthesized product for one date and location.
type DailyBriefing struct {
	Location    models.GeoLocation   `json:"location"`
	Date        time.Time            `json:"date"`
	GeneratedAt time.Time            `json:"generated_at"`
	Sky         *models.SkyData      `json:"sky"`
	Score       scoring.ViewingScore `json:"score"`
	Narrative   string               `json:"narrative"`
}

// NarrativePolisher rewrites a template narrative into friendlier prose.
// On failure the synthesizer keeps the template text, so a polisher can
// simply return its error.
type NarrativePolisher interface {
	Polish(ctx context.Context, briefing *DailyBriefing) (string, error)
}

// Synthesizer builds briefings from the orchestrator's output.
type Synthesizer struct {
	orch     *orchestrator.Orchestrator
	polisher NarrativePolisher
	log      *logger.Logger
}

// New creates a synthesizer. The polisher may be nil, in which case the
// template narrative ships as-is.
func New(orch *orchestrator.Orchestrator, polisher NarrativePolisher) *Synthesizer {
	return &Synthesizer{
		orch:     orch,
		polisher: polisher,
		log:      logger.GetGlobalLogger().WithComponent("briefing"),
	}
}

// Briefing aggregates, scores and narrates one date and location.
func (s *Synthesizer) Briefing(ctx context.Context, loc models.GeoLocation, date time.Time, opts scoring.Options) (*DailyBriefing, error) {
	sky, err := s.orch.Aggregate(ctx, loc, date)
	if err != nil {
		return nil, fmt.Errorf("aggregating sky data: %w", err)
	}

	b := &DailyBriefing{
		Location:    loc,
		Date:        sky.Date,
		GeneratedAt: time.Now().UTC(),
		Sky:         sky,
		Score:       scoring.Score(sky, opts),
	}
	b.Narrative = Narrative(b)

	if s.polisher != nil {
		polished, err := s.polisher.Polish(ctx, b)
		if err != nil {
			s.log.Warn("narrative polish failed, keeping template text", map[string]interface{}{
				"error": err.Error(),
			})
		} else if polished != "" {
			b.Narrative = polished
		}
	}

	metrics.Briefings.WithLabelValues(b.Score.Category).Inc()
	return b, nil
}

// AsDict flattens the briefing into a tree of primitives and maps, the
// shape serialized on the JSON API.
func (b *DailyBriefing) AsDict() map[string]interface{} {
	out := map[string]interface{}{
		"date": b.Date.Format("2006-01-02"),
		"location": map[string]interface{}{
			"latitude":  b.Location.Latitude,
			"longitude": b.Location.Longitude,
		},
		"generated_at": b.GeneratedAt.Format(time.RFC3339),
		"score":        scoreDict(b.Score),
		"summary":      b.Narrative,
	}

	prov := map[string]interface{}{}
	for domain, p := range b.Sky.ProvenanceSummary() {
		prov[domain] = string(p)
	}
	out["provenance"] = prov

	out["sun"] = sunDict(b.Sky.Sun)
	out["moon"] = moonDict(b.Sky.Moon)
	out["planets"] = planetsDict(b.Sky.Planets)
	out["meteor_showers"] = meteorsDict(b.Sky.Meteors)
	out["eclipse"] = eclipseDict(b.Sky.Eclipse)
	out["space_weather"] = spaceWeatherDict(b.Sky.SpaceWeather)
	out["clouds"] = cloudsDict(b.Sky.Clouds)

	return out
}

func unavailableDict(reason string) map[string]interface{} {
	return map[string]interface{}{
		"available": false,
		"reason":    reason,
	}
}

func scoreDict(s scoring.ViewingScore) map[string]interface{} {
	if !s.Available {
		return unavailableDict("no scoreable factors")
	}

	factors := make([]interface{}, 0, len(s.Factors))
	for _, f := range s.Factors {
		factors = append(factors, map[string]interface{}{
			"name":     f.Name,
			"score":    f.Score,
			"weight":   f.Weight,
			"weighted": f.Weighted,
		})
	}

	recs := make([]interface{}, 0, len(s.Recommendations))
	for _, r := range s.Recommendations {
		recs = append(recs, r)
	}

	return map[string]interface{}{
		"available":       true,
		"value":           s.Score,
		"category":        s.Category,
		"factors":         factors,
		"recommendations": recs,
	}
}

func sunDict(r models.SourceResult[models.SunTimes]) map[string]interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}
	s := r.Data
	return map[string]interface{}{
		"available":          true,
		"sunrise":            s.Sunrise.Clock(),
		"sunset":             s.Sunset.Clock(),
		"solar_noon":         s.SolarNoon.Format("15:04"),
		"day_length_seconds": int(s.DayLength.Seconds()),
		"civil_dawn":         s.CivilDawn.Clock(),
		"civil_dusk":         s.CivilDusk.Clock(),
		"nautical_dawn":      s.NauticalDawn.Clock(),
		"nautical_dusk":      s.NauticalDusk.Clock(),
		"astronomical_dawn":  s.AstronomicalDawn.Clock(),
		"astronomical_dusk":  s.AstronomicalDusk.Clock(),
		"golden_hour_start":  s.GoldenHourStart.Clock(),
		"dark_sky":           s.HasAstronomicalNight(),
	}
}

func moonDict(r models.SourceResult[models.MoonState]) map[string]interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}
	m := r.Data
	return map[string]interface{}{
		"available":            true,
		"phase":                m.Phase,
		"illumination_percent": m.Illumination * 100,
		"age_days":             m.AgeDays,
		"rise":                 m.Rise.Clock(),
		"set":                  m.Set.Clock(),
		"distance_km":          m.DistanceKm,
		"next_new_moon":        m.NextNewMoon.Format("2006-01-02"),
		"next_full_moon":       m.NextFullMoon.Format("2006-01-02"),
	}
}

func planetsDict(r models.SourceResult[[]models.PlanetSighting]) interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}

	planets := make([]interface{}, 0, len(r.Data))
	for _, p := range r.Data {
		planets = append(planets, map[string]interface{}{
			"name":       p.Name,
			"visible":    p.Visible,
			"magnitude":  p.Magnitude,
			"elongation": p.Elongation,
			"window":     p.Window,
			"hint":       p.Hint,
			"rise":       p.Rise.Clock(),
			"set":        p.Set.Clock(),
		})
	}
	return planets
}

func meteorsDict(r models.SourceResult[models.MeteorActivity]) map[string]interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}

	toList := func(showers []models.ShowerActivity) []interface{} {
		list := make([]interface{}, 0, len(showers))
		for _, s := range showers {
			list = append(list, map[string]interface{}{
				"name":           s.Name,
				"parent_body":    s.ParentBody,
				"radiant":        s.Radiant,
				"zhr":            s.ZHR,
				"effective_zhr":  s.EffectiveZHR,
				"peak":           s.Peak.Format("2006-01-02"),
				"days_from_peak": s.DaysFromPeak,
				"rating":         s.Rating,
			})
		}
		return list
	}

	return map[string]interface{}{
		"available": true,
		"active":    toList(r.Data.Active),
		"upcoming":  toList(r.Data.Upcoming),
	}
}

func eclipseDict(r models.SourceResult[models.EclipseOutlook]) map[string]interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}
	e := r.Data

	regions := make([]interface{}, 0, len(e.Regions))
	for _, region := range e.Regions {
		regions = append(regions, region)
	}

	out := map[string]interface{}{
		"available":  true,
		"type":       e.Type,
		"date":       e.Date.Format("2006-01-02"),
		"max_at":     e.MaxAt.Format("15:04"),
		"magnitude":  e.Magnitude,
		"regions":    regions,
		"days_until": e.DaysUntil,
		"soon":       e.IsSoon(),
	}
	if e.DurationMinutes > 0 {
		out["duration_minutes"] = e.DurationMinutes
	}
	if e.Notes != "" {
		out["notes"] = e.Notes
	}
	return out
}

func spaceWeatherDict(r models.SourceResult[models.SpaceWeather]) map[string]interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}
	sw := r.Data

	out := map[string]interface{}{
		"available":           true,
		"kp_now":              sw.KpNow,
		"kp_max_24h":          sw.KpMax24h,
		"activity":            sw.Activity,
		"aurora_latitude":     sw.AuroraLatitude,
		"aurora_outlook":      sw.AuroraOutlook,
		"solar_wind_speed":    sw.SolarWindSpeed,
		"solar_wind_density":  sw.SolarWindDensity,
		"solar_wind_elevated": sw.SolarWindElevated,
	}

	if len(sw.Forecast) > 0 {
		forecast := make([]interface{}, 0, len(sw.Forecast))
		for _, f := range sw.Forecast {
			forecast = append(forecast, map[string]interface{}{
				"time": f.Time.Format(time.RFC3339),
				"kp":   f.Kp,
			})
		}
		out["forecast"] = forecast
	}
	if len(sw.Events) > 0 {
		events := make([]interface{}, 0, len(sw.Events))
		for _, e := range sw.Events {
			events = append(events, map[string]interface{}{
				"title":     e.Title,
				"published": e.Published.Format(time.RFC3339),
			})
		}
		out["events"] = events
	}
	return out
}

func cloudsDict(r models.SourceResult[models.NightClouds]) map[string]interface{} {
	if !r.Available() {
		return unavailableDict(r.Reason)
	}
	c := r.Data
	return map[string]interface{}{
		"available":       true,
		"avg_cloud_cover": c.AvgCloudCover,
		"min_cloud_cover": c.MinCloudCover,
		"avg_low":         c.AvgLow,
		"avg_mid":         c.AvgMid,
		"avg_high":        c.AvgHigh,
		"sample_hours":    c.SampleHours,
	}
}
