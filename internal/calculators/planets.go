package calculators

import (
	"context"
	"sort"
	"time"

	"skybrief/internal/astro"
	"skybrief/internal/models"
)

const planetsSource = "local-ephemeris"

// minPlanetElongation filters out planets too washed out by the Sun to
// be worth listing as visible.
const minPlanetElongation = 15.0

// Planets computes the night's planet sightings. This domain has no
// live endpoint; the mean-element ephemeris always answers, with
// local_fallback provenance.
func (c *Calculators) Planets(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[[]models.PlanetSighting] {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)

	sightings := make([]models.PlanetSighting, 0, len(astro.Planets))
	for _, p := range astro.Planets {
		elongation := astro.PlanetElongation(p, noon)
		window := astro.PlanetViewingWindow(p, elongation)

		s := models.PlanetSighting{
			Name:       p.Name,
			Elongation: elongation,
			Magnitude:  astro.PlanetMagnitude(p, elongation),
			Visible:    window != astro.WindowNotVisible && elongation >= minPlanetElongation,
			Window:     window.String(),
			Hint:       astro.ViewingHint(p, window, elongation),
		}

		if s.Visible {
			rise, set := astro.PlanetRiseSet(p, loc.Latitude, loc.Longitude, date)
			s.Rise = eventTime(rise)
			s.Set = eventTime(set)
		}

		sightings = append(sightings, s)
	}

	// Visible planets first, brightest (lowest magnitude) leading.
	sort.SliceStable(sightings, func(i, j int) bool {
		if sightings[i].Visible != sightings[j].Visible {
			return sightings[i].Visible
		}
		return sightings[i].Magnitude < sightings[j].Magnitude
	})

	return models.Local(planetsSource, sightings)
}
