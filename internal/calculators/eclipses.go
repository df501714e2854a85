package calculators

import (
	"context"
	"time"

	"skybrief/internal/catalog"
	"skybrief/internal/models"
)

const eclipseSource = "eclipse-catalog"

// Eclipse reports the next eclipse at or after the target date from the
// embedded table. Past the table horizon the domain is unavailable
// rather than silently empty.
func (c *Calculators) Eclipse(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[models.EclipseOutlook] {
	next, ok, err := catalog.NextEclipse(date)
	if err != nil {
		return models.Unavailable[models.EclipseOutlook](eclipseSource, models.ReasonBadPayload)
	}
	if !ok {
		return models.Unavailable[models.EclipseOutlook](eclipseSource, models.ReasonNoFallback)
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	daysUntil := int(next.Date.Sub(midnight).Hours() / 24)

	outlook := models.EclipseOutlook{
		Type:            next.Type,
		Date:            next.Date,
		MaxAt:           next.MaxAt,
		DurationMinutes: next.DurationMinutes,
		Magnitude:       next.Magnitude,
		Regions:         next.Regions,
		Notes:           next.Notes,
		DaysUntil:       daysUntil,
	}

	return models.Local(eclipseSource, outlook)
}
