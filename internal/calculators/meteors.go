package calculators

import (
	"context"
	"time"

	"skybrief/internal/catalog"
	"skybrief/internal/models"
)

const meteorsSource = "imo-catalog"

// upcomingShowerLimit bounds the "coming up next" list in briefings.
const upcomingShowerLimit = 3

// Meteors reports the showers active on the target date plus the next
// few peaks, from the embedded annual catalog.
func (c *Calculators) Meteors(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[models.MeteorActivity] {
	active, err := catalog.ActiveShowers(date)
	if err != nil {
		return models.Unavailable[models.MeteorActivity](meteorsSource, models.ReasonBadPayload)
	}

	activity := models.MeteorActivity{}
	for _, s := range active {
		activity.Active = append(activity.Active, showerActivity(s, date))
	}

	upcoming, err := catalog.UpcomingShowers(date, upcomingShowerLimit)
	if err == nil {
		for _, s := range upcoming {
			if s.ActiveOn(date) {
				continue
			}
			activity.Upcoming = append(activity.Upcoming, showerActivity(s, date))
		}
	}

	return models.Local(meteorsSource, activity)
}

func showerActivity(s catalog.MeteorShower, date time.Time) models.ShowerActivity {
	daysOff := s.DaysFromPeak(date)
	absOff := daysOff
	if absOff < 0 {
		absOff = -absOff
	}

	effective := float64(s.ZHR) * peakFactor(absOff)

	peakYear := date.Year()
	if daysOff < 0 && int(date.Month()) > s.Peak.Month {
		// Peak is ahead but in the next calendar year.
		peakYear++
	}

	return models.ShowerActivity{
		Name:         s.Name,
		ParentBody:   s.ParentBody,
		Radiant:      s.Radiant,
		ZHR:          s.ZHR,
		EffectiveZHR: effective,
		Peak:         s.PeakIn(peakYear),
		DaysFromPeak: absOff,
		Rating:       showerRating(effective),
	}
}

// peakFactor scales the ZHR down as the date moves away from the peak.
func peakFactor(daysOff int) float64 {
	switch {
	case daysOff == 0:
		return 1.0
	case daysOff <= 2:
		return 0.7
	case daysOff <= 5:
		return 0.4
	default:
		return 0.2
	}
}

func showerRating(effectiveZHR float64) string {
	switch {
	case effectiveZHR >= 80:
		return "Excellent"
	case effectiveZHR >= 40:
		return "Good"
	case effectiveZHR >= 15:
		return "Fair"
	default:
		return "Poor"
	}
}
