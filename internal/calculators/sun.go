package calculators

import (
	"context"
	"fmt"
	"math"
	"time"

	"skybrief/internal/astro"
	"skybrief/internal/models"
)

const sunSource = "sunrise-sunset.org"

// goldenHourAltitude is the solar altitude where evening light turns
// warm, conventionally 6 degrees.
const goldenHourAltitude = 6.0

// sunriseSunsetResponse mirrors the sunrise-sunset.org JSON payload with
// formatted=0 (ISO-8601 times, day_length in seconds).
type sunriseSunsetResponse struct {
	Status  string `json:"status"`
	Results struct {
		Sunrise                   string `json:"sunrise"`
		Sunset                    string `json:"sunset"`
		SolarNoon                 string `json:"solar_noon"`
		DayLength                 int    `json:"day_length"`
		CivilTwilightBegin        string `json:"civil_twilight_begin"`
		CivilTwilightEnd          string `json:"civil_twilight_end"`
		NauticalTwilightBegin     string `json:"nautical_twilight_begin"`
		NauticalTwilightEnd       string `json:"nautical_twilight_end"`
		AstronomicalTwilightBegin string `json:"astronomical_twilight_begin"`
		AstronomicalTwilightEnd   string `json:"astronomical_twilight_end"`
	} `json:"results"`
}

// Sun produces the solar day for the given date and location, from the
// sunrise-sunset.org API when it answers and from the local solver
// otherwise. The evening golden hour is always computed locally.
func (c *Calculators) Sun(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[models.SunTimes] {
	var resp sunriseSunsetResponse
	err := c.getJSON(ctx, c.cfg.SunriseSunsetURL, map[string]string{
		"lat":       fmt.Sprintf("%.4f", loc.Latitude),
		"lng":       fmt.Sprintf("%.4f", loc.Longitude),
		"date":      date.UTC().Format("2006-01-02"),
		"formatted": "0",
	}, &resp)

	if err == nil && resp.Status != "OK" {
		err = fmt.Errorf("sunrise-sunset.org status %q: %w", resp.Status, errBadPayload)
	}

	if err != nil {
		c.log.Warn("sun source failed, using local solver", map[string]interface{}{
			"error": err.Error(),
		})
		times := c.localSunTimes(loc, date)
		return models.Fallback(sunSource, times, failureReason(err))
	}

	times := models.SunTimes{
		Sunrise:          parseEventISO(resp.Results.Sunrise, date),
		Sunset:           parseEventISO(resp.Results.Sunset, date),
		DayLength:        time.Duration(resp.Results.DayLength) * time.Second,
		CivilDawn:        parseEventISO(resp.Results.CivilTwilightBegin, date),
		CivilDusk:        parseEventISO(resp.Results.CivilTwilightEnd, date),
		NauticalDawn:     parseEventISO(resp.Results.NauticalTwilightBegin, date),
		NauticalDusk:     parseEventISO(resp.Results.NauticalTwilightEnd, date),
		AstronomicalDawn: parseEventISO(resp.Results.AstronomicalTwilightBegin, date),
		AstronomicalDusk: parseEventISO(resp.Results.AstronomicalTwilightEnd, date),
	}
	if noon, errNoon := time.Parse(time.RFC3339, resp.Results.SolarNoon); errNoon == nil {
		times.SolarNoon = noon.UTC()
	} else {
		times.SolarNoon = astro.SolarNoon(loc.Latitude, loc.Longitude, date)
	}
	times.GoldenHourStart = c.goldenHourStart(loc, date, times.Sunset)

	return models.Live(sunSource, times)
}

// localSunTimes computes the full solar day with the altitude solver.
func (c *Calculators) localSunTimes(loc models.GeoLocation, date time.Time) models.SunTimes {
	lat, lon := loc.Latitude, loc.Longitude

	rise, set := astro.SunRiseSet(lat, lon, date)
	civilDawn, civilDusk := astro.SunCrossings(lat, lon, date, astro.CivilTwilightAltitude)
	nautDawn, nautDusk := astro.SunCrossings(lat, lon, date, astro.NauticalTwilightAltitude)
	astroDawn, astroDusk := astro.SunCrossings(lat, lon, date, astro.AstronomicalTwilightAltitude)

	times := models.SunTimes{
		Sunrise:          eventTime(rise),
		Sunset:           eventTime(set),
		SolarNoon:        astro.SolarNoon(lat, lon, date),
		CivilDawn:        eventTime(civilDawn),
		CivilDusk:        eventTime(civilDusk),
		NauticalDawn:     eventTime(nautDawn),
		NauticalDusk:     eventTime(nautDusk),
		AstronomicalDawn: eventTime(astroDawn),
		AstronomicalDusk: eventTime(astroDusk),
	}

	switch {
	case rise.OK && set.OK:
		times.DayLength = set.Time.Sub(rise.Time)
	case astro.SunAltitude(lat, lon, times.SolarNoon) > astro.SunHorizonAltitude:
		// Polar day: the Sun never sets.
		times.DayLength = 24 * time.Hour
	}

	times.GoldenHourStart = c.goldenHourStart(loc, date, times.Sunset)
	return times
}

// goldenHourStart finds the evening descent through 6 degrees, which
// ends at sunset. Absent a sunset there is no golden hour.
func (c *Calculators) goldenHourStart(loc models.GeoLocation, date time.Time, sunset models.EventTime) models.EventTime {
	if !sunset.Occurs {
		return models.NoEvent()
	}
	start := astro.FindAltitudeEvent(func(t time.Time) float64 {
		return astro.SunAltitude(loc.Latitude, loc.Longitude, t)
	}, sunset.At.Add(-4*time.Hour), sunset.At, goldenHourAltitude, astro.CrossingDown, 16, 30*time.Second)
	return eventTime(start)
}

// parseEventISO parses one ISO-8601 event time. Values the API pins to
// the epoch (its "does not occur" marker at polar latitudes) map to a
// non-occurring event, as does anything far from the requested date.
func parseEventISO(s string, date time.Time) models.EventTime {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return models.NoEvent()
	}

	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if math.Abs(t.Sub(midnight).Hours()) > 48 {
		return models.NoEvent()
	}
	return models.EventAt(t.UTC())
}
