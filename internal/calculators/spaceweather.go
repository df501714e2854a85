package calculators

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"skybrief/internal/models"
)

const spaceWeatherSource = "swpc"

// swpcTimeLayouts covers the timestamp shapes SWPC products use.
var swpcTimeLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// SpaceWeather fetches geomagnetic and solar wind conditions from SWPC.
// The planetary K index is the hard requirement; the Kp forecast, solar
// wind plasma and the solar event feed are enrichments whose failures
// only log. There is no local model of the Sun, so a failed K-index
// fetch makes the whole domain unavailable.
func (c *Calculators) SpaceWeather(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[models.SpaceWeather] {
	kpNow, kpMax, err := c.fetchKIndex(ctx)
	if err != nil {
		c.log.Warn("space weather source failed", map[string]interface{}{
			"error": err.Error(),
		})
		return models.Unavailable[models.SpaceWeather](spaceWeatherSource, failureReason(err))
	}

	sw := models.SpaceWeather{
		KpNow:          kpNow,
		KpMax24h:       kpMax,
		Activity:       kpActivity(kpMax),
		AuroraLatitude: auroraLatitude(kpMax),
	}
	sw.AuroraOutlook = auroraOutlook(loc.Latitude, sw.AuroraLatitude, kpMax)

	if speed, density, err := c.fetchSolarWind(ctx); err != nil {
		c.log.Warn("solar wind fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		sw.SolarWindSpeed = speed
		sw.SolarWindDensity = density
		sw.SolarWindElevated = speed > 500 || density > 10
	}

	if forecast, err := c.fetchKpForecast(ctx); err != nil {
		c.log.Warn("Kp forecast fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		sw.Forecast = forecast
	}

	if events, err := c.fetchSolarEvents(ctx); err != nil {
		c.log.Warn("solar event feed fetch failed", map[string]interface{}{"error": err.Error()})
	} else {
		sw.Events = events
	}

	return models.Live(spaceWeatherSource, sw)
}

// fetchKIndex returns the current Kp and the 24-hour maximum. The SWPC
// product is an array of rows with a header: [time_tag, Kp, a_running,
// station_count], all strings.
func (c *Calculators) fetchKIndex(ctx context.Context) (kpNow, kpMax float64, err error) {
	var rows [][]string
	if err := c.getJSON(ctx, c.cfg.SWPCKIndexURL, nil, &rows); err != nil {
		return 0, 0, err
	}
	if len(rows) < 2 {
		return 0, 0, fmt.Errorf("K-index product has no data rows: %w", errBadPayload)
	}

	type sample struct {
		at time.Time
		kp float64
	}
	var samples []sample
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		at, ok := parseSWPCTime(row[0])
		if !ok {
			continue
		}
		kp, errP := strconv.ParseFloat(row[1], 64)
		if errP != nil {
			continue
		}
		samples = append(samples, sample{at: at, kp: kp})
	}
	if len(samples) == 0 {
		return 0, 0, fmt.Errorf("K-index product has no parseable rows: %w", errBadPayload)
	}

	latest := samples[len(samples)-1]
	kpNow = latest.kp
	cutoff := latest.at.Add(-24 * time.Hour)

	for _, s := range samples {
		if s.at.Before(cutoff) {
			continue
		}
		if s.kp > kpMax {
			kpMax = s.kp
		}
	}
	return kpNow, kpMax, nil
}

// fetchSolarWind returns the most recent plasma speed and density.
// Rows are [time_tag, density, speed, temperature] with nulls where an
// instrument dropped out, so scan from the newest row backwards.
func (c *Calculators) fetchSolarWind(ctx context.Context) (speed, density float64, err error) {
	var rows [][]interface{}
	if err := c.getJSON(ctx, c.cfg.SWPCSolarWindURL, nil, &rows); err != nil {
		return 0, 0, err
	}

	for i := len(rows) - 1; i >= 1; i-- {
		row := rows[i]
		if len(row) < 3 {
			continue
		}
		s, okS := cellFloat(row[2])
		d, okD := cellFloat(row[1])
		if !okS {
			continue
		}
		if !okD {
			d = 0
		}
		return s, d, nil
	}
	return 0, 0, fmt.Errorf("solar wind product has no usable rows: %w", errBadPayload)
}

// fetchKpForecast returns the forecast Kp points that lie in the future.
func (c *Calculators) fetchKpForecast(ctx context.Context) ([]models.KpForecastEntry, error) {
	var rows [][]interface{}
	if err := c.getJSON(ctx, c.cfg.SWPCKForecastURL, nil, &rows); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var forecast []models.KpForecastEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		ts, ok := row[0].(string)
		if !ok {
			continue
		}
		at, okT := parseSWPCTime(ts)
		if !okT || at.Before(now) {
			continue
		}
		kp, okKp := cellFloat(row[1])
		if !okKp {
			continue
		}
		forecast = append(forecast, models.KpForecastEntry{Time: at, Kp: kp})
	}
	return forecast, nil
}

// fetchSolarEvents pulls recent bulletins from the solar event RSS feed.
func (c *Calculators) fetchSolarEvents(ctx context.Context) ([]models.SolarEvent, error) {
	resp, err := c.client.R().SetContext(ctx).Get(c.cfg.SIDCRSSURL)
	if err != nil {
		return nil, fmt.Errorf("fetching solar event feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("solar event feed returned status %d: %w", resp.StatusCode(), errBadStatus)
	}

	feed, err := c.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing solar event feed: %w: %v", errBadPayload, err)
	}

	cutoff := time.Now().UTC().Add(-48 * time.Hour)
	var events []models.SolarEvent
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || item.PublishedParsed.Before(cutoff) {
			continue
		}
		events = append(events, models.SolarEvent{
			Title:     item.Title,
			Published: item.PublishedParsed.UTC(),
			Link:      item.Link,
		})
	}
	return events, nil
}

// kpActivity maps a Kp value to the NOAA activity scale.
func kpActivity(kp float64) string {
	switch {
	case kp < 2:
		return "Quiet"
	case kp < 4:
		return "Unsettled"
	case kp < 5:
		return "Active"
	case kp < 6:
		return "Minor Storm (G1)"
	case kp < 7:
		return "Moderate Storm (G2)"
	case kp < 8:
		return "Strong Storm (G3)"
	case kp < 9:
		return "Severe Storm (G4)"
	default:
		return "Extreme Storm (G5)"
	}
}

// auroraLatitude estimates the lowest latitude with an aurora chance.
// The oval pushes about 3 degrees equatorward per Kp step and never
// reaches below 40.
func auroraLatitude(kpMax float64) float64 {
	return math.Max(40, 67-3*kpMax)
}

func auroraOutlook(observerLat, visibleLat, kpMax float64) string {
	if math.Abs(observerLat) >= visibleLat {
		if kpMax >= 5 {
			return "Good chance of aurora, look toward the pole after dark"
		}
		return "Aurora possible low on the poleward horizon"
	}
	return fmt.Sprintf("Aurora unlikely below %.0f degrees latitude", visibleLat)
}

func parseSWPCTime(s string) (time.Time, bool) {
	for _, layout := range swpcTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// cellFloat coerces one SWPC table cell, which may be a JSON string,
// number or null.
func cellFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	case float64:
		return val, true
	default:
		return 0, false
	}
}
