package calculators

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"skybrief/internal/astro"
	"skybrief/internal/models"
)

const moonSource = "usno"

// usnoOneDayResponse is the subset of the USNO rstt/oneday payload the
// moon calculator consumes.
type usnoOneDayResponse struct {
	Properties struct {
		Data struct {
			CurPhase  string `json:"curphase"`
			FracIllum string `json:"fracillum"`
		} `json:"data"`
	} `json:"properties"`
}

// Moon produces the lunar state for the given date and location. Phase
// name and illumination come from the USNO API when it answers; rise,
// set, distance and the upcoming phase dates are always computed
// locally. On upstream failure the phase falls back to the synodic
// approximation.
func (c *Calculators) Moon(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[models.MoonState] {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)

	rise, set := astro.MoonRiseSet(loc.Latitude, loc.Longitude, date)

	state := models.MoonState{
		PhaseAngle:   astro.MoonPhaseAngle(noon),
		AgeDays:      astro.MoonAge(noon),
		Rise:         eventTime(rise),
		Set:          eventTime(set),
		DistanceKm:   astro.MoonDistance(noon),
		NextNewMoon:  astro.NextMoonPhase(noon, astro.NewMoon),
		NextFullMoon: astro.NextMoonPhase(noon, astro.FullMoon),
	}

	var resp usnoOneDayResponse
	err := c.getJSON(ctx, c.cfg.USNOOneDayURL, map[string]string{
		"date":   date.UTC().Format("2006-01-02"),
		"coords": fmt.Sprintf("%.4f,%.4f", loc.Latitude, loc.Longitude),
	}, &resp)

	if err == nil {
		if illum, ok := parseFracIllum(resp.Properties.Data.FracIllum); ok && resp.Properties.Data.CurPhase != "" {
			state.Phase = resp.Properties.Data.CurPhase
			state.Illumination = illum
			return models.Live(moonSource, state)
		}
		err = fmt.Errorf("incomplete oneday payload: %w", errBadPayload)
	}

	c.log.Warn("moon source failed, using local phase", map[string]interface{}{
		"error": err.Error(),
	})

	state.Phase = astro.MoonPhaseAt(noon).String()
	state.Illumination = astro.MoonIllumination(noon)
	return models.Fallback(moonSource, state, failureReason(err))
}

// parseFracIllum converts the USNO "93%" illumination string to [0, 1].
func parseFracIllum(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, false
	}
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil || pct < 0 || pct > 100 {
		return 0, false
	}
	return pct / 100.0, true
}

// eventTime converts a solver result to the wire representation.
func eventTime(ev astro.EventResult) models.EventTime {
	if !ev.OK {
		return models.NoEvent()
	}
	return models.EventAt(ev.Time)
}
