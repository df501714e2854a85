package calculators

import (
	"context"
	"fmt"
	"time"

	"skybrief/internal/models"
)

const cloudsSource = "open-meteo"

// openMeteoResponse is the hourly forecast slice the cloud calculator
// requests from Open-Meteo.
type openMeteoResponse struct {
	Hourly struct {
		Time          []string  `json:"time"`
		CloudCover    []float64 `json:"cloud_cover"`
		CloudLow      []float64 `json:"cloud_cover_low"`
		CloudMid      []float64 `json:"cloud_cover_mid"`
		CloudHigh     []float64 `json:"cloud_cover_high"`
		IsDay         []int     `json:"is_day"`
	} `json:"hourly"`
}

// Clouds summarizes forecast cloud cover over the night following the
// target date's noon. Cloud forecasts have no local fallback: when
// Open-Meteo fails the domain is unavailable and the scorer drops the
// cloud factor.
func (c *Calculators) Clouds(ctx context.Context, loc models.GeoLocation, date time.Time) models.SourceResult[models.NightClouds] {
	var resp openMeteoResponse
	err := c.getJSON(ctx, c.cfg.OpenMeteoURL, map[string]string{
		"latitude":      fmt.Sprintf("%.4f", loc.Latitude),
		"longitude":     fmt.Sprintf("%.4f", loc.Longitude),
		"hourly":        "cloud_cover,cloud_cover_low,cloud_cover_mid,cloud_cover_high,is_day",
		"timezone":      "UTC",
		"forecast_days": "2",
	}, &resp)
	if err != nil {
		c.log.Warn("cloud forecast failed", map[string]interface{}{
			"error": err.Error(),
		})
		return models.Unavailable[models.NightClouds](cloudsSource, failureReason(err))
	}

	clouds, ok := nightClouds(resp, date)
	if !ok {
		c.log.Warn("cloud forecast had no night hours in window")
		return models.Unavailable[models.NightClouds](cloudsSource, models.ReasonBadPayload)
	}
	return models.Live(cloudsSource, clouds)
}

// nightClouds averages the dark hours between the target date's noon and
// the following noon.
func nightClouds(resp openMeteoResponse, date time.Time) (models.NightClouds, bool) {
	h := resp.Hourly
	n := len(h.Time)
	if n == 0 || len(h.CloudCover) != n || len(h.IsDay) != n {
		return models.NightClouds{}, false
	}

	windowStart := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	var (
		sum, min              float64
		sumLow, sumMid, sumHi float64
		count                 int
	)
	min = 101

	for i := 0; i < n; i++ {
		at, err := time.Parse("2006-01-02T15:04", h.Time[i])
		if err != nil {
			continue
		}
		at = at.UTC()
		if at.Before(windowStart) || !at.Before(windowEnd) {
			continue
		}
		if h.IsDay[i] != 0 {
			continue
		}

		cover := h.CloudCover[i]
		sum += cover
		if cover < min {
			min = cover
		}
		if i < len(h.CloudLow) {
			sumLow += h.CloudLow[i]
		}
		if i < len(h.CloudMid) {
			sumMid += h.CloudMid[i]
		}
		if i < len(h.CloudHigh) {
			sumHi += h.CloudHigh[i]
		}
		count++
	}

	if count == 0 {
		return models.NightClouds{}, false
	}

	return models.NightClouds{
		AvgCloudCover: sum / float64(count),
		MinCloudCover: min,
		AvgLow:        sumLow / float64(count),
		AvgMid:        sumMid / float64(count),
		AvgHigh:       sumHi / float64(count),
		SampleHours:   count,
	}, true
}
