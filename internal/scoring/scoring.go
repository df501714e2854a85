// Package scoring turns aggregated sky data into a 0-100 viewing
// conditions score. Each factor is scored independently; factors whose
// data is unavailable are dropped and the remaining weights renormalized
// so the score stays comparable across nights with different coverage.
package scoring

import (
	"math"
	"time"

	"skybrief/internal/astro"
	"skybrief/internal/models"
)

// Base factor weights, renormalized over the factors actually present
// for a given night.
const (
	weightClouds         = 0.50
	weightMoon           = 0.25
	weightDarkness       = 0.15
	weightGeomagnetic    = 0.10
	weightLightPollution = 0.10
)

// Category thresholds.
const (
	thresholdExcellent = 80
	thresholdGood      = 60
	thresholdFair      = 40
)

// CategoryUnavailable is reported when no factor could be scored.
const CategoryUnavailable = "Unavailable"

// FactorScore is one factor's contribution to the total.
type FactorScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`    // 0-100 for this factor alone
	Weight   float64 `json:"weight"`   // renormalized weight
	Weighted float64 `json:"weighted"` // Score * Weight
}

// ViewingScore is the scored verdict for one night.
type ViewingScore struct {
	Available       bool          `json:"available"`
	Score           int           `json:"score"`
	Category        string        `json:"category"`
	Factors         []FactorScore `json:"factors"`
	Recommendations []string      `json:"recommendations"`
}

// Options tunes a scoring pass.
type Options struct {
	// LightPollution is the observer's sky brightness factor in [0, 1],
	// 0 for pristine dark sky and 1 for a city center. Nil when unknown,
	// which drops the factor instead of guessing.
	LightPollution *float64
}

// Score computes the viewing conditions score from aggregated data.
func Score(data *models.SkyData, opts Options) ViewingScore {
	type rawFactor struct {
		name   string
		score  float64
		weight float64
	}
	var raw []rawFactor

	var cloudCover float64
	cloudsKnown := data.Clouds.Available()
	if cloudsKnown {
		cloudCover = data.Clouds.Data.AvgCloudCover
		raw = append(raw, rawFactor{"clouds", clamp(100 - cloudCover), weightClouds})
	}

	var moonIllum float64
	moonUp := false
	moonKnown := data.Moon.Available()
	if moonKnown {
		moonIllum = data.Moon.Data.Illumination
		moonUp = moonUpAtNight(data)
		raw = append(raw, rawFactor{"moon", moonScore(moonIllum, moonUp), weightMoon})
	}

	darkSky := false
	sunKnown := data.Sun.Available()
	if sunKnown {
		darkSky = data.Sun.Data.HasAstronomicalNight()
		score := 40.0
		if darkSky {
			score = 100.0
		}
		raw = append(raw, rawFactor{"darkness", score, weightDarkness})
	}

	if data.SpaceWeather.Available() {
		kp := data.SpaceWeather.Data.KpMax24h
		raw = append(raw, rawFactor{"geomagnetic", clamp(100 * (1 - kp/9)), weightGeomagnetic})
	}

	if opts.LightPollution != nil {
		lp := clamp01(*opts.LightPollution)
		raw = append(raw, rawFactor{"light_pollution", 100 * (1 - lp), weightLightPollution})
	}

	if len(raw) == 0 {
		return ViewingScore{
			Available: false,
			Category:  CategoryUnavailable,
		}
	}

	var weightSum float64
	for _, f := range raw {
		weightSum += f.weight
	}

	result := ViewingScore{Available: true}
	var total float64
	for _, f := range raw {
		w := f.weight / weightSum
		fs := FactorScore{
			Name:     f.name,
			Score:    f.score,
			Weight:   w,
			Weighted: f.score * w,
		}
		total += fs.Weighted
		result.Factors = append(result.Factors, fs)
	}

	result.Score = int(math.Round(total))
	result.Category = category(result.Score)
	result.Recommendations = recommendations(cloudsKnown, cloudCover, moonKnown, moonIllum, moonUp, sunKnown, darkSky)
	return result
}

// moonScore penalizes a bright moon that is actually up. A set moon does
// not interfere no matter how full it is.
func moonScore(illumination float64, up bool) float64 {
	if !up {
		return 100
	}
	return clamp(100 * (1 - math.Pow(illumination, 0.7)))
}

// moonUpAtNight samples the Moon's altitude around local solar midnight.
func moonUpAtNight(data *models.SkyData) bool {
	loc := data.Location

	var midnight time.Time
	if data.Sun.Available() && !data.Sun.Data.SolarNoon.IsZero() {
		midnight = data.Sun.Data.SolarNoon.Add(12 * time.Hour)
	} else {
		offset := time.Duration(-loc.Longitude / 15.0 * float64(time.Hour))
		midnight = data.Date.Add(24 * time.Hour).Add(offset)
	}

	return astro.MoonAltitude(loc.Latitude, loc.Longitude, midnight) > 0
}

func category(score int) string {
	switch {
	case score >= thresholdExcellent:
		return "Excellent"
	case score >= thresholdGood:
		return "Good"
	case score >= thresholdFair:
		return "Fair"
	default:
		return "Poor"
	}
}

func recommendations(cloudsKnown bool, cloudCover float64, moonKnown bool, moonIllum float64, moonUp, sunKnown, darkSky bool) []string {
	var recs []string

	if cloudsKnown {
		switch {
		case cloudCover > 75:
			recs = append(recs, "Heavy cloud cover expected; consider another night")
		case cloudCover > 50:
			recs = append(recs, "Significant clouds expected; watch for breaks")
		case cloudCover > 25:
			recs = append(recs, "Some clouds expected; plan around the clear spells")
		}
	}

	if moonKnown && moonUp {
		switch {
		case moonIllum > 0.8:
			recs = append(recs, "Bright moon will wash out faint objects; favor planets and lunar viewing")
		case moonIllum > 0.5:
			recs = append(recs, "Moonlight may interfere with deep-sky targets")
		}
	}
	if moonKnown && moonIllum < 0.2 {
		recs = append(recs, "Dark, nearly moonless sky; a good night for faint targets")
	}

	if sunKnown && !darkSky {
		recs = append(recs, "The sky never fully darkens at this latitude tonight")
	}

	if cloudsKnown && moonKnown && cloudCover < 20 && moonIllum < 0.3 {
		recs = append(recs, "Excellent conditions expected; make the most of them")
	}

	return recs
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
