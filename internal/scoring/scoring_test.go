package scoring

import (
	"math"
	"strings"
	"testing"
	"time"

	"skybrief/internal/models"
)

func baseData() *models.SkyData {
	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	noon := time.Date(2026, time.August, 31, 16, 56, 0, 0, time.UTC)

	return &models.SkyData{
		Location: models.GeoLocation{Latitude: 40.7128, Longitude: -74.0060},
		Date:     date,
		Sun: models.Live("sun", models.SunTimes{
			Sunrise:          models.EventAt(noon.Add(-6 * time.Hour)),
			Sunset:           models.EventAt(noon.Add(6 * time.Hour)),
			SolarNoon:        noon,
			DayLength:        12 * time.Hour,
			AstronomicalDawn: models.EventAt(noon.Add(-8 * time.Hour)),
			AstronomicalDusk: models.EventAt(noon.Add(8 * time.Hour)),
		}),
		Moon: models.Live("moon", models.MoonState{
			Phase:        "New Moon",
			Illumination: 0,
		}),
		Clouds: models.Live("clouds", models.NightClouds{
			AvgCloudCover: 10,
			MinCloudCover: 5,
		}),
	}
}

func TestScoreExcellentNight(t *testing.T) {
	lp := 0.0
	score := Score(baseData(), Options{LightPollution: &lp})

	if !score.Available {
		t.Fatal("score should be available")
	}
	if score.Score != 95 {
		t.Errorf("score = %d, want 95", score.Score)
	}
	if score.Category != "Excellent" {
		t.Errorf("category = %q, want Excellent", score.Category)
	}
	if len(score.Factors) != 4 {
		t.Fatalf("factor count = %d, want 4", len(score.Factors))
	}

	var weightSum, weightedSum float64
	for _, f := range score.Factors {
		weightSum += f.Weight
		weightedSum += f.Weighted
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		t.Errorf("weights sum to %f, want 1", weightSum)
	}
	if math.Abs(weightedSum-float64(score.Score)) > 0.5 {
		t.Errorf("breakdown sums to %f, score is %d", weightedSum, score.Score)
	}

	joined := strings.Join(score.Recommendations, " | ")
	if !strings.Contains(joined, "Excellent conditions") {
		t.Errorf("missing excellent recommendation: %s", joined)
	}
	if !strings.Contains(joined, "moonless") {
		t.Errorf("missing dark-sky recommendation: %s", joined)
	}
}

func TestScoreRenormalizesWithoutClouds(t *testing.T) {
	data := baseData()
	data.Clouds = models.Unavailable[models.NightClouds]("clouds", models.ReasonTimeout)

	score := Score(data, Options{})

	if len(score.Factors) != 2 {
		t.Fatalf("factor count = %d, want 2 (moon, darkness)", len(score.Factors))
	}

	var weightSum float64
	for _, f := range score.Factors {
		weightSum += f.Weight
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		t.Errorf("renormalized weights sum to %f, want 1", weightSum)
	}

	// Moon 100 and darkness 100 with any weights still give 100.
	if score.Score != 100 {
		t.Errorf("score = %d, want 100", score.Score)
	}
}

func TestScoreGeomagneticFactor(t *testing.T) {
	data := baseData()
	data.SpaceWeather = models.Live("swpc", models.SpaceWeather{
		KpNow:    4.0,
		KpMax24h: 6.0,
	})

	score := Score(data, Options{})

	if len(score.Factors) != 4 {
		t.Fatalf("factor count = %d, want 4 (clouds, moon, darkness, geomagnetic)", len(score.Factors))
	}

	var geo *FactorScore
	var weightSum float64
	for i, f := range score.Factors {
		weightSum += f.Weight
		if f.Name == "geomagnetic" {
			geo = &score.Factors[i]
		}
	}
	if geo == nil {
		t.Fatal("missing geomagnetic factor")
	}
	// 100 * (1 - 6/9) from the 24h Kp maximum.
	if math.Abs(geo.Score-33.333) > 0.01 {
		t.Errorf("geomagnetic sub-score = %f, want 33.333", geo.Score)
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		t.Errorf("weights sum to %f, want 1", weightSum)
	}
}

func TestScoreUnavailableWithNoFactors(t *testing.T) {
	data := &models.SkyData{
		Location:     models.GeoLocation{Latitude: 40, Longitude: -74},
		Date:         time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		Sun:          models.Unavailable[models.SunTimes]("sun", models.ReasonTimeout),
		Moon:         models.Unavailable[models.MoonState]("moon", models.ReasonTimeout),
		Clouds:       models.Unavailable[models.NightClouds]("clouds", models.ReasonTimeout),
		SpaceWeather: models.Unavailable[models.SpaceWeather]("swpc", models.ReasonTimeout),
	}

	score := Score(data, Options{})

	if score.Available {
		t.Error("score should be unavailable with zero factors")
	}
	if score.Category != CategoryUnavailable {
		t.Errorf("category = %q, want %q", score.Category, CategoryUnavailable)
	}
	if score.Score != 0 || len(score.Factors) != 0 {
		t.Errorf("unexpected content in unavailable score: %+v", score)
	}
}

func TestScorePoorNight(t *testing.T) {
	data := baseData()
	data.Moon = models.Unavailable[models.MoonState]("moon", models.ReasonTimeout)
	data.Clouds = models.Live("clouds", models.NightClouds{AvgCloudCover: 90})
	// Bright summer night: sun up, no astronomical darkness.
	sun := data.Sun.Data
	sun.AstronomicalDawn = models.NoEvent()
	sun.AstronomicalDusk = models.NoEvent()
	data.Sun = models.Live("sun", sun)

	score := Score(data, Options{})

	// clouds 10 * (0.50/0.65) + darkness 40 * (0.15/0.65) = 16.9...
	if score.Score != 17 {
		t.Errorf("score = %d, want 17", score.Score)
	}
	if score.Category != "Poor" {
		t.Errorf("category = %q, want Poor", score.Category)
	}

	joined := strings.Join(score.Recommendations, " | ")
	if !strings.Contains(joined, "Heavy cloud cover") {
		t.Errorf("missing cloud warning: %s", joined)
	}
	if !strings.Contains(joined, "never fully darkens") {
		t.Errorf("missing darkness note: %s", joined)
	}
}

func TestCategoryBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79, "Good"},
		{60, "Good"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		if got := category(tt.score); got != tt.want {
			t.Errorf("category(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestMoonScoreCurve(t *testing.T) {
	if got := moonScore(1.0, true); got != 0 {
		t.Errorf("full moon up = %f, want 0", got)
	}
	if got := moonScore(1.0, false); got != 100 {
		t.Errorf("full moon down = %f, want 100", got)
	}
	if got := moonScore(0, true); got != 100 {
		t.Errorf("new moon = %f, want 100", got)
	}

	half := moonScore(0.5, true)
	if half <= 0 || half >= 100 {
		t.Errorf("half moon = %f, want interior value", half)
	}
	// The 0.7 exponent punishes bright moons harder than linear.
	if half >= 50 {
		t.Errorf("half moon = %f, want below linear 50", half)
	}
}
