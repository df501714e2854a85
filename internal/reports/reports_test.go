package reports

import (
	"strings"
	"testing"
	"time"

	"skybrief/internal/briefing"
	"skybrief/internal/models"
	"skybrief/internal/scoring"
)

func testBriefing() *briefing.DailyBriefing {
	date := time.Date(2026, time.December, 14, 0, 0, 0, 0, time.UTC)
	rise := time.Date(2026, time.December, 14, 12, 10, 0, 0, time.UTC)
	set := time.Date(2026, time.December, 14, 21, 30, 0, 0, time.UTC)

	sky := &models.SkyData{
		Location: models.GeoLocation{Latitude: 40.7128, Longitude: -74.0060},
		Date:     date,
		Sun: models.Live("sun", models.SunTimes{
			Sunrise:   models.EventAt(rise),
			Sunset:    models.EventAt(set),
			SolarNoon: time.Date(2026, time.December, 14, 16, 50, 0, 0, time.UTC),
			DayLength: set.Sub(rise),
		}),
		Moon: models.Live("moon", models.MoonState{
			Phase:        "Waxing Crescent",
			Illumination: 0.23,
			AgeDays:      4.8,
			DistanceKm:   382000,
			NextNewMoon:  time.Date(2027, time.January, 8, 0, 0, 0, 0, time.UTC),
			NextFullMoon: time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC),
		}),
		Planets: models.Local("planets", []models.PlanetSighting{
			{Name: "Jupiter", Visible: true, Magnitude: -2.8, Hint: "Rises at sunset, sets at sunrise"},
			{Name: "Mercury", Visible: false, Magnitude: 1.2, Window: "not visible"},
		}),
		Meteors: models.Local("meteors", models.MeteorActivity{
			Active: []models.ShowerActivity{
				{Name: "Geminids", ZHR: 150, EffectiveZHR: 150, Rating: "Excellent", Radiant: "Gemini", ParentBody: "3200 Phaethon"},
			},
		}),
		Eclipse: models.Local("eclipse", models.EclipseOutlook{
			Type:      "Total Lunar",
			Date:      time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			MaxAt:     time.Date(2026, time.December, 31, 17, 0, 0, 0, time.UTC),
			Magnitude: 1.156,
			Regions:   []string{"Americas", "Europe"},
			DaysUntil: 17,
		}),
		SpaceWeather: models.Live("swpc", models.SpaceWeather{
			KpNow:         1.33,
			KpMax24h:      2.0,
			Activity:      "Quiet",
			AuroraOutlook: "Aurora unlikely below 64.0 degrees latitude",
			Forecast: []models.KpForecastEntry{
				{Time: date.Add(27 * time.Hour), Kp: 2.0},
				{Time: date.Add(30 * time.Hour), Kp: 2.67},
			},
		}),
		Clouds: models.Live("clouds", models.NightClouds{
			AvgCloudCover: 12, MinCloudCover: 2, SampleHours: 13,
		}),
	}

	return &briefing.DailyBriefing{
		Location:    sky.Location,
		Date:        date,
		GeneratedAt: date.Add(13 * time.Hour),
		Narrative:   "A clear and moonless night is ahead.",
		Sky:         sky,
		Score: scoring.ViewingScore{
			Available:       true,
			Score:           88,
			Category:        "Excellent",
			Recommendations: []string{"Excellent conditions expected; make the most of them"},
		},
	}
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(testBriefing())

	for _, want := range []string{
		"# Sky Briefing for December 14, 2026",
		"A clear and moonless night is ahead.",
		"## Viewing Conditions: Excellent (88/100)",
		"## Sun",
		"| Sunrise | 12:10 |",
		"Day length: 9h 20m",
		"## Moon",
		"Waxing Crescent (23% illuminated, 4.8 days old)",
		"## Planets",
		"| Jupiter | yes | -2.8 | Rises at sunset, sets at sunrise |",
		"| Mercury | no | 1.2 | not visible |",
		"## Meteor Showers",
		"**Geminids** (peaking tonight): ~150 meteors/hour tonight, rated Excellent",
		"## Next Eclipse",
		"**Total Lunar** on December 31, 2026, maximum at 17:00 UTC (magnitude 1.156), 17 days away.",
		"## Space Weather",
		"Kp now 1.3, 24h max 2.0 (Quiet)",
		"## Cloud Forecast",
		"Average 12% cover over 13 night hours",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestBuildMarkdownSkipsUnavailableSections(t *testing.T) {
	b := testBriefing()
	b.Sky.Clouds = models.Unavailable[models.NightClouds]("clouds", models.ReasonTimeout)
	b.Sky.SpaceWeather = models.Unavailable[models.SpaceWeather]("swpc", models.ReasonHTTPStatus)

	md := BuildMarkdown(b)
	if strings.Contains(md, "## Cloud Forecast") {
		t.Error("unavailable clouds should not render a section")
	}
	if strings.Contains(md, "## Space Weather") {
		t.Error("unavailable space weather should not render a section")
	}
	if !strings.Contains(md, "## Moon") {
		t.Error("surviving sections should still render")
	}
}

func TestGenerateHTML(t *testing.T) {
	g := NewGenerator()
	html, err := g.GenerateHTML(testBriefing())
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Sky Briefing - 2026-12-14</title>",
		"A clear and moonless night is ahead.",
		"<h2",          // rendered markdown headings
		"echarts",      // chart scripts embedded
		"Viewing Score Breakdown",
		"Planetary K Index Forecast",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestGenerateHTMLWithoutCharts(t *testing.T) {
	b := testBriefing()
	b.Score = scoring.ViewingScore{Available: false, Category: scoring.CategoryUnavailable}
	b.Sky.SpaceWeather = models.Unavailable[models.SpaceWeather]("swpc", models.ReasonTimeout)

	g := NewGenerator()
	html, err := g.GenerateHTML(b)
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	if strings.Contains(html, "Viewing Score Breakdown") {
		t.Error("score chart should be omitted when the score is unavailable")
	}
	if strings.Contains(html, "Planetary K Index Forecast") {
		t.Error("Kp chart should be omitted without a forecast")
	}
}
