package calculators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skybrief/internal/config"
	"skybrief/internal/models"
)

func TestSunLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("formatted"); got != "0" {
			t.Errorf("formatted = %q, want 0", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": {
				"sunrise": "2026-03-20T10:59:00+00:00",
				"sunset": "2026-03-20T23:07:00+00:00",
				"solar_noon": "2026-03-20T17:03:00+00:00",
				"day_length": 43680,
				"civil_twilight_begin": "2026-03-20T10:32:00+00:00",
				"civil_twilight_end": "2026-03-20T23:34:00+00:00",
				"nautical_twilight_begin": "2026-03-20T10:01:00+00:00",
				"nautical_twilight_end": "2026-03-21T00:05:00+00:00",
				"astronomical_twilight_begin": "2026-03-20T09:30:00+00:00",
				"astronomical_twilight_end": "2026-03-21T00:36:00+00:00"
			},
			"status": "OK"
		}`))
	}))
	defer server.Close()

	c := testCalculators(func(cfg *config.Config) {
		cfg.SunriseSunsetURL = server.URL
	})

	date := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	result := c.Sun(context.Background(), testLocation, date)

	if result.Provenance != models.ProvenanceLive {
		t.Fatalf("provenance = %s, want live", result.Provenance)
	}

	sun := result.Data
	if !sun.Sunrise.Occurs || sun.Sunrise.At.Hour() != 10 || sun.Sunrise.At.Minute() != 59 {
		t.Errorf("sunrise = %v", sun.Sunrise)
	}
	if sun.DayLength != 43680*time.Second {
		t.Errorf("day length = %v, want 12h8m", sun.DayLength)
	}
	if !sun.AstronomicalDusk.Occurs {
		t.Error("expected astronomical dusk")
	}
	if !sun.HasAstronomicalNight() {
		t.Error("expected full darkness at mid-latitude equinox")
	}
	if !sun.GoldenHourStart.Occurs || !sun.GoldenHourStart.At.Before(sun.Sunset.At) {
		t.Errorf("golden hour start = %v, want before sunset", sun.GoldenHourStart)
	}
}

func TestSunFallbackOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {}, "status": "INVALID_REQUEST"}`))
	}))
	defer server.Close()

	c := testCalculators(func(cfg *config.Config) {
		cfg.SunriseSunsetURL = server.URL
	})

	date := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	result := c.Sun(context.Background(), testLocation, date)

	if result.Provenance != models.ProvenanceLocalFallback {
		t.Fatalf("provenance = %s, want local_fallback", result.Provenance)
	}
	if !result.Data.Sunrise.Occurs || !result.Data.Sunset.Occurs {
		t.Error("local solver should find sunrise and sunset at mid-latitude")
	}
	if result.Data.DayLength <= 0 {
		t.Errorf("day length = %v, want positive", result.Data.DayLength)
	}
}

func TestSunFallbackPolarNight(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testCalculators(func(cfg *config.Config) {
		cfg.SunriseSunsetURL = server.URL
	})

	polar := models.GeoLocation{Latitude: 80, Longitude: 0}
	date := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	result := c.Sun(context.Background(), polar, date)

	if result.Provenance != models.ProvenanceLocalFallback {
		t.Fatalf("provenance = %s, want local_fallback", result.Provenance)
	}

	sun := result.Data
	if sun.Sunrise.Occurs || sun.Sunset.Occurs {
		t.Error("expected no sunrise or sunset in polar night")
	}
	if sun.Sunrise.Clock() != "does not occur" {
		t.Errorf("sunrise clock = %q", sun.Sunrise.Clock())
	}
	if sun.DayLength != 0 {
		t.Errorf("day length = %v, want 0", sun.DayLength)
	}
	if !sun.HasAstronomicalNight() {
		t.Error("polar night is dark throughout")
	}
}

func TestParseEventISO(t *testing.T) {
	date := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	ev := parseEventISO("2026-03-20T10:59:00+00:00", date)
	if !ev.Occurs || !ev.At.Equal(time.Date(2026, time.March, 20, 10, 59, 0, 0, time.UTC)) {
		t.Errorf("valid time parsed as %v", ev)
	}

	// The API pins absent events at the epoch.
	if ev := parseEventISO("1970-01-01T00:00:01+00:00", date); ev.Occurs {
		t.Error("epoch sentinel should not occur")
	}

	if ev := parseEventISO("not-a-time", date); ev.Occurs {
		t.Error("garbage should not occur")
	}
}
