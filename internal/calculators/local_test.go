package calculators

import (
	"context"
	"math"
	"testing"
	"time"

	"skybrief/internal/models"
)

func TestMeteorsGeminidsPeak(t *testing.T) {
	c := testCalculators(nil)

	date := time.Date(2026, time.December, 14, 0, 0, 0, 0, time.UTC)
	result := c.Meteors(context.Background(), testLocation, date)

	if result.Provenance != models.ProvenanceLocalFallback {
		t.Fatalf("provenance = %s, want local_fallback", result.Provenance)
	}

	var geminids *models.ShowerActivity
	for i := range result.Data.Active {
		if result.Data.Active[i].Name == "Geminids" {
			geminids = &result.Data.Active[i]
		}
	}
	if geminids == nil {
		t.Fatal("Geminids should be active on their peak date")
	}

	if geminids.DaysFromPeak != 0 {
		t.Errorf("days from peak = %d, want 0", geminids.DaysFromPeak)
	}
	if geminids.EffectiveZHR != 150 {
		t.Errorf("effective ZHR = %f, want 150", geminids.EffectiveZHR)
	}
	if geminids.Rating != "Excellent" {
		t.Errorf("rating = %q, want Excellent", geminids.Rating)
	}
}

func TestMeteorsRatingDecaysOffPeak(t *testing.T) {
	c := testCalculators(nil)

	// Dec 19 is 5 days past the Geminid peak: 150 * 0.4 = 60.
	date := time.Date(2026, time.December, 19, 0, 0, 0, 0, time.UTC)
	result := c.Meteors(context.Background(), testLocation, date)

	for _, s := range result.Data.Active {
		if s.Name != "Geminids" {
			continue
		}
		if math.Abs(s.EffectiveZHR-60) > 1e-9 {
			t.Errorf("effective ZHR = %f, want 60", s.EffectiveZHR)
		}
		if s.Rating != "Good" {
			t.Errorf("rating = %q, want Good", s.Rating)
		}
		return
	}
	t.Fatal("Geminids still active on Dec 19")
}

func TestMeteorsQuietPeriod(t *testing.T) {
	c := testCalculators(nil)

	// Mid-February has no active showers.
	date := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	result := c.Meteors(context.Background(), testLocation, date)

	if len(result.Data.Active) != 0 {
		t.Errorf("active showers in mid-February: %+v", result.Data.Active)
	}
	if len(result.Data.Upcoming) == 0 {
		t.Error("expected upcoming showers")
	}
	if result.Data.Upcoming[0].Name != "Lyrids" {
		t.Errorf("next shower = %q, want Lyrids", result.Data.Upcoming[0].Name)
	}
}

func TestEclipseNext(t *testing.T) {
	c := testCalculators(nil)

	date := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	result := c.Eclipse(context.Background(), testLocation, date)

	if result.Provenance != models.ProvenanceLocalFallback {
		t.Fatalf("provenance = %s, want local_fallback", result.Provenance)
	}

	e := result.Data
	if e.Type != "Total Solar" {
		t.Errorf("type = %q, want Total Solar", e.Type)
	}
	if e.DaysUntil != 11 {
		t.Errorf("days until = %d, want 11", e.DaysUntil)
	}
	if !e.IsSoon() {
		t.Error("11 days out should count as soon")
	}
	if e.MaxAt.Format("15:04") != "17:46" {
		t.Errorf("max at = %v", e.MaxAt)
	}
}

func TestEclipseBeyondTable(t *testing.T) {
	c := testCalculators(nil)

	date := time.Date(2031, time.June, 1, 0, 0, 0, 0, time.UTC)
	result := c.Eclipse(context.Background(), testLocation, date)

	if result.Provenance != models.ProvenanceUnavailable {
		t.Fatalf("provenance = %s, want unavailable beyond table horizon", result.Provenance)
	}
}

func TestPlanetsAlwaysComplete(t *testing.T) {
	c := testCalculators(nil)

	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	result := c.Planets(context.Background(), testLocation, date)

	if result.Provenance != models.ProvenanceLocalFallback {
		t.Fatalf("provenance = %s, want local_fallback", result.Provenance)
	}
	if len(result.Data) != 7 {
		t.Fatalf("planet count = %d, want 7", len(result.Data))
	}

	// Visible planets sort before hidden ones, brightest first.
	seenHidden := false
	var prevMag float64
	for i, p := range result.Data {
		if !p.Visible {
			seenHidden = true
		} else if seenHidden {
			t.Errorf("visible planet %q after hidden ones", p.Name)
		}
		if p.Visible {
			if i > 0 && result.Data[i-1].Visible && p.Magnitude < prevMag {
				t.Errorf("magnitude order broken at %q", p.Name)
			}
			prevMag = p.Magnitude
			if p.Window == "" || p.Hint == "" {
				t.Errorf("visible planet %q missing viewing guidance", p.Name)
			}
		}
	}
}
