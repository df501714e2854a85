package astro

import (
	"math"
	"testing"
	"time"
)

func planetByName(t *testing.T, name string) PlanetElements {
	t.Helper()
	for _, p := range Planets {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("planet %q not in table", name)
	return PlanetElements{}
}

func TestMeanLongitudeAtEpoch(t *testing.T) {
	epoch := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	for _, p := range Planets {
		got := meanLongitude(p, epoch)
		if math.Abs(got-p.MeanLongitudeJ2000) > 1e-6 {
			t.Errorf("%s mean longitude at epoch = %f, want %f", p.Name, got, p.MeanLongitudeJ2000)
		}
	}
}

func TestPlanetElongationBounds(t *testing.T) {
	venus := planetByName(t, "Venus")
	mercury := planetByName(t, "Mercury")
	venusMax := rad2Deg(math.Asin(venus.SemiMajorAxisAU))
	mercuryMax := rad2Deg(math.Asin(mercury.SemiMajorAxisAU))

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i += 10 {
		tm := start.AddDate(0, 0, i)

		if e := PlanetElongation(venus, tm); e < 0 || e > venusMax+1e-6 {
			t.Errorf("Venus elongation on %v = %f, want [0, %f]", tm, e, venusMax)
		}
		if e := PlanetElongation(mercury, tm); e < 0 || e > mercuryMax+1e-6 {
			t.Errorf("Mercury elongation on %v = %f, want [0, %f]", tm, e, mercuryMax)
		}
		for _, name := range []string{"Mars", "Jupiter", "Saturn"} {
			p := planetByName(t, name)
			if e := PlanetElongation(p, tm); e < 0 || e > 180 {
				t.Errorf("%s elongation on %v = %f, want [0, 180]", name, tm, e)
			}
		}
	}
}

func TestPlanetViewingWindow(t *testing.T) {
	venus := planetByName(t, "Venus")
	jupiter := planetByName(t, "Jupiter")

	tests := []struct {
		name       string
		planet     PlanetElements
		elongation float64
		want       PlanetWindow
	}{
		{"inner too close", venus, 17, WindowNotVisible},
		{"inner visible", venus, 20, WindowEvening},
		{"outer conjunction", jupiter, 5, WindowNotVisible},
		{"outer low morning", jupiter, 40, WindowMorning},
		{"outer morning", jupiter, 80, WindowMorning},
		{"outer evening", jupiter, 120, WindowEvening},
		{"outer opposition", jupiter, 170, WindowAllNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlanetViewingWindow(tt.planet, tt.elongation); got != tt.want {
				t.Errorf("window = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewingHint(t *testing.T) {
	venus := planetByName(t, "Venus")
	jupiter := planetByName(t, "Jupiter")

	if got := ViewingHint(jupiter, WindowAllNight, 170); got != "Rises at sunset, sets at sunrise" {
		t.Errorf("opposition hint = %q", got)
	}
	if got := ViewingHint(venus, WindowEvening, 40); got != "Look west after sunset" {
		t.Errorf("inner evening hint = %q", got)
	}
	if got := ViewingHint(jupiter, WindowMorning, 30); got != "Low in morning sky" {
		t.Errorf("low morning hint = %q", got)
	}
	if got := ViewingHint(jupiter, WindowNotVisible, 5); got != "" {
		t.Errorf("not-visible hint = %q, want empty", got)
	}
}

func TestPlanetMagnitude(t *testing.T) {
	venus := planetByName(t, "Venus")
	jupiter := planetByName(t, "Jupiter")

	if got := PlanetMagnitude(jupiter, 180); math.Abs(got-jupiter.MagnitudeMin) > 1e-9 {
		t.Errorf("Jupiter at opposition = %f, want %f", got, jupiter.MagnitudeMin)
	}
	if got := PlanetMagnitude(jupiter, 0); math.Abs(got-jupiter.MagnitudeMax) > 1e-9 {
		t.Errorf("Jupiter at conjunction = %f, want %f", got, jupiter.MagnitudeMax)
	}

	if got := PlanetMagnitude(venus, 10); got != venus.MagnitudeMax {
		t.Errorf("Venus near conjunction = %f, want %f", got, venus.MagnitudeMax)
	}
	mid := (venus.MagnitudeMin + venus.MagnitudeMax) / 2
	if got := PlanetMagnitude(venus, 45); got != mid {
		t.Errorf("Venus at wide elongation = %f, want %f", got, mid)
	}
}

func TestPlanetRiseSetConsistency(t *testing.T) {
	jupiter := planetByName(t, "Jupiter")
	date := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	lat, lon := 40.7128, -74.0060

	rise, set := PlanetRiseSet(jupiter, lat, lon, date)

	if !rise.OK && !set.OK {
		t.Fatal("expected at least one event for Jupiter at mid-latitude")
	}

	for _, ev := range []EventResult{rise, set} {
		if !ev.OK {
			continue
		}
		alt := PlanetAltitude(jupiter, lat, lon, ev.Time)
		if math.Abs(alt-SunHorizonAltitude) > 0.5 {
			t.Errorf("altitude at event %v = %f, want near horizon", ev.Time, alt)
		}
	}
}
