package config

import (
	"context"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()

	cfg, err := Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port == "" {
		t.Error("Port should have a default")
	}
	if cfg.SWPCKIndexURL == "" {
		t.Error("SWPCKIndexURL should have a default")
	}
	if cfg.SunriseSunsetURL == "" {
		t.Error("SunriseSunsetURL should have a default")
	}
	if cfg.USNOOneDayURL == "" {
		t.Error("USNOOneDayURL should have a default")
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		t.Errorf("FetchTimeoutSeconds should default to a positive value, got %d", cfg.FetchTimeoutSeconds)
	}
}

func TestLoadOverrides(t *testing.T) {
	ctx := context.Background()

	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_LATITUDE", "33.45")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "3")

	cfg, err := Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Port)
	}
	if cfg.DefaultLatitude != 33.45 {
		t.Errorf("Expected latitude 33.45, got %f", cfg.DefaultLatitude)
	}
	if cfg.FetchTimeoutSeconds != 3 {
		t.Errorf("Expected timeout 3, got %d", cfg.FetchTimeoutSeconds)
	}
}
