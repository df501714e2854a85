package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skybrief/internal/briefing"
	"skybrief/internal/calculators"
	"skybrief/internal/config"
	"skybrief/internal/orchestrator"
	"skybrief/internal/reports"
	"skybrief/internal/storage"
)

// testServer wires a full stack against a stub upstream that fails every
// remote fetch. The local-only domains and local fallbacks still answer,
// so briefings always synthesize.
func testServer(t *testing.T, store storage.StorageClient) *Server {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		DefaultLatitude:     40.7128,
		DefaultLongitude:    -74.0060,
		FetchTimeoutSeconds: 2,
		Environment:         "test",
		USNOOneDayURL:       upstream.URL,
		SunriseSunsetURL:    upstream.URL,
		SWPCKIndexURL:       upstream.URL,
		SWPCKForecastURL:    upstream.URL,
		SWPCSolarWindURL:    upstream.URL,
		SIDCRSSURL:          upstream.URL,
		OpenMeteoURL:        upstream.URL,
	}

	synth := briefing.New(orchestrator.New(calculators.New(cfg)), nil)
	return New(cfg, synth, reports.NewGenerator(), store)
}

func TestHandleBriefing(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/briefing?lat=40.7&lon=-74.0&date=2026-12-14", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["date"] != "2026-12-14" {
		t.Errorf("date = %v", body["date"])
	}

	// Remote-only domains degrade, local domains still answer.
	prov := body["provenance"].(map[string]interface{})
	if prov["planets"] != "local_fallback" {
		t.Errorf("planets provenance = %v", prov["planets"])
	}
	if prov["clouds"] != "unavailable" {
		t.Errorf("clouds provenance = %v", prov["clouds"])
	}
	if prov["moon"] != "local_fallback" {
		t.Errorf("moon provenance = %v", prov["moon"])
	}
}

func TestHandleBriefingInvalidParams(t *testing.T) {
	srv := testServer(t, nil)
	mux := srv.Routes()

	for _, url := range []string{
		"/briefing?lat=abc",
		"/briefing?lat=95",
		"/briefing?lon=200",
		"/briefing?date=14-12-2026",
		"/briefing?light_pollution=1.5",
	} {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, rec.Code)
		}
	}
}

func TestHandleBriefingMethodNotAllowed(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/briefing", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleBriefingText(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/briefing/text?date=2026-12-14", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	if strings.TrimSpace(rec.Body.String()) == "" {
		t.Error("expected a narrative")
	}
}

func TestHandleTonight(t *testing.T) {
	srv := testServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/tonight?date=2026-12-14", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var tonight briefing.Tonight
	if err := json.Unmarshal(rec.Body.Bytes(), &tonight); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if tonight.Date != "2026-12-14" {
		t.Errorf("date = %q", tonight.Date)
	}
	if tonight.Headline == "" {
		t.Error("expected a headline")
	}
}

func TestHandleReportArchives(t *testing.T) {
	store, err := storage.NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	srv := testServer(t, store)

	req := httptest.NewRequest(http.MethodGet, "/report?date=2026-12-14", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<!DOCTYPE html>") {
		t.Error("expected an HTML document")
	}

	briefings, err := store.ListBriefings(req.Context(), 0)
	if err != nil {
		t.Fatalf("ListBriefings: %v", err)
	}
	if len(briefings) != 1 {
		t.Fatalf("archived %d briefings, want 1", len(briefings))
	}

	// The JSON sidecar lands next to the HTML.
	jsonPath := strings.Replace(briefings[0], "index.html", "briefing.json", 1)
	if _, err := store.GetFile(req.Context(), jsonPath); err != nil {
		t.Errorf("briefing.json not archived: %v", err)
	}
}

func TestHandleListBriefings(t *testing.T) {
	store, err := storage.NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	srv := testServer(t, store)
	mux := srv.Routes()

	// Generate one report first.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?date=2026-12-14", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/briefings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v", body["count"])
	}
}

func TestHandleListBriefingsNoArchive(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/briefings", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v", health["status"])
	}
	if health["version"] == "" {
		t.Error("expected a version")
	}
}

func TestHandleRootLandingPage(t *testing.T) {
	srv := testServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sky Briefing Service") {
		t.Error("expected the landing page")
	}
}

func TestHandleRootServesLatestBriefing(t *testing.T) {
	store, err := storage.NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	srv := testServer(t, store)
	mux := srv.Routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?date=2026-12-14", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("report status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sky Briefing") || strings.Contains(rec.Body.String(), "No briefings have been archived") {
		t.Error("expected the archived report, got the landing page")
	}
}
