// Package server exposes the briefing service over HTTP.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"skybrief/internal/briefing"
	"skybrief/internal/config"
	"skybrief/internal/logger"
	"skybrief/internal/metrics"
	"skybrief/internal/models"
	"skybrief/internal/reports"
	"skybrief/internal/scoring"
	"skybrief/internal/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the synthesizer, report generator and archive behind the
// HTTP API.
type Server struct {
	cfg       *config.Config
	synth     *briefing.Synthesizer
	generator *reports.Generator
	storage   storage.StorageClient
	log       *logger.Logger
}

// New creates a server. The storage client may be nil, which disables
// archiving and the endpoints that read from the archive.
func New(cfg *config.Config, synth *briefing.Synthesizer, generator *reports.Generator, store storage.StorageClient) *Server {
	return &Server{
		cfg:       cfg,
		synth:     synth,
		generator: generator,
		storage:   store,
		log:       logger.GetGlobalLogger().WithComponent("server"),
	}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.instrument("/", s.handleRoot))
	mux.HandleFunc("/briefing", s.instrument("/briefing", s.handleBriefing))
	mux.HandleFunc("/briefing/text", s.instrument("/briefing/text", s.handleBriefingText))
	mux.HandleFunc("/tonight", s.instrument("/tonight", s.handleTonight))
	mux.HandleFunc("/report", s.instrument("/report", s.handleReport))
	mux.HandleFunc("/briefings", s.instrument("/briefings", s.handleListBriefings))
	mux.HandleFunc("/health", s.instrument("/health", s.handleHealth))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// statusRecorder captures the response code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		metrics.HTTPRequests.WithLabelValues(path, fmt.Sprintf("%dxx", rec.status/100)).Inc()
	}
}

// briefingRequest is the parsed and validated query for one briefing.
type briefingRequest struct {
	loc  models.GeoLocation
	date time.Time
	opts scoring.Options
}

// parseRequest reads lat, lon, date and light_pollution from the query,
// falling back to the configured default location and today's UTC date.
func (s *Server) parseRequest(r *http.Request) (briefingRequest, error) {
	req := briefingRequest{
		loc: models.GeoLocation{
			Latitude:  s.cfg.DefaultLatitude,
			Longitude: s.cfg.DefaultLongitude,
		},
		date: time.Now().UTC(),
	}

	q := r.URL.Query()
	if latStr := q.Get("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return req, fmt.Errorf("invalid lat %q", latStr)
		}
		req.loc.Latitude = lat
	}
	if lonStr := q.Get("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return req, fmt.Errorf("invalid lon %q", lonStr)
		}
		req.loc.Longitude = lon
	}
	if err := req.loc.Validate(); err != nil {
		return req, err
	}

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return req, fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateStr)
		}
		req.date = date
	}

	if lpStr := q.Get("light_pollution"); lpStr != "" {
		lp, err := strconv.ParseFloat(lpStr, 64)
		if err != nil || lp < 0 || lp > 1 {
			return req, fmt.Errorf("invalid light_pollution %q, want a value in [0, 1]", lpStr)
		}
		req.opts.LightPollution = &lp
	}

	return req, nil
}
