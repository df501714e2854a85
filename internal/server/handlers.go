package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skybrief/internal/briefing"
	"skybrief/internal/config"
)

// handleRoot serves the latest archived briefing, or a landing page when
// the archive is empty or disabled.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if s.storage != nil {
		latest, err := s.storage.GetLatestBriefing(ctx)
		if err == nil {
			content, err := s.storage.GetFile(ctx, latest)
			if err == nil {
				w.Header().Set("Content-Type", "text/html")
				w.Write(content)
				return
			}
			s.log.Warn("failed to read latest briefing", map[string]interface{}{"error": err.Error()})
		}
	}

	s.serveLandingPage(w)
}

func (s *Server) serveLandingPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>Sky Briefing Service</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #10101c; color: #e8e8f0; }
        .container { max-width: 800px; margin: 0 auto; background: #1a1a2a; padding: 30px; border-radius: 10px; }
        h1 { text-align: center; }
        .endpoints { background: #222236; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .endpoint { margin: 10px 0; }
        a { color: #8ab4ff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Sky Briefing Service</h1>
        <p>No briefings have been archived yet. Request one with the endpoints below.</p>
        <div class="endpoints">
            <h3>Available Endpoints:</h3>
            <div class="endpoint"><strong>GET /briefing</strong> - Full briefing as JSON (lat, lon, date, light_pollution)</div>
            <div class="endpoint"><strong>GET /briefing/text</strong> - Narrative paragraph as plain text</div>
            <div class="endpoint"><strong>GET /tonight</strong> - Condensed verdict for tonight</div>
            <div class="endpoint"><strong>GET /report</strong> - Full HTML report with charts</div>
            <div class="endpoint"><strong>GET /briefings</strong> - List archived briefings</div>
            <div class="endpoint"><strong>GET /health</strong> - Service health check</div>
        </div>
        <p style="text-align: center; color: #8888a0;">Clear skies!</p>
    </div>
</body>
</html>`)
}

// handleBriefing serves the full structured briefing as JSON.
func (s *Server) handleBriefing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := s.synth.Briefing(r.Context(), req.loc, req.date, req.opts)
	if err != nil {
		s.log.Error("briefing failed", err, nil)
		http.Error(w, "Failed to build briefing", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b.AsDict())
}

// handleBriefingText serves just the narrative paragraph, the form meant
// for screen readers and voice assistants.
func (s *Server) handleBriefingText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := s.synth.Briefing(r.Context(), req.loc, req.date, req.opts)
	if err != nil {
		s.log.Error("briefing failed", err, nil)
		http.Error(w, "Failed to build briefing", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, b.Narrative)
}

// handleTonight serves the condensed at-a-glance verdict.
func (s *Server) handleTonight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := s.synth.Briefing(r.Context(), req.loc, req.date, req.opts)
	if err != nil {
		s.log.Error("briefing failed", err, nil)
		http.Error(w, "Failed to build briefing", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(briefing.ProjectTonight(b))
}

// handleReport builds the full HTML report, archives it when storage is
// configured, and serves it.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	b, err := s.synth.Briefing(r.Context(), req.loc, req.date, req.opts)
	if err != nil {
		s.log.Error("briefing failed", err, nil)
		http.Error(w, "Failed to build briefing", http.StatusInternalServerError)
		return
	}

	html, err := s.generator.GenerateHTML(b)
	if err != nil {
		s.log.Error("report generation failed", err, nil)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	if s.storage != nil {
		ctx := r.Context()
		if err := s.storage.StoreFile(ctx, []byte(html), "index.html", b.GeneratedAt); err != nil {
			s.log.Warn("failed to archive report", map[string]interface{}{"error": err.Error()})
		} else if data, err := json.MarshalIndent(b.AsDict(), "", "  "); err == nil {
			if err := s.storage.StoreFile(ctx, data, "briefing.json", b.GeneratedAt); err != nil {
				s.log.Warn("failed to archive briefing data", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	s.log.Info("report generated", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
		"score":       b.Score.Score,
		"category":    b.Score.Category,
	})

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}

// handleListBriefings lists archived briefings, newest first.
func (s *Server) handleListBriefings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.storage == nil {
		http.Error(w, "Archive not configured", http.StatusNotFound)
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if _, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}
	}

	briefings, err := s.storage.ListBriefings(r.Context(), limit)
	if err != nil {
		s.log.Error("failed to list briefings", err, nil)
		http.Error(w, "Failed to list briefings", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"briefings": briefings,
		"count":     len(briefings),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHealth provides the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":      "healthy",
		"version":     config.GetVersion(),
		"environment": s.cfg.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
