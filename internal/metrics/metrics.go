// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceResults counts calculator outcomes by domain and provenance.
	SourceResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skybrief_source_results_total",
		Help: "Calculator results by domain and provenance.",
	}, []string{"domain", "provenance"})

	// SourceDuration tracks per-domain calculator latency.
	SourceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skybrief_source_duration_seconds",
		Help:    "Calculator latency by domain.",
		Buckets: prometheus.DefBuckets,
	}, []string{"domain"})

	// Briefings counts synthesized briefings by score category.
	Briefings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skybrief_briefings_total",
		Help: "Briefings synthesized, by viewing score category.",
	}, []string{"category"})

	// HTTPRequests counts handler invocations by path and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skybrief_http_requests_total",
		Help: "HTTP requests by path and status class.",
	}, []string{"path", "status"})
)

// ObserveSource records one calculator outcome.
func ObserveSource(domain, provenance string, elapsed time.Duration) {
	SourceResults.WithLabelValues(domain, provenance).Inc()
	SourceDuration.WithLabelValues(domain).Observe(elapsed.Seconds())
}
