// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})

	ReportsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issue_reports_submitted_total",
		Help: "Issue reports persisted.",
	})

	// Classifications counts labels produced, by source: external, keyword, image.
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classifications_total",
		Help: "Category classifications by source and outcome.",
	}, []string{"source", "outcome"})

	// CircuitBreakerState is 0=closed, 1=open, 2=half-open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open).",
	}, []string{"name"})

	StatsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stats_cache_lookups_total",
		Help: "Global stats cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	ReportsRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "issue_reports_rate_limited_total",
		Help: "Report submissions rejected by the per-user daily limit.",
	})
)
