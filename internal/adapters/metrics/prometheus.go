package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptpilot_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promptpilot_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	EnhancementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptpilot_enhancements_total",
		Help: "Total enhancement requests by provider path and mode",
	}, []string{"provider", "mode"})

	EnhancementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promptpilot_enhancement_duration_seconds",
		Help:    "End-to-end enhancement duration",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"mode"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promptpilot_cache_hits_total",
		Help: "Enhancement cache hits",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promptpilot_cache_misses_total",
		Help: "Enhancement cache misses",
	})

	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptpilot_llm_requests_total",
		Help: "Total LLM refine requests",
	}, []string{"status"})

	LLMRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "promptpilot_llm_request_duration_seconds",
		Help:    "LLM refine request duration",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})
)
