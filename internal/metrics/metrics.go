package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citiesmanager_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citiesmanager_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// AuthEventsTotal counts auth workflow outcomes by operation and result,
	// e.g. {op="refresh", result="stale_token"}.
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citiesmanager_auth_events_total",
			Help: "Authentication workflow outcomes",
		},
		[]string{"op", "result"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "citiesmanager_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
)

func AuthEvent(op, result string) {
	AuthEventsTotal.WithLabelValues(op, result).Inc()
}
