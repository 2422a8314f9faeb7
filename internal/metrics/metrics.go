package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the ID registry
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	CardsIssuedTotal   prometheus.Counter
	ScansRecordedTotal prometheus.Counter
	LoginFailuresTotal prometheus.Counter
	VerifyLookupsTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idregistry_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "idregistry_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "idregistry_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		CardsIssuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "idregistry_cards_issued_total",
				Help: "Total ID cards issued",
			},
		),
		ScansRecordedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "idregistry_scans_recorded_total",
				Help: "Total scan events written to the audit log",
			},
		),
		LoginFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "idregistry_login_failures_total",
				Help: "Total failed login attempts",
			},
		),
		VerifyLookupsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idregistry_verify_lookups_total",
				Help: "Public verification lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
}
