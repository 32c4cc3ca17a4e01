// Package metrics holds the Prometheus collectors for the POS backend.
//
// Counters end in _total, histograms carry their unit, gauges use present
// tense. Labels stay low-cardinality (method/path/status only); sale and
// book identifiers are never used as labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized guards against double registration (promauto panics on
	// duplicate collectors).
	initialized bool

	// HTTP metrics, recorded by the gin middleware.

	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress tracks in-flight requests.
	HTTPRequestsInProgress prometheus.Gauge

	// Sale business metrics, recorded by the sale registration use case.

	// SalesRegisteredTotal counts committed sales.
	SalesRegisteredTotal prometheus.Counter

	// SalesFailedTotal counts rejected or rolled-back sales.
	SalesFailedTotal prometheus.Counter

	// SaleRegistrationDuration observes the end-to-end sale transaction time.
	SaleRegistrationDuration prometheus.Histogram

	// SaleAmountReais observes the distribution of committed sale totals.
	SaleAmountReais prometheus.Histogram
)

// InitMetrics registers all collectors with the default registry. Safe to
// call more than once.
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "HTTP requests currently being served.",
		},
	)

	SalesRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_registered_total",
			Help: "Sales committed successfully.",
		},
	)

	SalesFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_failed_total",
			Help: "Sales rejected by validation or rolled back.",
		},
	)

	SaleRegistrationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sale_registration_duration_seconds",
			Help:    "Sale transaction duration in seconds.",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	SaleAmountReais = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sale_amount_reais",
			Help:    "Committed sale totals in reais.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000},
		},
	)
}
