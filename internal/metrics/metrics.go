package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// match outcome label values
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
	OutcomeEmpty   = "empty"
)

var (
	// Matching
	MatchOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchmark_match_total",
			Help: "Requirement fields resolved against the benchmark catalog, by outcome",
		},
		[]string{"kind", "outcome"},
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "benchmark_resolve_duration_seconds",
			Help:    "Time to resolve cpu and gpu scores of one requirement",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)

	// Catalog
	CatalogRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "benchmark_catalog_records",
			Help: "Records in the active catalog snapshot, by kind",
		},
		[]string{"kind"},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchmark_catalog_reloads_total",
			Help: "Catalog snapshot swaps, by source",
		},
		[]string{"source"},
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordHTTP records one finished request.
func RecordHTTP(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
