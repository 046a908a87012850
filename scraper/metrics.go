package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for a checker run.
type Metrics struct {
	Registry            *prometheus.Registry
	FetchesTotal        *prometheus.CounterVec
	FetchDuration       prometheus.Histogram
	CacheHitsTotal      prometheus.Counter
	DiscrepanciesTotal  *prometheus.CounterVec
	SkippedRecordsTotal prometheus.Counter
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "titlecheck_fetches_total",
			Help: "Total mirror page fetches by outcome.",
		},
		[]string{"outcome"},
	)
	fetchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "titlecheck_fetch_duration_seconds",
			Help:    "Latency of mirror page fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "titlecheck_cache_hits_total",
			Help: "Fetches answered from the in-run page cache.",
		},
	)
	discrepancies := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "titlecheck_discrepancies_total",
			Help: "Report rows emitted by kind.",
		},
		[]string{"kind"},
	)
	skipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "titlecheck_skipped_records_total",
			Help: "Records skipped because their group was already checked.",
		},
	)

	registry.MustRegister(fetches, fetchDuration, cacheHits, discrepancies, skipped)

	return &Metrics{
		Registry:            registry,
		FetchesTotal:        fetches,
		FetchDuration:       fetchDuration,
		CacheHitsTotal:      cacheHits,
		DiscrepanciesTotal:  discrepancies,
		SkippedRecordsTotal: skipped,
	}
}

// IncFetch increments the fetch counter for an outcome label.
func (m *Metrics) IncFetch(outcome string) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(outcome).Inc()
}

// ObserveDuration records a fetch duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}

// IncCacheHit increments the cache hit counter.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// IncDiscrepancy increments the report row counter for a kind label.
func (m *Metrics) IncDiscrepancy(kind string) {
	if m == nil {
		return
	}
	m.DiscrepanciesTotal.WithLabelValues(kind).Inc()
}

// IncSkipped increments the skipped record counter.
func (m *Metrics) IncSkipped() {
	if m == nil {
		return
	}
	m.SkippedRecordsTotal.Inc()
}
