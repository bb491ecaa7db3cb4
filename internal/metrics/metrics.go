// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2d

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	importStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cratekeeper",
		Name:      "imports_started_total",
		Help:      "Total number of import runs started by source",
	}, []string{"source"})
	importCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cratekeeper",
		Name:      "imports_completed_total",
		Help:      "Total number of import runs completed by source",
	}, []string{"source"})
	importFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cratekeeper",
		Name:      "imports_failed_total",
		Help:      "Total number of import runs failed by source",
	}, []string{"source"})
	importDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cratekeeper",
		Name:      "import_duration_seconds",
		Help:      "Histogram of import run durations in seconds by source",
		Buckets:   prometheus.ExponentialBuckets(0.05, 1.6, 10),
	}, []string{"source"})
	recordsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cratekeeper",
		Name:      "import_records_processed_total",
		Help:      "Total records processed by imports, by source and outcome",
	}, []string{"source", "outcome"}) // outcome: new, updated, skipped, error
	conflictsDetected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cratekeeper",
		Name:      "conflicts_detected_total",
		Help:      "Total field conflicts raised by imports, by source",
	}, []string{"source"})
	conflictsResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cratekeeper",
		Name:      "conflicts_resolved_total",
		Help:      "Total field conflicts resolved, by resolution kind",
	}, []string{"resolution"})

	albumsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cratekeeper",
		Name:      "albums_total",
		Help:      "Current total number of albums in the collection",
	})
	pendingConflictsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cratekeeper",
		Name:      "pending_conflicts",
		Help:      "Current number of unresolved import conflicts",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(importStarted, importCompleted, importFailed,
			importDuration, recordsProcessed, conflictsDetected,
			conflictsResolved, albumsGauge, pendingConflictsGauge)
	})
}

// Import lifecycle helpers
func IncImportStarted(source string)   { importStarted.WithLabelValues(source).Inc() }
func IncImportCompleted(source string) { importCompleted.WithLabelValues(source).Inc() }
func IncImportFailed(source string)    { importFailed.WithLabelValues(source).Inc() }
func ObserveImportDuration(source string, d time.Duration) {
	importDuration.WithLabelValues(source).Observe(d.Seconds())
}
func IncRecord(source, outcome string) { recordsProcessed.WithLabelValues(source, outcome).Inc() }
func IncConflictsDetected(source string, n int) {
	conflictsDetected.WithLabelValues(source).Add(float64(n))
}
func IncConflictResolved(resolution string) {
	conflictsResolved.WithLabelValues(resolution).Inc()
}

// Gauges
func SetAlbums(n int)           { albumsGauge.Set(float64(n)) }
func SetPendingConflicts(n int) { pendingConflictsGauge.Set(float64(n)) }
