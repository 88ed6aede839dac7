// Package metrics defines the Prometheus collectors for sheet counting and table editing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cadtools/internal/domain"
)

var (
	SheetsCounted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cadtools_sheets_counted_total",
			Help: "Total number of drawing sheets counted, by format",
		},
		[]string{"size"},
	)

	CountDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cadtools_sheet_count_duration_seconds",
			Help:    "Time taken to count sheet formats across drawings",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	SummaryA4 = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cadtools_summary_a4_sheets",
			Help:    "A4-equivalent sheet count per count run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	TableEdits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cadtools_table_edits_total",
			Help: "Total number of data table edit operations",
		},
		[]string{"operation", "status"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cadtools_exports_total",
			Help: "Total number of report and table exports",
		},
		[]string{"kind", "format", "status"},
	)
)

// RecordCount records the outcome of a sheet count run.
func RecordCount(entries []domain.SheetSizeEntry, summaryA4 int, duration time.Duration) {
	for _, e := range entries {
		SheetsCounted.WithLabelValues(e.Size.String()).Add(float64(e.Count))
	}
	SummaryA4.Observe(float64(summaryA4))
	CountDuration.Observe(duration.Seconds())
}

// RecordTableEdit records a data table edit.
func RecordTableEdit(operation string, err error) {
	TableEdits.WithLabelValues(operation, status(err)).Inc()
}

// RecordExport records a report or table export.
func RecordExport(kind, format string, err error) {
	ExportsTotal.WithLabelValues(kind, format, status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
