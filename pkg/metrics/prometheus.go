package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	ImportsTotal   *prometheus.CounterVec
	ImportDuration prometheus.Histogram
	RowsProcessed  prometheus.Counter
	RowErrors      *prometheus.CounterVec
	BatchFlushes   prometheus.Counter
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ImportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "The total number of import runs by outcome",
		}, []string{"outcome"}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Time taken by one import run",
			Buckets:   prometheus.DefBuckets,
		}),
		RowsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_processed_total",
			Help:      "The total number of spreadsheet rows processed",
		}),
		RowErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "row_errors_total",
			Help:      "The total number of row-level errors",
		}, []string{"stage"}),
		BatchFlushes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_flushes_total",
			Help:      "The total number of write-buffer flushes",
		}),
	}
}
