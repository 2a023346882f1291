package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	MessagesIngested  prometheus.Counter
	LinksSaved        prometheus.Counter
	DuplicatesSkipped prometheus.Counter
	ExportRuns        prometheus.Counter
	ExportFailures    prometheus.Counter
	DeliveryFailures  prometheus.Counter
	RecordsExported   prometheus.Counter
	ExportDuration    prometheus.Histogram
}

// NewMetrics creates new Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_messages_ingested_total",
			Help: "Total number of inbound messages stored",
		}),
		LinksSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_links_saved_total",
			Help: "Total number of newly stored links",
		}),
		DuplicatesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_duplicates_skipped_total",
			Help: "Total number of URLs dropped as duplicates",
		}),
		ExportRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_export_runs_total",
			Help: "Total number of completed export runs",
		}),
		ExportFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_export_failures_total",
			Help: "Total number of export runs that failed",
		}),
		DeliveryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_delivery_failures_total",
			Help: "Total number of report deliveries that failed",
		}),
		RecordsExported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "report_bot_records_exported_total",
			Help: "Total number of records stamped with an export date",
		}),
		ExportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "report_bot_export_duration_seconds",
			Help:    "Time spent running the export pipeline",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
