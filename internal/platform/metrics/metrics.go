package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Metric entries derived from submitted documents
	EntriesDerived *prometheus.CounterVec

	// Metric entries removed on document cancellation
	EntriesRemoved *prometheus.CounterVec

	// Documents skipped because their emissions field was zero
	DocumentsSkipped *prometheus.CounterVec

	// Report generation latency
	ReportLatency *prometheus.HistogramVec

	// Reports that failed internally and were replaced by an empty result
	ReportFailures *prometheus.CounterVec

	// Baseline lookups by cache outcome
	BaselineLookups *prometheus.CounterVec

	// HTTP request latency by route pattern
	HTTPLatency *prometheus.HistogramVec

	// Entry lifecycle events handed to Kafka
	EntryEvents *prometheus.CounterVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EntriesDerived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esg_metric_entries_derived_total",
			Help: "Metric entries created from submitted documents by source type and performance",
		}, []string{"source_doctype", "performance"}),

		EntriesRemoved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esg_metric_entries_removed_total",
			Help: "Metric entries deleted because their source document was cancelled",
		}, []string{"source_doctype"}),

		DocumentsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esg_documents_skipped_total",
			Help: "Submitted documents without emissions that produced no metric entry",
		}, []string{"source_doctype"}),

		ReportLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esg_report_duration_seconds",
			Help:    "Duration of report generation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"report"}), // report: "analysis", "analysis_chart", "activity_log", "overview_trend"

		ReportFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esg_report_failures_total",
			Help: "Reports that failed and returned an empty result",
		}, []string{"report"}),

		BaselineLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esg_baseline_lookups_total",
			Help: "Company baseline lookups by cache result",
		}, []string{"result"}), // result: "hit", "miss", "error"

		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esg_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),

		EntryEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "esg_entry_events_total",
			Help: "Entry lifecycle events by event type and delivery result",
		}, []string{"event", "result"}), // result: "delivered", "failed", "dropped"
	}
}

// IncrementDerived records a derived metric entry.
func (m *Metrics) IncrementDerived(sourceDocType, performance string) {
	if m != nil {
		m.EntriesDerived.WithLabelValues(sourceDocType, performance).Inc()
	}
}

// AddRemoved records entries removed for a cancelled document.
func (m *Metrics) AddRemoved(sourceDocType string, n int) {
	if m != nil && n > 0 {
		m.EntriesRemoved.WithLabelValues(sourceDocType).Add(float64(n))
	}
}

// IncrementSkipped records a document that produced no entry.
func (m *Metrics) IncrementSkipped(sourceDocType string) {
	if m != nil {
		m.DocumentsSkipped.WithLabelValues(sourceDocType).Inc()
	}
}

// ObserveReport records how long a report took.
func (m *Metrics) ObserveReport(report string, d time.Duration) {
	if m != nil {
		m.ReportLatency.WithLabelValues(report).Observe(d.Seconds())
	}
}

// IncrementReportFailure records a report replaced by an empty result.
func (m *Metrics) IncrementReportFailure(report string) {
	if m != nil {
		m.ReportFailures.WithLabelValues(report).Inc()
	}
}

// IncrementBaselineLookup records a baseline cache outcome.
func (m *Metrics) IncrementBaselineLookup(result string) {
	if m != nil {
		m.BaselineLookups.WithLabelValues(result).Inc()
	}
}

// ObserveHTTP records an HTTP request latency.
func (m *Metrics) ObserveHTTP(route, status string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// IncrementEntryEvent records the delivery result of an entry event.
func (m *Metrics) IncrementEntryEvent(event, result string) {
	if m != nil {
		m.EntryEvents.WithLabelValues(event, result).Inc()
	}
}
