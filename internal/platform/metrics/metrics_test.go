package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementDerived("Sales Invoice", "Red")
	m.IncrementDerived("Sales Invoice", "Red")
	m.AddRemoved("Sales Invoice", 2)
	m.AddRemoved("Sales Invoice", 0)
	m.IncrementReportFailure("analysis")
	m.IncrementEntryEvent("entry.derived", "delivered")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesDerived.WithLabelValues("Sales Invoice", "Red")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesRemoved.WithLabelValues("Sales Invoice")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportFailures.WithLabelValues("analysis")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EntryEvents.WithLabelValues("entry.derived", "delivered")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementDerived("Work Order", "Green")
		m.AddRemoved("Work Order", 3)
		m.IncrementSkipped("Work Order")
		m.ObserveReport("analysis", time.Millisecond)
		m.IncrementReportFailure("analysis")
		m.IncrementBaselineLookup("hit")
		m.ObserveHTTP("/reports/analysis", "2xx", time.Millisecond)
		m.IncrementEntryEvent("entry.derived", "dropped")
	})
}
