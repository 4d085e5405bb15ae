package reporting

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/esg/store/company"
	"esgtrack/internal/esg/store/entry"
	"esgtrack/internal/esg/store/initiative"
	"esgtrack/internal/esg/store/metric"
	"esgtrack/internal/platform/metrics"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/requestcontext"
)

type ReportingSuite struct {
	suite.Suite
	ctx         context.Context
	now         time.Time
	entries     *entry.InMemory
	initiatives *initiative.InMemory
	metrics     *metrics.Metrics
	service     *Service
}

func TestReportingSuite(t *testing.T) {
	suite.Run(t, new(ReportingSuite))
}

func (s *ReportingSuite) SetupTest() {
	s.now = time.Date(2026, 6, 30, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	metricStore := metric.NewInMemory()
	companies := company.NewInMemory()
	s.entries = entry.NewInMemory(entry.WithCatalog(metricStore, companies))
	s.initiatives = initiative.NewInMemory()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.entries, s.initiatives,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)

	m, err := models.NewMetric(models.Metric{
		Name: "Carbon Footprint", Company: "ACME", Category: models.CategoryEnvironmental, Unit: "kg",
	}, s.now)
	s.Require().NoError(err)
	s.Require().NoError(metricStore.Save(s.ctx, m))
}

func (s *ReportingSuite) addEntry(metricName, company string, day time.Time, measured float64, perf models.Performance) *models.MetricEntry {
	e, err := models.NewMetricEntry(models.MetricEntry{
		Metric:        metricName,
		Company:       company,
		EntryDate:     day,
		MeasuredValue: measured,
		TargetValue:   5000,
		Performance:   perf,
		Unit:          "kg",
	}, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.entries.Save(s.ctx, e))
	return e
}

func (s *ReportingSuite) addInitiative(name string, category models.Category, status models.InitiativeStatus, start, end, created time.Time) *models.Initiative {
	i, err := models.NewInitiative(models.Initiative{
		Name:              name,
		Company:           "ACME",
		RelatedPolicy:     "Climate Policy",
		Category:          category,
		Status:            status,
		StartDate:         start,
		EndDate:           end,
		Budget:            1234.567,
		ResponsiblePerson: "EMP-1",
	}, created)
	s.Require().NoError(err)
	s.Require().NoError(s.initiatives.Save(s.ctx, i))
	return i
}

func (s *ReportingSuite) TestAnalysisDefaultsWindow() {
	s.addEntry("Carbon Footprint", "ACME", date(2026, 6, 1), 6000, models.PerformanceRed)
	s.addEntry("Carbon Footprint", "ACME", date(2025, 7, 1), 100, models.PerformanceGreen)
	s.addEntry("Carbon Footprint", "ACME", date(2025, 6, 29), 100, models.PerformanceGreen)

	a, err := s.service.Analysis(s.ctx, AnalysisFilters{})
	s.Require().NoError(err)
	s.Require().Len(a.Rows, 2, "entries older than twelve months are excluded")
	s.Equal(date(2026, 6, 1), a.Rows[0].Entry.EntryDate)
	s.Equal(models.CategoryEnvironmental, a.Rows[0].Entry.Category)
	s.Equal(-1000.0, a.Rows[0].Entry.Variance)
}

func (s *ReportingSuite) TestAnalysisValidation() {
	_, err := s.service.Analysis(s.ctx, AnalysisFilters{From: date(2026, 6, 2), To: date(2026, 6, 1)})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.Analysis(s.ctx, AnalysisFilters{Performance: "Blue"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.service.AnalysisChart(s.ctx, AnalysisFilters{DataSource: "Telepathy"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ReportingSuite) TestAnalysisFiltersAndGroups() {
	s.addEntry("Carbon Footprint", "ACME", date(2026, 6, 1), 6000, models.PerformanceRed)
	s.addEntry("Carbon Footprint", "ACME", date(2026, 5, 1), 100, models.PerformanceGreen)
	s.addEntry("Water Use", "ACME", date(2026, 5, 2), 100, models.PerformanceGreen)
	s.addEntry("Carbon Footprint", "OTHER", date(2026, 5, 3), 100, models.PerformanceGreen)

	a, err := s.service.Analysis(s.ctx, AnalysisFilters{
		Company:        "ACME",
		GroupBy:        GroupMetric,
		IncludeTargets: true,
		ShowSummary:    true,
	})
	s.Require().NoError(err)

	kinds := countKinds(a.Rows)
	s.Equal(3, kinds[RowData])
	s.Equal(2, kinds[RowGroup])
	s.Equal(1, kinds[RowSubtotal])
	s.Equal(1, kinds[RowSeparator])
	s.Equal(1, kinds[RowSummary])
	s.Equal("group_field", a.Columns[0].Field)
	s.Equal("Carbon Footprint", a.Rows[0].Group)
}

func (s *ReportingSuite) TestAnalysisChart() {
	s.addEntry("Carbon Footprint", "ACME", date(2026, 6, 1), 6000, models.PerformanceRed)
	s.addEntry("Carbon Footprint", "ACME", date(2026, 4, 1), 100, models.PerformanceGreen)

	c, err := s.service.AnalysisChart(s.ctx, AnalysisFilters{Company: "ACME"})
	s.Require().NoError(err)
	s.Equal(2, c.TotalEntries)
	s.Equal([]string{"Apr 2026", "Jun 2026"}, []string{c.MonthlyTrends[0].Month, c.MonthlyTrends[1].Month})
	s.Equal(2, c.VerificationStats.Pending)
}

func (s *ReportingSuite) TestActivityLog() {
	s.addEntry("Material Receipt Carbon Impact", "ACME", date(2026, 6, 20), 12.346, models.PerformanceGreen)
	s.addEntry("Carbon Footprint", "ACME", date(2026, 6, 10), 50, models.PerformanceRed)
	s.addEntry("Carbon Footprint", "ACME", date(2026, 4, 10), 50, models.PerformanceRed)
	s.addInitiative("Solar Roof", models.CategoryEnvironmental, models.InitiativeCompleted,
		date(2026, 1, 1), date(2026, 12, 31), date(2026, 6, 15))

	s.Run("company is required", func() {
		_, err := s.service.ActivityLog(s.ctx, ActivityFilters{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("metric entries only", func() {
		log, err := s.service.ActivityLog(s.ctx, ActivityFilters{Company: "ACME"})
		s.Require().NoError(err)
		s.Require().Len(log.Rows, 2, "default window is one month")
		s.Equal("Material Receipt", log.Rows[0].ActivityType)
		s.Equal(12.35, log.Rows[0].ImpactValue)
		s.Equal("ESG Metric", log.Rows[0].EntryType)
		s.Equal("Carbon Footprint", log.Rows[1].ActivityType)
	})

	s.Run("with initiatives", func() {
		log, err := s.service.ActivityLog(s.ctx, ActivityFilters{Company: "ACME", IncludeInitiatives: true})
		s.Require().NoError(err)
		s.Require().Len(log.Rows, 3)

		ini := log.Rows[1]
		s.Equal("Initiative: Solar Roof", ini.ActivityType)
		s.Equal("ESG Initiative", ini.SourceType)
		s.Equal(models.PartyEmployee, ini.PartyType)
		s.Equal("EMP-1", ini.Party)
		s.Equal(1234.57, ini.ImpactValue)
		s.Equal(models.PerformanceGreen, ini.Performance)
		s.Equal("Verified", ini.Verification)

		s.Equal([]string{"Material Receipt", "Solar Roof", "Carbon Footprint"}, log.Chart.Impact.Labels)
		s.Require().NotNil(log.Chart.Performance)
		s.Equal([]int{2, 1}, log.Chart.Performance.Values)

		s.Equal(3, log.Summary[1].Value)
		s.Equal(2, log.Summary[2].Value)
		s.Equal(1, log.Summary[4].Value)
		s.Equal("66.7%", log.Summary[5].Value)
		s.Equal("green", log.Summary[5].Indicator)
	})
}

func (s *ReportingSuite) TestOverviewTrend() {
	// 100 day initiative, 40 days in.
	s.addInitiative("Fleet", models.CategoryEnvironmental, models.InitiativeOngoing,
		date(2026, 5, 21), date(2026, 8, 29), s.now)
	s.addInitiative("Done", models.CategoryEnvironmental, models.InitiativeCompleted,
		date(2026, 1, 1), date(2026, 2, 1), s.now)
	s.addInitiative("Board", models.CategoryGovernance, models.InitiativePlanned,
		date(2026, 1, 1), date(2026, 12, 31), s.now)

	t, err := s.service.OverviewTrend(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Equal([]string{"Jan 2026", "Mar 2026", "Apr 2026", "May 2026", "May 2026", "Jun 2026"}, t.Labels)
	s.Require().Len(t.Datasets, 3)

	env := t.Datasets[0]
	s.Equal("Environmental", env.Label)
	s.Equal([]float64{0, 0, 0, 0, 10, 40}, env.Data)

	s.Equal([]float64{0, 0, 0, 0, 0, 0}, t.Datasets[1].Data, "no social initiatives")
	s.Equal("Governance", t.Datasets[2].Label)
	s.Equal(49.45, t.Datasets[2].Data[5])

	_, err = s.service.OverviewTrend(s.ctx, "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

type brokenEntries struct{}

func (brokenEntries) List(context.Context, models.EntryFilter) ([]*models.EntryRecord, error) {
	return nil, errors.New("connection reset")
}

type brokenInitiatives struct{}

func (brokenInitiatives) List(context.Context, models.InitiativeFilter) ([]*models.Initiative, error) {
	return nil, errors.New("connection reset")
}

func (s *ReportingSuite) TestInternalFailuresYieldEmptyReports() {
	svc := New(brokenEntries{}, brokenInitiatives{},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)

	a, err := svc.Analysis(s.ctx, AnalysisFilters{IncludeTargets: true})
	s.Require().NoError(err)
	s.Empty(a.Rows)
	s.NotEmpty(a.Columns)

	c, err := svc.AnalysisChart(s.ctx, AnalysisFilters{})
	s.Require().NoError(err)
	s.Zero(c.TotalEntries)

	log, err := svc.ActivityLog(s.ctx, ActivityFilters{Company: "ACME", IncludeInitiatives: true})
	s.Require().NoError(err)
	s.Empty(log.Rows)
	s.Nil(log.Chart.Performance)

	t, err := svc.OverviewTrend(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Empty(t.Labels)
	s.Empty(t.Datasets)

	for _, report := range []string{"analysis", "analysis_chart", "activity_log", "overview_trend"} {
		s.Equal(1.0, testutil.ToFloat64(s.metrics.ReportFailures.WithLabelValues(report)), report)
	}
}
