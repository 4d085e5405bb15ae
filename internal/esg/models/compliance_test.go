package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
)

func TestNewComplianceReport(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	valid := models.ComplianceReport{
		Name:       "Q1 2026",
		Company:    "ACME",
		PeriodFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		PreparedBy: "EMP-001",
	}

	t.Run("defaults to a quarterly report over every category", func(t *testing.T) {
		r, err := models.NewComplianceReport(valid, now)
		require.NoError(t, err)
		assert.Equal(t, models.ReportQuarterly, r.Type)
		assert.Len(t, r.Categories, 3)
		for _, c := range r.Categories {
			assert.True(t, c.Include)
		}
		assert.Equal(t, now, r.GeneratedOn)
		assert.Empty(t, r.ComplianceStatus)
	})

	t.Run("action items start open", func(t *testing.T) {
		in := valid
		in.ActionItems = []models.ActionItem{{Action: "Install sub-meters", Priority: "High"}}
		r, err := models.NewComplianceReport(in, now)
		require.NoError(t, err)
		assert.Equal(t, "Open", r.ActionItems[0].Status)
	})

	cases := []struct {
		name   string
		modify func(*models.ComplianceReport)
	}{
		{"period ends before it starts", func(r *models.ComplianceReport) { r.PeriodTo = r.PeriodFrom.AddDate(0, 0, -1) }},
		{"missing preparer", func(r *models.ComplianceReport) { r.PreparedBy = "" }},
		{"unknown report type", func(r *models.ComplianceReport) { r.Type = "Weekly" }},
		{"included weights above 100", func(r *models.ComplianceReport) {
			r.Categories = []models.ReportCategory{
				{Category: models.CategoryEnvironmental, Include: true, Weight: 70},
				{Category: models.CategorySocial, Include: true, Weight: 40},
			}
		}},
		{"duplicate category", func(r *models.ComplianceReport) {
			r.Categories = []models.ReportCategory{
				{Category: models.CategorySocial, Include: true},
				{Category: models.CategorySocial, Include: false},
			}
		}},
		{"unknown risk level", func(r *models.ComplianceReport) {
			r.Risks = []models.Risk{{Area: "Supply chain", Level: "Apocalyptic"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.modify(&in)
			_, err := models.NewComplianceReport(in, now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestComplianceReportPreviousPeriod(t *testing.T) {
	r := models.ComplianceReport{
		PeriodFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	from, to := r.PreviousPeriod()
	assert.Equal(t, time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), to)
}

func TestComplianceReportAssess(t *testing.T) {
	record := func(metric string, cat models.Category, measured float64, perf models.Performance) *models.EntryRecord {
		return &models.EntryRecord{
			MetricEntry: models.MetricEntry{
				Metric:             metric,
				MeasuredValue:      measured,
				Performance:        perf,
				VerificationStatus: models.VerificationVerified,
			},
			Category: cat,
		}
	}
	rejected := record("Volunteer Hours", models.CategorySocial, 999, models.PerformanceGreen)
	rejected.VerificationStatus = models.VerificationRejected

	current := []*models.EntryRecord{
		record("Carbon Footprint", "", 400, models.PerformanceGreen),
		record("Carbon Footprint", "", 200, models.PerformanceRed),
		record("Volunteer Hours", models.CategorySocial, 100, models.PerformanceGreen),
		record("Board Meetings", models.CategoryGovernance, 4, models.PerformanceRed),
		rejected,
	}
	previous := []*models.EntryRecord{
		record("Carbon Footprint", "", 800, models.PerformanceRed),
		record("Volunteer Hours", models.CategorySocial, 100, models.PerformanceGreen),
	}
	higher := map[string]bool{"Volunteer Hours": true}

	t.Run("weighted by category", func(t *testing.T) {
		r := models.ComplianceReport{Categories: []models.ReportCategory{
			{Category: models.CategoryEnvironmental, Include: true, Weight: 60},
			{Category: models.CategorySocial, Include: true, Weight: 40},
			{Category: models.CategoryGovernance, Include: false},
		}}
		r.Assess(current, previous, higher)

		require.Len(t, r.MetricAnalysis, 2)
		carbon, hours := r.MetricAnalysis[0], r.MetricAnalysis[1]
		assert.Equal(t, "Carbon Footprint", carbon.Metric)
		assert.Equal(t, models.CategoryEnvironmental, carbon.Category)
		assert.Equal(t, 600.0, carbon.CurrentValue)
		assert.Equal(t, 800.0, carbon.PreviousValue)
		assert.Equal(t, models.TrendImproving, carbon.Trend)
		assert.Equal(t, 2, carbon.Entries)
		assert.Equal(t, 1, carbon.Green)

		assert.Equal(t, "Volunteer Hours", hours.Metric)
		assert.Equal(t, 100.0, hours.CurrentValue)
		assert.Equal(t, models.TrendStable, hours.Trend)

		// 60% of 50 plus 40% of 100
		assert.Equal(t, 70.0, r.ComplianceScore)
		assert.Equal(t, models.CompliancePartially, r.ComplianceStatus)
	})

	t.Run("zero weights count categories equally", func(t *testing.T) {
		r := models.ComplianceReport{Categories: []models.ReportCategory{
			{Category: models.CategoryEnvironmental, Include: true},
			{Category: models.CategorySocial, Include: true},
		}}
		r.Assess(current, previous, higher)
		assert.Equal(t, 75.0, r.ComplianceScore)
		assert.Equal(t, models.ComplianceMostly, r.ComplianceStatus)
	})

	t.Run("growth in a lower-is-better metric declines", func(t *testing.T) {
		r := models.ComplianceReport{Categories: []models.ReportCategory{
			{Category: models.CategoryEnvironmental, Include: true},
		}}
		r.Assess(previous[:1], current[:1], nil)
		require.Len(t, r.MetricAnalysis, 1)
		assert.Equal(t, models.TrendDeclining, r.MetricAnalysis[0].Trend)
		assert.Equal(t, models.ComplianceNone, r.ComplianceStatus)
	})

	t.Run("no entries leaves the status unset", func(t *testing.T) {
		r := models.ComplianceReport{Categories: []models.ReportCategory{
			{Category: models.CategoryGovernance, Include: true},
		}}
		r.Assess(nil, previous, higher)
		assert.Empty(t, r.MetricAnalysis)
		assert.Zero(t, r.ComplianceScore)
		assert.Empty(t, r.ComplianceStatus)
	})
}

func TestComplianceStatusFor(t *testing.T) {
	assert.Equal(t, models.ComplianceFull, models.ComplianceStatusFor(90))
	assert.Equal(t, models.ComplianceMostly, models.ComplianceStatusFor(89.99))
	assert.Equal(t, models.CompliancePartially, models.ComplianceStatusFor(50))
	assert.Equal(t, models.ComplianceNone, models.ComplianceStatusFor(49.5))
}
