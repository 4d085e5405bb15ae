package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/requestcontext"
)

// CreateComplianceReport generates a report for the requested period from the
// company's metric entries and stores it. The caller becomes the preparer.
func (s *Service) CreateComplianceReport(ctx context.Context, r models.ComplianceReport) (*models.ComplianceReport, error) {
	r.PreparedBy = requestcontext.UserID(ctx)
	if r.PreparedBy == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	report, err := models.NewComplianceReport(r, requestcontext.Now(ctx))
	if err != nil {
		return nil, validation(err)
	}

	current, err := s.entries.List(ctx, models.EntryFilter{
		Company: report.Company,
		From:    report.PeriodFrom,
		To:      report.PeriodTo,
	})
	if err != nil {
		return nil, lookup(err, "metric entries")
	}
	prevFrom, prevTo := report.PreviousPeriod()
	previous, err := s.entries.List(ctx, models.EntryFilter{
		Company: report.Company,
		From:    prevFrom,
		To:      prevTo,
	})
	if err != nil {
		return nil, lookup(err, "metric entries")
	}
	higher, err := s.higherIsBetter(ctx, current)
	if err != nil {
		return nil, err
	}
	report.Assess(current, previous, higher)

	if err := s.reports.Save(ctx, report); err != nil {
		return nil, persist(err, "compliance report", "compliance report already exists")
	}
	s.logger.InfoContext(ctx, "compliance report generated",
		"request_id", requestcontext.RequestID(ctx),
		"report_id", report.ID,
		"company", report.Company,
		"score", report.ComplianceScore,
		"status", report.ComplianceStatus,
	)
	return report, nil
}

// higherIsBetter names the metrics whose thresholds reward larger values.
// Metrics without a definition or thresholds are treated as lower-is-better.
func (s *Service) higherIsBetter(ctx context.Context, entries []*models.EntryRecord) (map[string]bool, error) {
	out := make(map[string]bool)
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Metric] {
			continue
		}
		seen[e.Metric] = true
		m, err := s.metrics.FindByName(ctx, e.Metric)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, lookup(err, "metric")
		}
		if m.HasThresholds() && !m.LowerIsBetter() {
			out[e.Metric] = true
		}
	}
	return out, nil
}

func (s *Service) GetComplianceReport(ctx context.Context, id uuid.UUID) (*models.ComplianceReport, error) {
	r, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "compliance report")
	}
	return r, nil
}

func (s *Service) ListComplianceReports(ctx context.Context, company string) ([]*models.ComplianceReport, error) {
	out, err := s.reports.List(ctx, company)
	if err != nil {
		return nil, lookup(err, "compliance reports")
	}
	return out, nil
}
