package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/sentinel"
	"esgtrack/pkg/requestcontext"
)

// CreateEntry records a manual metric entry. The metric definition supplies
// defaults for company, unit and target. Its thresholds decide performance;
// without thresholds the entry's own variance does, and with no target at all
// there is no indicator.
func (s *Service) CreateEntry(ctx context.Context, in models.ManualEntry) (*models.MetricEntry, error) {
	e := in.Entry
	metric, err := s.metrics.FindByName(ctx, e.Metric)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown metric "+e.Metric)
		}
		return nil, lookup(err, "metric")
	}
	if !metric.IsActive {
		return nil, dErrors.New(dErrors.CodeValidation, "metric "+metric.Name+" is inactive")
	}
	if e.SourceDocType != "" || e.SourceDocument != "" {
		return nil, dErrors.New(dErrors.CodeValidation, "source documents are set by derivation only")
	}

	if e.Company == "" {
		e.Company = metric.Company
	}
	if e.Unit == "" {
		e.Unit = metric.Unit
	}
	target := in.Target
	if target == nil {
		target = metric.TargetValue
	}
	if target != nil {
		e.TargetValue = *target
	}
	if e.MeasuredValue == 0 {
		e.MeasuredValue = e.Value
	}
	if e.Value == 0 {
		e.Value = e.MeasuredValue
	}
	if e.ReportingPeriod == "" {
		e.ReportingPeriod = metric.Frequency
	}
	e.Performance = models.PerformanceNone
	e.VerifiedBy = ""
	e.VerificationDate = nil

	entry, err := models.NewMetricEntry(e, requestcontext.Now(ctx))
	if err != nil {
		return nil, validation(err)
	}
	switch {
	case metric.HasThresholds():
		entry.Performance = metric.Evaluate(entry.MeasuredValue)
	case target != nil:
		entry.Performance = models.VariancePerformance(entry.Variance)
	}
	if entry.VerificationStatus != models.VerificationPending {
		return nil, dErrors.New(dErrors.CodeValidation, "new entries start pending verification")
	}
	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, persist(err, "metric entry", "metric entry already exists")
	}
	s.logger.InfoContext(ctx, "metric entry created",
		"request_id", requestcontext.RequestID(ctx),
		"entry_id", entry.ID,
		"metric", entry.Metric,
		"performance", entry.Performance,
	)
	return entry, nil
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error) {
	e, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "metric entry")
	}
	return e, nil
}

func (s *Service) ListEntries(ctx context.Context, filter models.EntryFilter) ([]*models.EntryRecord, error) {
	out, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, lookup(err, "metric entries")
	}
	return out, nil
}

// VerifyEntry marks an entry verified by the authenticated user.
func (s *Service) VerifyEntry(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error) {
	return s.review(ctx, id, "verified", (*models.MetricEntry).Verify)
}

// RejectEntry marks an entry rejected by the authenticated user.
func (s *Service) RejectEntry(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error) {
	return s.review(ctx, id, "rejected", (*models.MetricEntry).Reject)
}

func (s *Service) review(
	ctx context.Context,
	id uuid.UUID,
	outcome string,
	apply func(*models.MetricEntry, string, time.Time) error,
) (*models.MetricEntry, error) {
	actor := requestcontext.UserID(ctx)
	if actor == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	e, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "metric entry")
	}
	if err := apply(e, actor, requestcontext.Now(ctx)); err != nil {
		return nil, validation(err)
	}
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, persist(err, "metric entry", "metric entry was modified concurrently")
	}
	s.logger.InfoContext(ctx, "metric entry "+outcome,
		"request_id", requestcontext.RequestID(ctx),
		"entry_id", e.ID,
		"verified_by", actor,
	)
	return e, nil
}

func (s *Service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "metric entry not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete metric entry")
	}
	s.logger.InfoContext(ctx, "metric entry deleted",
		"request_id", requestcontext.RequestID(ctx),
		"entry_id", id,
	)
	return nil
}
