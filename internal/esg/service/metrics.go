package service

import (
	"context"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/requestcontext"
)

func (s *Service) CreateMetric(ctx context.Context, m models.Metric) (*models.Metric, error) {
	metric, err := models.NewMetric(m, requestcontext.Now(ctx))
	if err != nil {
		return nil, validation(err)
	}
	if err := s.metrics.Save(ctx, metric); err != nil {
		return nil, persist(err, "metric", "metric name and code must be unique")
	}
	s.logger.InfoContext(ctx, "metric created",
		"request_id", requestcontext.RequestID(ctx),
		"metric", metric.Name,
		"company", metric.Company,
	)
	return metric, nil
}

func (s *Service) GetMetric(ctx context.Context, id uuid.UUID) (*models.Metric, error) {
	m, err := s.metrics.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "metric")
	}
	return m, nil
}

// ListMetrics returns the metric definitions of a company, or all when company is empty.
func (s *Service) ListMetrics(ctx context.Context, company string) ([]*models.Metric, error) {
	out, err := s.metrics.List(ctx, company)
	if err != nil {
		return nil, lookup(err, "metrics")
	}
	return out, nil
}
