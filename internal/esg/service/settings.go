package service

import (
	"context"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/requestcontext"
)

func (s *Service) GetSettings(ctx context.Context, company string) (*models.CompanySettings, error) {
	c, err := s.settings.Find(ctx, company)
	if err != nil {
		return nil, lookup(err, "company settings")
	}
	return c, nil
}

// PutSettings replaces a company's ESG settings. Derivation picks up a new
// baseline immediately because the cached value is dropped.
func (s *Service) PutSettings(ctx context.Context, c models.CompanySettings) (*models.CompanySettings, error) {
	if err := c.Validate(); err != nil {
		return nil, validation(err)
	}
	c.UpdatedAt = requestcontext.Now(ctx)
	if err := s.settings.Upsert(ctx, &c); err != nil {
		return nil, persist(err, "company settings", "company settings conflict")
	}
	if s.baselines != nil {
		s.baselines.Invalidate(ctx, c.Company)
	}
	s.logger.InfoContext(ctx, "company settings saved",
		"request_id", requestcontext.RequestID(ctx),
		"company", c.Company,
		"baseline", c.Baseline(0),
	)
	return &c, nil
}
