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

// CreateInitiative records an initiative under an existing policy of the same company.
func (s *Service) CreateInitiative(ctx context.Context, i models.Initiative) (*models.Initiative, error) {
	initiative, err := models.NewInitiative(i, requestcontext.Now(ctx))
	if err != nil {
		return nil, validation(err)
	}
	if _, err := s.policies.FindByName(ctx, initiative.Company, initiative.RelatedPolicy); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeValidation, "unknown related policy "+initiative.RelatedPolicy)
		}
		return nil, lookup(err, "policy")
	}
	if err := s.initiatives.Save(ctx, initiative); err != nil {
		return nil, persist(err, "initiative", "initiative already exists")
	}
	s.logger.InfoContext(ctx, "initiative created",
		"request_id", requestcontext.RequestID(ctx),
		"initiative_id", initiative.ID,
		"company", initiative.Company,
	)
	return initiative, nil
}

func (s *Service) GetInitiative(ctx context.Context, id uuid.UUID) (*models.Initiative, error) {
	i, err := s.initiatives.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "initiative")
	}
	return i, nil
}

func (s *Service) ListInitiatives(ctx context.Context, company string) ([]*models.Initiative, error) {
	out, err := s.initiatives.List(ctx, models.InitiativeFilter{Company: company})
	if err != nil {
		return nil, lookup(err, "initiatives")
	}
	return out, nil
}

// UpdateInitiativeStatus moves an initiative through its lifecycle.
// Completed and cancelled initiatives cannot change status.
func (s *Service) UpdateInitiativeStatus(ctx context.Context, id uuid.UUID, status models.InitiativeStatus) (*models.Initiative, error) {
	i, err := s.initiatives.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "initiative")
	}
	from := i.Status
	if err := i.SetStatus(status); err != nil {
		return nil, validation(err)
	}
	if err := s.initiatives.Update(ctx, i); err != nil {
		return nil, persist(err, "initiative", "initiative was modified concurrently")
	}
	s.logger.InfoContext(ctx, "initiative status changed",
		"request_id", requestcontext.RequestID(ctx),
		"initiative_id", i.ID,
		"from", from,
		"to", i.Status,
	)
	return i, nil
}
