package service

import (
	"context"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/requestcontext"
)

func (s *Service) CreatePolicy(ctx context.Context, p models.Policy) (*models.Policy, error) {
	policy, err := models.NewPolicy(p, requestcontext.Now(ctx))
	if err != nil {
		return nil, validation(err)
	}
	if err := s.policies.Save(ctx, policy); err != nil {
		return nil, persist(err, "policy", "policy name must be unique per company")
	}
	s.logger.InfoContext(ctx, "policy created",
		"request_id", requestcontext.RequestID(ctx),
		"policy", policy.Name,
		"company", policy.Company,
	)
	return policy, nil
}

func (s *Service) GetPolicy(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	p, err := s.policies.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "policy")
	}
	return p, nil
}

func (s *Service) ListPolicies(ctx context.Context, company string) ([]*models.Policy, error) {
	out, err := s.policies.List(ctx, company)
	if err != nil {
		return nil, lookup(err, "policies")
	}
	return out, nil
}

func (s *Service) CreateAudit(ctx context.Context, a models.Audit) (*models.Audit, error) {
	audit, err := models.NewAudit(a, requestcontext.Now(ctx))
	if err != nil {
		return nil, validation(err)
	}
	if err := s.audits.Save(ctx, audit); err != nil {
		return nil, persist(err, "audit", "audit already exists")
	}
	s.logger.InfoContext(ctx, "audit recorded",
		"request_id", requestcontext.RequestID(ctx),
		"audit_id", audit.ID,
		"company", audit.Company,
		"non_conformities", audit.NonConformities(),
	)
	return audit, nil
}

func (s *Service) GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error) {
	a, err := s.audits.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "audit")
	}
	return a, nil
}

func (s *Service) ListAudits(ctx context.Context, company string) ([]*models.Audit, error) {
	out, err := s.audits.List(ctx, company)
	if err != nil {
		return nil, lookup(err, "audits")
	}
	return out, nil
}
