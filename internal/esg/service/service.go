package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/sentinel"
)

type MetricStore interface {
	Save(ctx context.Context, m *models.Metric) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Metric, error)
	FindByName(ctx context.Context, name string) (*models.Metric, error)
	List(ctx context.Context, company string) ([]*models.Metric, error)
}

type EntryStore interface {
	Save(ctx context.Context, e *models.MetricEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error)
	Update(ctx context.Context, e *models.MetricEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.EntryFilter) ([]*models.EntryRecord, error)
}

type InitiativeStore interface {
	Save(ctx context.Context, i *models.Initiative) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Initiative, error)
	Update(ctx context.Context, i *models.Initiative) error
	List(ctx context.Context, filter models.InitiativeFilter) ([]*models.Initiative, error)
}

type PolicyStore interface {
	Save(ctx context.Context, p *models.Policy) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	FindByName(ctx context.Context, company, name string) (*models.Policy, error)
	List(ctx context.Context, company string) ([]*models.Policy, error)
}

type AuditStore interface {
	Save(ctx context.Context, a *models.Audit) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Audit, error)
	List(ctx context.Context, company string) ([]*models.Audit, error)
}

type ComplianceReportStore interface {
	Save(ctx context.Context, r *models.ComplianceReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ComplianceReport, error)
	List(ctx context.Context, company string) ([]*models.ComplianceReport, error)
}

type SettingsStore interface {
	Find(ctx context.Context, company string) (*models.CompanySettings, error)
	Upsert(ctx context.Context, settings *models.CompanySettings) error
}

// BaselineCache is told when a company baseline changes.
type BaselineCache interface {
	Invalidate(ctx context.Context, company string)
}

// Stores groups the record stores the service manages.
type Stores struct {
	Metrics     MetricStore
	Entries     EntryStore
	Initiatives InitiativeStore
	Policies    PolicyStore
	Audits      AuditStore
	Reports     ComplianceReportStore
	Settings    SettingsStore
}

// Service implements create, read and lifecycle operations on ESG records.
type Service struct {
	metrics     MetricStore
	entries     EntryStore
	initiatives InitiativeStore
	policies    PolicyStore
	audits      AuditStore
	reports     ComplianceReportStore
	settings    SettingsStore
	baselines   BaselineCache
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBaselineCache invalidates cached baselines when settings are saved.
func WithBaselineCache(c BaselineCache) Option {
	return func(s *Service) {
		s.baselines = c
	}
}

func New(stores Stores, opts ...Option) *Service {
	s := &Service{
		metrics:     stores.Metrics,
		entries:     stores.Entries,
		initiatives: stores.Initiatives,
		policies:    stores.Policies,
		audits:      stores.Audits,
		reports:     stores.Reports,
		settings:    stores.Settings,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validation converts model invariant violations into client-facing validation errors.
func validation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return err
}

// lookup translates a store read error.
func lookup(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}

// persist translates a store write error.
func persist(err error, what, conflict string) error {
	switch {
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, conflict)
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save "+what)
}
