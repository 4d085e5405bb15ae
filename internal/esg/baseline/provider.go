// Package baseline resolves the per-company emissions target used when
// deriving metric entries from documents.
package baseline

import (
	"context"
	"errors"
	"log/slog"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/metrics"
	"esgtrack/pkg/platform/sentinel"
)

// SettingsStore reads company ESG settings.
type SettingsStore interface {
	Find(ctx context.Context, company string) (*models.CompanySettings, error)
}

// Cache stores resolved baselines. Misses return sentinel.ErrNotFound.
type Cache interface {
	FindBaseline(ctx context.Context, company string) (float64, error)
	SaveBaseline(ctx context.Context, company string, baseline float64) error
	Invalidate(ctx context.Context, company string) error
}

// Provider looks baselines up through an optional cache.
type Provider struct {
	store    SettingsStore
	cache    Cache
	fallback float64
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Provider)

func WithCache(c Cache) Option {
	return func(p *Provider) {
		p.cache = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) {
		p.metrics = m
	}
}

// New builds a provider that falls back to fallback for companies without a
// configured baseline.
func New(store SettingsStore, fallback float64, opts ...Option) *Provider {
	p := &Provider{
		store:    store,
		fallback: fallback,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Baseline returns the company's baseline emissions target. Cache failures
// are logged and the store is consulted instead.
func (p *Provider) Baseline(ctx context.Context, company string) (float64, error) {
	if p.cache != nil {
		v, err := p.cache.FindBaseline(ctx, company)
		switch {
		case err == nil:
			p.metrics.IncrementBaselineLookup("hit")
			return v, nil
		case errors.Is(err, sentinel.ErrNotFound):
			p.metrics.IncrementBaselineLookup("miss")
		default:
			p.metrics.IncrementBaselineLookup("error")
			p.logger.WarnContext(ctx, "baseline cache read failed", "company", company, "error", err)
		}
	}

	settings, err := p.store.Find(ctx, company)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return 0, err
	}
	v := settings.Baseline(p.fallback)

	if p.cache != nil {
		if err := p.cache.SaveBaseline(ctx, company, v); err != nil {
			p.logger.WarnContext(ctx, "baseline cache write failed", "company", company, "error", err)
		}
	}
	return v, nil
}

// Invalidate drops the cached baseline after settings change.
func (p *Provider) Invalidate(ctx context.Context, company string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Invalidate(ctx, company); err != nil {
		p.logger.WarnContext(ctx, "baseline cache invalidation failed", "company", company, "error", err)
	}
}
