package baseline

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/esg/store/company"
	"esgtrack/internal/platform/metrics"
	"esgtrack/pkg/platform/sentinel"
)

type fakeCache struct {
	values  map[string]float64
	readErr error
}

func (c *fakeCache) FindBaseline(_ context.Context, company string) (float64, error) {
	if c.readErr != nil {
		return 0, c.readErr
	}
	v, ok := c.values[company]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return v, nil
}

func (c *fakeCache) SaveBaseline(_ context.Context, company string, v float64) error {
	c.values[company] = v
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, company string) error {
	delete(c.values, company)
	return nil
}

type failingStore struct{}

func (failingStore) Find(context.Context, string) (*models.CompanySettings, error) {
	return nil, errors.New("connection refused")
}

type ProviderSuite struct {
	suite.Suite
	ctx      context.Context
	settings *company.InMemory
	cache    *fakeCache
	metrics  *metrics.Metrics
	provider *Provider
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderSuite))
}

func (s *ProviderSuite) SetupTest() {
	s.ctx = context.Background()
	s.settings = company.NewInMemory()
	s.cache = &fakeCache{values: map[string]float64{}}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.provider = New(s.settings, 5000, WithCache(s.cache), WithMetrics(s.metrics))
}

func (s *ProviderSuite) TestFallbackWhenUnset() {
	v, err := s.provider.Baseline(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Equal(5000.0, v)
	s.Equal(5000.0, s.cache.values["ACME"])
}

func (s *ProviderSuite) TestConfiguredBaselineIsCached() {
	b := 1200.0
	s.Require().NoError(s.settings.Upsert(s.ctx, &models.CompanySettings{Company: "ACME", BaselineEmissions: &b}))

	v, err := s.provider.Baseline(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Equal(1200.0, v)

	v, err = s.provider.Baseline(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Equal(1200.0, v)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BaselineLookups.WithLabelValues("hit")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BaselineLookups.WithLabelValues("miss")))
}

func (s *ProviderSuite) TestInvalidateRereadsStore() {
	s.cache.values["ACME"] = 900
	s.provider.Invalidate(s.ctx, "ACME")

	v, err := s.provider.Baseline(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Equal(5000.0, v)
}

func (s *ProviderSuite) TestCacheFailureFallsThrough() {
	s.cache.readErr = errors.New("redis down")
	b := 3000.0
	s.Require().NoError(s.settings.Upsert(s.ctx, &models.CompanySettings{Company: "ACME", BaselineEmissions: &b}))

	v, err := s.provider.Baseline(s.ctx, "ACME")
	s.Require().NoError(err)
	s.Equal(3000.0, v)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BaselineLookups.WithLabelValues("error")))
}

func (s *ProviderSuite) TestStoreFailureIsReturned() {
	p := New(failingStore{}, 5000)
	_, err := p.Baseline(s.ctx, "ACME")
	s.Require().Error(err)
}
