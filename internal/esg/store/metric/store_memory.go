package metric

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

// InMemory keeps metric definitions keyed by ID with unique names and codes.
type InMemory struct {
	mu      sync.RWMutex
	metrics map[uuid.UUID]*models.Metric
}

func NewInMemory() *InMemory {
	return &InMemory{metrics: make(map[uuid.UUID]*models.Metric)}
}

func (s *InMemory) Save(_ context.Context, m *models.Metric) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.metrics {
		if existing.ID == m.ID || existing.Name == m.Name || (m.Code != "" && existing.Code == m.Code) {
			return sentinel.ErrConflict
		}
	}
	c := *m
	s.metrics[m.ID] = &c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Metric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metrics[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Metric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.metrics {
		if m.Name == name {
			c := *m
			return &c, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// List returns metrics for company ordered by name; an empty company lists all.
func (s *InMemory) List(_ context.Context, company string) ([]*models.Metric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Metric, 0, len(s.metrics))
	for _, m := range s.metrics {
		if company != "" && m.Company != company {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CategoryOf resolves a metric name for joined entry listings.
func (s *InMemory) CategoryOf(name string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.metrics {
		if m.Name == name {
			return m.Category, true
		}
	}
	return "", false
}
