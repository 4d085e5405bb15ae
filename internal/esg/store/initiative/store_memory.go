package initiative

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

type InMemory struct {
	mu          sync.RWMutex
	initiatives map[uuid.UUID]*models.Initiative
}

func NewInMemory() *InMemory {
	return &InMemory{initiatives: make(map[uuid.UUID]*models.Initiative)}
}

func (s *InMemory) Save(_ context.Context, i *models.Initiative) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.initiatives[i.ID]; ok {
		return sentinel.ErrConflict
	}
	c := *i
	s.initiatives[i.ID] = &c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Initiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.initiatives[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *i
	return &c, nil
}

func (s *InMemory) Update(_ context.Context, i *models.Initiative) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.initiatives[i.ID]; !ok {
		return sentinel.ErrNotFound
	}
	c := *i
	s.initiatives[i.ID] = &c
	return nil
}

// List returns matching initiatives, newest first.
func (s *InMemory) List(_ context.Context, filter models.InitiativeFilter) ([]*models.Initiative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Initiative, 0)
	for _, i := range s.initiatives {
		if !filter.Matches(i) {
			continue
		}
		c := *i
		out = append(out, &c)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].Name < out[b].Name
	})
	return out, nil
}
