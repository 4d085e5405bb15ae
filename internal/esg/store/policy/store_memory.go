package policy

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

type InMemory struct {
	mu       sync.RWMutex
	policies map[uuid.UUID]*models.Policy
}

func NewInMemory() *InMemory {
	return &InMemory{policies: make(map[uuid.UUID]*models.Policy)}
}

func (s *InMemory) Save(_ context.Context, p *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.policies {
		if existing.ID == p.ID || (existing.Company == p.Company && existing.Name == p.Name) {
			return sentinel.ErrConflict
		}
	}
	c := *p
	s.policies[p.ID] = &c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.policies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *InMemory) FindByName(_ context.Context, company, name string) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.policies {
		if p.Company == company && p.Name == name {
			c := *p
			return &c, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context, company string) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Policy, 0)
	for _, p := range s.policies {
		if company != "" && p.Company != company {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
