package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

type InMemory struct {
	mu     sync.RWMutex
	audits map[uuid.UUID]*models.Audit
}

func NewInMemory() *InMemory {
	return &InMemory{audits: make(map[uuid.UUID]*models.Audit)}
}

func (s *InMemory) Save(_ context.Context, a *models.Audit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.audits[a.ID]; ok {
		return sentinel.ErrConflict
	}
	s.audits[a.ID] = clone(a)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.audits[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(a), nil
}

// List returns audits for company, most recent audit date first.
func (s *InMemory) List(_ context.Context, company string) ([]*models.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Audit, 0)
	for _, a := range s.audits {
		if company != "" && a.Company != company {
			continue
		}
		out = append(out, clone(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuditDate.After(out[j].AuditDate) })
	return out, nil
}

func clone(a *models.Audit) *models.Audit {
	c := *a
	c.Findings = append([]models.Finding(nil), a.Findings...)
	return &c
}
