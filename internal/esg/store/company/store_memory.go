package company

import (
	"context"
	"sync"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

// InMemory keeps company ESG settings keyed by company.
type InMemory struct {
	mu       sync.RWMutex
	settings map[string]models.CompanySettings
}

func NewInMemory() *InMemory {
	return &InMemory{settings: make(map[string]models.CompanySettings)}
}

func (s *InMemory) Find(_ context.Context, company string) (*models.CompanySettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.settings[company]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemory) Upsert(_ context.Context, settings *models.CompanySettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[settings.Company] = *settings
	return nil
}

// NameOf resolves a company key for joined entry listings.
func (s *InMemory) NameOf(company string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.settings[company]
	if !ok || c.CompanyName == "" {
		return "", false
	}
	return c.CompanyName, true
}
