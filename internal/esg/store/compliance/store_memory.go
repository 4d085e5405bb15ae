package compliance

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

type InMemory struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*models.ComplianceReport
}

func NewInMemory() *InMemory {
	return &InMemory{reports: make(map[uuid.UUID]*models.ComplianceReport)}
}

func (s *InMemory) Save(_ context.Context, r *models.ComplianceReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[r.ID]; ok {
		return sentinel.ErrConflict
	}
	s.reports[r.ID] = clone(r)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.ComplianceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

// List returns reports for company, latest period first.
func (s *InMemory) List(_ context.Context, company string) ([]*models.ComplianceReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ComplianceReport, 0)
	for _, r := range s.reports {
		if company != "" && r.Company != company {
			continue
		}
		out = append(out, clone(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PeriodTo.Equal(out[j].PeriodTo) {
			return out[i].PeriodTo.After(out[j].PeriodTo)
		}
		return out[i].GeneratedOn.After(out[j].GeneratedOn)
	})
	return out, nil
}

func clone(r *models.ComplianceReport) *models.ComplianceReport {
	c := *r
	c.Categories = append([]models.ReportCategory(nil), r.Categories...)
	c.MetricAnalysis = append([]models.ReportMetric(nil), r.MetricAnalysis...)
	c.Risks = append([]models.Risk(nil), r.Risks...)
	c.ActionItems = append([]models.ActionItem(nil), r.ActionItems...)
	return &c
}
