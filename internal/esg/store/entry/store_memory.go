package entry

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	"esgtrack/pkg/platform/sentinel"
)

// MetricCatalog resolves a metric name to its category.
type MetricCatalog interface {
	CategoryOf(name string) (models.Category, bool)
}

// CompanyDirectory resolves a company key to its display name.
type CompanyDirectory interface {
	NameOf(company string) (string, bool)
}

// InMemory is a mutex-guarded entry store used by tests and local runs.
type InMemory struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]*models.MetricEntry
	metrics   MetricCatalog
	companies CompanyDirectory
}

type InMemoryOption func(*InMemory)

// WithCatalog makes List join entries with metric categories and company names.
func WithCatalog(metrics MetricCatalog, companies CompanyDirectory) InMemoryOption {
	return func(s *InMemory) {
		s.metrics = metrics
		s.companies = companies
	}
}

func NewInMemory(opts ...InMemoryOption) *InMemory {
	s := &InMemory{entries: make(map[uuid.UUID]*models.MetricEntry)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemory) Save(_ context.Context, e *models.MetricEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; ok {
		return sentinel.ErrConflict
	}
	s.entries[e.ID] = clone(e)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.MetricEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(e), nil
}

func (s *InMemory) Update(_ context.Context, e *models.MetricEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.entries[e.ID] = clone(e)
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *InMemory) DeleteBySource(_ context.Context, docType models.SourceDocType, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.SourceDocType == docType && e.SourceDocument == name {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (s *InMemory) List(_ context.Context, filter models.EntryFilter) ([]*models.EntryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.EntryRecord, 0)
	for _, e := range s.entries {
		if !filter.Matches(e) {
			continue
		}
		rec := &models.EntryRecord{MetricEntry: *clone(e)}
		if s.metrics != nil {
			rec.Category, _ = s.metrics.CategoryOf(e.Metric)
		}
		if s.companies != nil {
			rec.CompanyName, _ = s.companies.NameOf(e.Company)
		}
		out = append(out, rec)
	}
	SortRecords(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// SortRecords orders records newest first, then by metric and company.
func SortRecords(records []*models.EntryRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if a.Metric != b.Metric {
			return a.Metric < b.Metric
		}
		return a.Company < b.Company
	})
}

func clone(e *models.MetricEntry) *models.MetricEntry {
	c := *e
	c.SupportingDocuments = append([]models.SupportingDocument(nil), e.SupportingDocuments...)
	if e.VerificationDate != nil {
		d := *e.VerificationDate
		c.VerificationDate = &d
	}
	return &c
}
