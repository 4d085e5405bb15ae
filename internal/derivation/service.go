// Package derivation turns ERP document lifecycle events into ESG metric
// entries. A submitted document with a non-zero emissions field produces
// exactly one entry; cancelling the document removes every entry it produced.
package derivation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/config"
	"esgtrack/internal/platform/metrics"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/requestcontext"
)

// EntryStore persists derived entries.
type EntryStore interface {
	Save(ctx context.Context, e *models.MetricEntry) error
	DeleteBySource(ctx context.Context, docType models.SourceDocType, name string) (int, error)
}

// Publisher announces entry lifecycle events. Publishing never fails the
// derivation that triggered it.
type Publisher interface {
	Publish(ctx context.Context, key, event string, payload any)
}

// BaselineProvider resolves the company emissions target.
type BaselineProvider interface {
	Baseline(ctx context.Context, company string) (float64, error)
}

const (
	derivedUnit            = "kg"
	evidenceDocumentType   = "Evidence"
	defaultVerificationLag = 7
)

// Service derives and removes metric entries for document events.
type Service struct {
	entries          EntryStore
	baselines        BaselineProvider
	verificationLead int
	logger           *slog.Logger
	metrics          *metrics.Metrics
	tracer           trace.Tracer
	publisher        Publisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithConfig applies the verification lead time from configuration.
func WithConfig(cfg config.ESGConfig) Option {
	return func(s *Service) {
		if cfg.VerificationLeadDays > 0 {
			s.verificationLead = cfg.VerificationLeadDays
		}
	}
}

// WithPublisher announces derived and removed entries.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(entries EntryStore, baselines BaselineProvider, opts ...Option) *Service {
	s := &Service{
		entries:          entries,
		baselines:        baselines,
		verificationLead: defaultVerificationLag,
		logger:           slog.Default(),
		tracer:           otel.Tracer("esgtrack/derivation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle dispatches a validated event to OnSubmit or OnCancel.
func (s *Service) Handle(ctx context.Context, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	switch ev.Event {
	case EventSubmit:
		_, err := s.OnSubmit(ctx, &ev.Document)
		return err
	default:
		_, err := s.OnCancel(ctx, ev.DocType, ev.Document.Name)
		return err
	}
}

// OnSubmit derives a metric entry for a submitted document. It returns nil
// without error when the document carries no emissions.
func (s *Service) OnSubmit(ctx context.Context, doc *Document) (*models.MetricEntry, error) {
	ctx, span := s.tracer.Start(ctx, "derivation.submit", trace.WithAttributes(
		attribute.String("esg.doctype", string(doc.DocType)),
		attribute.String("esg.document", doc.Name),
	))
	defer span.End()

	entry, err := s.derive(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if entry == nil {
		span.SetAttributes(attribute.Bool("esg.skipped", true))
	}
	return entry, nil
}

func (s *Service) derive(ctx context.Context, doc *Document) (*models.MetricEntry, error) {
	r, ok := rules[doc.DocType]
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported document type %q", doc.DocType))
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "document name is required")
	}
	if strings.TrimSpace(doc.Company) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "document company is required")
	}

	measured := r.measured(doc)
	if measured == 0 {
		s.metrics.IncrementSkipped(string(doc.DocType))
		s.logger.DebugContext(ctx, "document has no emissions, skipping",
			"doctype", doc.DocType,
			"document", doc.Name,
		)
		return nil, nil
	}

	baseline, err := s.baselines.Baseline(ctx, doc.Company)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve company baseline")
	}

	now := requestcontext.Now(ctx)
	today := models.Day(now)
	o := r.apply(doc, baseline)
	period := o.period
	if period.IsZero() {
		period = today
	}
	verification := o.verification
	if verification == "" {
		verification = models.VerificationPending
	}
	verifyBy := today.AddDate(0, 0, s.verificationLead)

	entry, err := models.NewMetricEntry(models.MetricEntry{
		Metric:             o.metric,
		Company:            doc.Company,
		EntryDate:          today,
		ReportingPeriod:    models.FrequencyDaily,
		PeriodFrom:         period,
		PeriodTo:           period,
		Value:              measured,
		MeasuredValue:      measured,
		TargetValue:        o.target,
		Unit:               derivedUnit,
		Performance:        o.performance,
		DataSource:         models.DataSourceSystemGenerated,
		SourceDocType:      doc.DocType,
		SourceDocument:     doc.Name,
		VerificationStatus: verification,
		VerificationDate:   &verifyBy,
		PartyType:          o.partyType,
		Party:              o.party,
		Remarks:            o.remarks,
		SupportingDocuments: []models.SupportingDocument{
			{DocumentType: evidenceDocumentType, DocumentName: doc.Name},
		},
	}, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save metric entry")
	}

	s.metrics.IncrementDerived(string(doc.DocType), string(entry.Performance))
	s.logger.InfoContext(ctx, "metric entry derived",
		"doctype", doc.DocType,
		"document", doc.Name,
		"company", doc.Company,
		"metric", entry.Metric,
		"measured", entry.MeasuredValue,
		"target", entry.TargetValue,
		"performance", entry.Performance,
	)
	s.publish(ctx, doc.DocType, doc.Name, EntryEvent{
		Event:          EventEntryDerived,
		SourceDocType:  doc.DocType,
		SourceDocument: doc.Name,
		Entry:          entry,
	})
	return entry, nil
}

// OnCancel removes every entry derived from the document and reports how
// many were removed. Cancelling an unknown document removes nothing.
func (s *Service) OnCancel(ctx context.Context, docType models.SourceDocType, name string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "derivation.cancel", trace.WithAttributes(
		attribute.String("esg.doctype", string(docType)),
		attribute.String("esg.document", name),
	))
	defer span.End()

	if !docType.IsValid() {
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported document type %q", docType))
	}
	if strings.TrimSpace(name) == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "document name is required")
	}

	removed, err := s.entries.DeleteBySource(ctx, docType, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove metric entries")
	}
	span.SetAttributes(attribute.Int("esg.removed", removed))

	s.metrics.AddRemoved(string(docType), removed)
	s.logger.InfoContext(ctx, "metric entries removed for cancelled document",
		"doctype", docType,
		"document", name,
		"removed", removed,
	)
	if removed > 0 {
		s.publish(ctx, docType, name, EntryEvent{
			Event:          EventEntriesRemoved,
			SourceDocType:  docType,
			SourceDocument: name,
			Removed:        removed,
		})
	}
	return removed, nil
}

func (s *Service) publish(ctx context.Context, docType models.SourceDocType, name string, ev EntryEvent) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, string(docType)+"/"+name, ev.Event, ev)
}
