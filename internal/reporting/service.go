// Package reporting builds the ESG analysis, activity log and overview trend
// from persisted metric entries and initiatives.
//
// Invalid filters are returned as validation errors. Any other failure while
// building a report is logged, counted and answered with an empty report.
package reporting

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"esgtrack/internal/esg/models"
	"esgtrack/internal/platform/metrics"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/requestcontext"
)

// EntryStore lists metric entries joined with their definitions.
type EntryStore interface {
	List(ctx context.Context, filter models.EntryFilter) ([]*models.EntryRecord, error)
}

type InitiativeStore interface {
	List(ctx context.Context, filter models.InitiativeFilter) ([]*models.Initiative, error)
}

const (
	reportAnalysis      = "analysis"
	reportAnalysisChart = "analysis_chart"
	reportActivityLog   = "activity_log"
	reportOverviewTrend = "overview_trend"
)

type Service struct {
	entries     EntryStore
	initiatives InitiativeStore
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
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

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(entries EntryStore, initiatives InitiativeStore, opts ...Option) *Service {
	s := &Service{
		entries:     entries,
		initiatives: initiatives,
		logger:      slog.Default(),
		tracer:      otel.Tracer("esgtrack/reporting"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// startReport opens a span and returns a func that records latency and,
// for failures, the error.
func (s *Service) startReport(ctx context.Context, report string, attrs ...attribute.KeyValue) (context.Context, func(err error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "reporting."+report, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		s.metrics.ObserveReport(report, time.Since(start))
	}
}

// fail logs and counts an internal report failure.
func (s *Service) fail(ctx context.Context, report string, err error) {
	s.metrics.IncrementReportFailure(report)
	s.logger.ErrorContext(ctx, "report generation failed",
		"report", report,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}

// Analysis returns the ESG analysis for the filters.
func (s *Service) Analysis(ctx context.Context, f AnalysisFilters) (*Analysis, error) {
	ctx, done := s.startReport(ctx, reportAnalysis,
		attribute.String("esg.company", f.Company),
		attribute.String("esg.group_by", string(f.GroupBy)),
	)
	if err := f.normalize(requestcontext.Now(ctx)); err != nil {
		done(err)
		return nil, err
	}

	records, err := s.entries.List(ctx, f.entryFilter())
	done(err)
	if err != nil {
		s.fail(ctx, reportAnalysis, err)
		return buildAnalysis(nil, f), nil
	}
	return buildAnalysis(records, f), nil
}

// AnalysisChart returns the dashboard aggregates for the analysis filters.
func (s *Service) AnalysisChart(ctx context.Context, f AnalysisFilters) (*AnalysisChart, error) {
	ctx, done := s.startReport(ctx, reportAnalysisChart, attribute.String("esg.company", f.Company))
	if err := f.normalize(requestcontext.Now(ctx)); err != nil {
		done(err)
		return nil, err
	}

	records, err := s.entries.List(ctx, f.entryFilter())
	done(err)
	if err != nil {
		s.fail(ctx, reportAnalysisChart, err)
		return emptyChart(), nil
	}
	return buildChart(records), nil
}

// ActivityLog returns metric entries, and optionally initiatives created in
// the window, for one company. Both sources are read concurrently.
func (s *Service) ActivityLog(ctx context.Context, f ActivityFilters) (*ActivityLog, error) {
	ctx, done := s.startReport(ctx, reportActivityLog,
		attribute.String("esg.company", f.Company),
		attribute.Bool("esg.include_initiatives", f.IncludeInitiatives),
	)
	now := requestcontext.Now(ctx)
	if err := f.normalize(now); err != nil {
		done(err)
		return nil, err
	}

	var (
		records     []*models.EntryRecord
		initiatives []*models.Initiative
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.entries.List(gctx, models.EntryFilter{
			Company:       f.Company,
			Metric:        f.ActivityType,
			SourceDocType: f.SourceDocType,
			Performance:   f.Performance,
			From:          f.From,
			To:            f.To,
		})
		return err
	})
	if f.IncludeInitiatives {
		g.Go(func() error {
			var err error
			initiatives, err = s.initiatives.List(gctx, models.InitiativeFilter{
				Company:     f.Company,
				CreatedFrom: f.From,
				CreatedTo:   f.To,
			})
			return err
		})
	}
	err := g.Wait()
	done(err)
	if err != nil {
		s.fail(ctx, reportActivityLog, err)
		return emptyActivityLog(), nil
	}
	return buildActivityLog(records, initiatives, now), nil
}

// OverviewTrend returns the category progress trend of a company's open initiatives.
func (s *Service) OverviewTrend(ctx context.Context, company string) (*Trend, error) {
	ctx, done := s.startReport(ctx, reportOverviewTrend, attribute.String("esg.company", company))
	if company == "" {
		err := dErrors.New(dErrors.CodeValidation, "company is required")
		done(err)
		return nil, err
	}

	initiatives, err := s.initiatives.List(ctx, models.InitiativeFilter{Company: company, ExcludeClosed: true})
	done(err)
	if err != nil {
		s.fail(ctx, reportOverviewTrend, err)
		return emptyTrend(), nil
	}
	return buildTrend(initiatives, requestcontext.Now(ctx)), nil
}
