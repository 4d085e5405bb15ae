package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"esgtrack/internal/reporting"
	"esgtrack/pkg/platform/httputil"
	"esgtrack/pkg/requestcontext"
)

// Service defines the report operations.
type Service interface {
	Analysis(ctx context.Context, f reporting.AnalysisFilters) (*reporting.Analysis, error)
	AnalysisChart(ctx context.Context, f reporting.AnalysisFilters) (*reporting.AnalysisChart, error)
	ActivityLog(ctx context.Context, f reporting.ActivityFilters) (*reporting.ActivityLog, error)
	OverviewTrend(ctx context.Context, company string) (*reporting.Trend, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the report endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/reports/analysis", h.handleAnalysis)
	r.Get("/reports/analysis/chart", h.handleAnalysisChart)
	r.Get("/reports/activity-log", h.handleActivityLog)
	r.Get("/reports/overview/trend", h.handleOverviewTrend)
}

func (h *Handler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := analysisFilters(r.URL.Query())
	if err != nil {
		h.reject(ctx, w, "analysis", err)
		return
	}
	res, err := h.service.Analysis(ctx, f)
	if err != nil {
		h.reject(ctx, w, "analysis", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleAnalysisChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := analysisFilters(r.URL.Query())
	if err != nil {
		h.reject(ctx, w, "analysis_chart", err)
		return
	}
	res, err := h.service.AnalysisChart(ctx, f)
	if err != nil {
		h.reject(ctx, w, "analysis_chart", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleActivityLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := activityFilters(r.URL.Query())
	if err != nil {
		h.reject(ctx, w, "activity_log", err)
		return
	}
	res, err := h.service.ActivityLog(ctx, f)
	if err != nil {
		h.reject(ctx, w, "activity_log", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleOverviewTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.OverviewTrend(ctx, r.URL.Query().Get("company"))
	if err != nil {
		h.reject(ctx, w, "overview_trend", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) reject(ctx context.Context, w http.ResponseWriter, report string, err error) {
	h.logger.WarnContext(ctx, "report request rejected",
		"request_id", requestcontext.RequestID(ctx),
		"report", report,
		"error", err,
	)
	httputil.WriteError(w, err)
}
