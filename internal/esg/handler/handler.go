package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/httputil"
	"esgtrack/pkg/requestcontext"
)

const (
	defaultEntryLimit = 100
	maxEntryLimit     = 500
)

// Service defines the record operations served under /api/esg.
type Service interface {
	CreateMetric(ctx context.Context, m models.Metric) (*models.Metric, error)
	GetMetric(ctx context.Context, id uuid.UUID) (*models.Metric, error)
	ListMetrics(ctx context.Context, company string) ([]*models.Metric, error)

	CreateEntry(ctx context.Context, e models.ManualEntry) (*models.MetricEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error)
	ListEntries(ctx context.Context, filter models.EntryFilter) ([]*models.EntryRecord, error)
	VerifyEntry(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error)
	RejectEntry(ctx context.Context, id uuid.UUID) (*models.MetricEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	CreateInitiative(ctx context.Context, i models.Initiative) (*models.Initiative, error)
	GetInitiative(ctx context.Context, id uuid.UUID) (*models.Initiative, error)
	ListInitiatives(ctx context.Context, company string) ([]*models.Initiative, error)
	UpdateInitiativeStatus(ctx context.Context, id uuid.UUID, status models.InitiativeStatus) (*models.Initiative, error)

	CreatePolicy(ctx context.Context, p models.Policy) (*models.Policy, error)
	GetPolicy(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	ListPolicies(ctx context.Context, company string) ([]*models.Policy, error)

	CreateAudit(ctx context.Context, a models.Audit) (*models.Audit, error)
	GetAudit(ctx context.Context, id uuid.UUID) (*models.Audit, error)
	ListAudits(ctx context.Context, company string) ([]*models.Audit, error)

	CreateComplianceReport(ctx context.Context, r models.ComplianceReport) (*models.ComplianceReport, error)
	GetComplianceReport(ctx context.Context, id uuid.UUID) (*models.ComplianceReport, error)
	ListComplianceReports(ctx context.Context, company string) ([]*models.ComplianceReport, error)

	GetSettings(ctx context.Context, company string) (*models.CompanySettings, error)
	PutSettings(ctx context.Context, c models.CompanySettings) (*models.CompanySettings, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the record endpoints. Reads are public; writes run behind
// requireAuth so reviews can be attributed to the caller.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/esg", func(r chi.Router) {
		r.Get("/metrics", h.handleListMetrics)
		r.Get("/metrics/{id}", h.handleGetMetric)
		r.Get("/entries", h.handleListEntries)
		r.Get("/entries/{id}", h.handleGetEntry)
		r.Get("/initiatives", h.handleListInitiatives)
		r.Get("/initiatives/{id}", h.handleGetInitiative)
		r.Get("/policies", h.handleListPolicies)
		r.Get("/policies/{id}", h.handleGetPolicy)
		r.Get("/audits", h.handleListAudits)
		r.Get("/audits/{id}", h.handleGetAudit)
		r.Get("/compliance-reports", h.handleListComplianceReports)
		r.Get("/compliance-reports/{id}", h.handleGetComplianceReport)
		r.Get("/companies/{company}/settings", h.handleGetSettings)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/metrics", h.handleCreateMetric)
			r.Post("/entries", h.handleCreateEntry)
			r.Post("/entries/{id}/verify", h.handleVerifyEntry)
			r.Post("/entries/{id}/reject", h.handleRejectEntry)
			r.Delete("/entries/{id}", h.handleDeleteEntry)
			r.Post("/initiatives", h.handleCreateInitiative)
			r.Patch("/initiatives/{id}/status", h.handleUpdateInitiativeStatus)
			r.Post("/policies", h.handleCreatePolicy)
			r.Post("/audits", h.handleCreateAudit)
			r.Post("/compliance-reports", h.handleCreateComplianceReport)
			r.Put("/companies/{company}/settings", h.handlePutSettings)
		})
	})
}

func (h *Handler) handleCreateMetric(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateMetricRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	m, err := h.service.CreateMetric(ctx, req.Model())
	if err != nil {
		h.fail(ctx, w, "create metric", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleGetMetric(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "get metric", err)
		return
	}
	m, err := h.service.GetMetric(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get metric", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleListMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.ListMetrics(ctx, company(r))
	if err != nil {
		h.fail(ctx, w, "list metrics", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateEntryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	e, err := h.service.CreateEntry(ctx, req.Model())
	if err != nil {
		h.fail(ctx, w, "create entry", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "get entry", err)
		return
	}
	e, err := h.service.GetEntry(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get entry", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter, err := entryFilter(r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "list entries", err)
		return
	}
	out, err := h.service.ListEntries(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "list entries", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleVerifyEntry(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "verify entry", h.service.VerifyEntry)
}

func (h *Handler) handleRejectEntry(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, "reject entry", h.service.RejectEntry)
}

func (h *Handler) review(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	apply func(context.Context, uuid.UUID) (*models.MetricEntry, error),
) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	e, err := apply(ctx, id)
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	h.logger.InfoContext(ctx, "entry reviewed",
		"request_id", requestcontext.RequestID(ctx),
		"entry_id", e.ID,
		"verification_status", e.VerificationStatus,
		"user_id", requestcontext.UserID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "delete entry", err)
		return
	}
	if err := h.service.DeleteEntry(ctx, id); err != nil {
		h.fail(ctx, w, "delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateInitiative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateInitiativeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	i, err := h.service.CreateInitiative(ctx, req.Model())
	if err != nil {
		h.fail(ctx, w, "create initiative", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, i)
}

func (h *Handler) handleGetInitiative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "get initiative", err)
		return
	}
	i, err := h.service.GetInitiative(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get initiative", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) handleListInitiatives(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.ListInitiatives(ctx, company(r))
	if err != nil {
		h.fail(ctx, w, "list initiatives", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpdateInitiativeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "update initiative status", err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateInitiativeStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	i, err := h.service.UpdateInitiativeStatus(ctx, id, models.InitiativeStatus(req.Status))
	if err != nil {
		h.fail(ctx, w, "update initiative status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreatePolicyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	p, err := h.service.CreatePolicy(ctx, req.Model())
	if err != nil {
		h.fail(ctx, w, "create policy", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "get policy", err)
		return
	}
	p, err := h.service.GetPolicy(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get policy", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.ListPolicies(ctx, company(r))
	if err != nil {
		h.fail(ctx, w, "list policies", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateAuditRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	a, err := h.service.CreateAudit(ctx, req.Model())
	if err != nil {
		h.fail(ctx, w, "create audit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "get audit", err)
		return
	}
	a, err := h.service.GetAudit(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get audit", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.ListAudits(ctx, company(r))
	if err != nil {
		h.fail(ctx, w, "list audits", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateComplianceReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateComplianceReportRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	report, err := h.service.CreateComplianceReport(ctx, req.Model())
	if err != nil {
		h.fail(ctx, w, "create compliance report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, report)
}

func (h *Handler) handleGetComplianceReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := pathID(r)
	if err != nil {
		h.fail(ctx, w, "get compliance report", err)
		return
	}
	report, err := h.service.GetComplianceReport(ctx, id)
	if err != nil {
		h.fail(ctx, w, "get compliance report", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleListComplianceReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.service.ListComplianceReports(ctx, company(r))
	if err != nil {
		h.fail(ctx, w, "list compliance reports", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := h.service.GetSettings(ctx, chi.URLParam(r, "company"))
	if err != nil {
		h.fail(ctx, w, "get settings", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PutSettingsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.service.PutSettings(ctx, req.Model(chi.URLParam(r, "company")))
	if err != nil {
		h.fail(ctx, w, "put settings", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "esg request failed", attrs...)
	} else {
		h.logger.WarnContext(ctx, "esg request rejected", attrs...)
	}
	httputil.WriteError(w, err)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "id must be a UUID")
	}
	return id, nil
}

func company(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("company"))
}

func entryFilter(values url.Values) (models.EntryFilter, error) {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	f := models.EntryFilter{
		Company:            get("company"),
		Metric:             get("metric"),
		SourceDocType:      models.SourceDocType(get("source_doctype")),
		PartyType:          models.PartyType(get("party_type")),
		Party:              get("party"),
		Performance:        models.Performance(get("performance")),
		VerificationStatus: models.VerificationStatus(get("verification_status")),
		DataSource:         models.DataSource(get("data_source")),
		Limit:              defaultEntryLimit,
	}
	for key, dst := range map[string]*time.Time{"from_date": &f.From, "to_date": &f.To} {
		v := get(key)
		if v == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return f, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", key))
		}
		*dst = t
	}
	if v := get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer")
		}
		f.Limit = min(n, maxEntryLimit)
	}
	return f, nil
}
