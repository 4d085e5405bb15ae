package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"esgtrack/internal/derivation"
	"esgtrack/internal/esg/models"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/httputil"
	"esgtrack/pkg/requestcontext"
)

const maxDocumentBytes = 1 << 20

// Service defines the derivation operations exposed as hooks.
type Service interface {
	OnSubmit(ctx context.Context, doc *derivation.Document) (*models.MetricEntry, error)
	OnCancel(ctx context.Context, docType models.SourceDocType, name string) (int, error)
}

// Handler exposes document lifecycle hooks for hosts that post events over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the hook endpoints behind requireAuth. Both hooks write.
func (h *Handler) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/hooks/{doctype}/submit", h.handleSubmit)
		r.Post("/hooks/{doctype}/cancel", h.handleCancel)
	})
}

type SubmitResponse struct {
	Skipped bool                `json:"skipped"`
	Entry   *models.MetricEntry `json:"entry,omitempty"`
}

type CancelResponse struct {
	Removed int `json:"removed"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	doc, ok := h.decodeDocument(w, r)
	if !ok {
		return
	}

	entry, err := h.service.OnSubmit(ctx, doc)
	if err != nil {
		h.logger.ErrorContext(ctx, "submit hook failed",
			"request_id", requestID,
			"doctype", doc.DocType,
			"document", doc.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if entry == nil {
		httputil.WriteJSON(w, http.StatusOK, SubmitResponse{Skipped: true})
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, SubmitResponse{Entry: entry})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	doc, ok := h.decodeDocument(w, r)
	if !ok {
		return
	}

	removed, err := h.service.OnCancel(ctx, doc.DocType, doc.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "cancel hook failed",
			"request_id", requestID,
			"doctype", doc.DocType,
			"document", doc.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CancelResponse{Removed: removed})
}

// decodeDocument reads the posted document. Unknown fields are allowed since
// hosts post whole documents. The path doctype wins over any body value.
func (h *Handler) decodeDocument(w http.ResponseWriter, r *http.Request) (*derivation.Document, bool) {
	docType, err := derivation.ParseDocType(chi.URLParam(r, "doctype"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}

	var doc derivation.Document
	if err := json.NewDecoder(io.LimitReader(r.Body, maxDocumentBytes)).Decode(&doc); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode document",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid document body"))
		return nil, false
	}
	doc.DocType = docType
	return &doc, true
}
