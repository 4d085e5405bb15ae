package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"esgtrack/internal/clientauth"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/platform/httputil"
	"esgtrack/pkg/platform/validation"
	"esgtrack/pkg/requestcontext"
)

type Service interface {
	Exchange(ctx context.Context, clientID, secret string) (*clientauth.Token, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the token endpoint. It is public; the client secret is the credential.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.handleToken)
}

type TokenRequest struct {
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
}

func (r *TokenRequest) Normalize() {
	r.ClientID = strings.TrimSpace(r.ClientID)
}

func (r *TokenRequest) Validate() error {
	return validation.Struct(r)
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	token, err := h.service.Exchange(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "token exchange failed", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, token)
}
