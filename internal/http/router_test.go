package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	derivationhandler "esgtrack/internal/derivation/handler"
	"esgtrack/internal/derivation/handler/mocks"
	"esgtrack/internal/platform/metrics"
	"esgtrack/internal/platform/middleware"
	dErrors "esgtrack/pkg/domain-errors"
	"esgtrack/pkg/requestcontext"
)

type pingRoutes struct{}

func (pingRoutes) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

type recordRoutes struct{}

func (recordRoutes) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.With(requireAuth).Post("/api/esg/things", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.UserID(r.Context())))
	})
}

type tokenValidator struct{}

func (tokenValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token != "good" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return &middleware.JWTClaims{UserID: "HR-EMP-0001"}, nil
}

func newRouter(health map[string]HealthCheck, protected ...AuthRegistrar) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		JWTValidator:   tokenValidator{},
		RequestTimeout: time.Second,
		Health:         health,
		Public:         []Registrar{pingRoutes{}},
		Protected:      append([]AuthRegistrar{recordRoutes{}}, protected...),
	})
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouterMountsHandlers(t *testing.T) {
	h := newRouter(nil)

	w := serve(h, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "esg_http_request_duration_seconds")
}

func TestRouterAuthenticatesRecordWrites(t *testing.T) {
	h := newRouter(nil)

	w := serve(h, httptest.NewRequest(http.MethodPost, "/api/esg/things", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodPost, "/api/esg/things", nil)
	r.Header.Set("Authorization", "Bearer good")
	w = serve(h, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HR-EMP-0001", w.Body.String())
}

func TestRouterAuthenticatesDocumentHooks(t *testing.T) {
	service := mocks.NewMockService(gomock.NewController(t))
	h := newRouter(nil, derivationhandler.New(service, slog.New(slog.NewTextHandler(io.Discard, nil))))

	for _, path := range []string{"/hooks/sales-invoice/submit", "/hooks/sales-invoice/cancel"} {
		body := `{"name":"SINV-0001","company":"ACME","total_carbon_emissions_kg_co2e":6000}`
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		assert.Equal(t, http.StatusUnauthorized, serve(h, r).Code, path)

		r = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer forged")
		assert.Equal(t, http.StatusUnauthorized, serve(h, r).Code, path)
	}
}

func TestHealthz(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := newRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
		})
		w := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("degraded", func(t *testing.T) {
		h := newRouter(map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		w := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var body healthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, map[string]string{"postgres": "ok", "redis": "connection refused"}, body.Checks)
	})
}
