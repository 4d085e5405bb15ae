// Package httpapi assembles the HTTP surface: the shared middleware chain,
// operational endpoints and every feature handler.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"esgtrack/internal/platform/metrics"
	"esgtrack/internal/platform/middleware"
	"esgtrack/pkg/platform/httputil"
	"esgtrack/pkg/platform/middleware/metadata"
	"esgtrack/pkg/platform/middleware/requesttime"
)

// Registrar mounts a feature's public routes.
type Registrar interface {
	Register(r chi.Router)
}

// AuthRegistrar mounts routes with some behind authentication.
type AuthRegistrar interface {
	Register(r chi.Router, requireAuth func(http.Handler) http.Handler)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	JWTValidator   middleware.JWTValidator
	RequestTimeout time.Duration
	Health         map[string]HealthCheck

	Public    []Registrar
	Protected []AuthRegistrar
}

// NewRouter wires the middleware chain and mounts all handlers.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))

	r.Get("/healthz", healthz(d.Health))
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(d.RequestTimeout))
		r.Use(middleware.ContentTypeJSON)
		for _, h := range d.Public {
			h.Register(r)
		}
		requireAuth := middleware.RequireAuth(d.JWTValidator, d.Logger)
		for _, h := range d.Protected {
			h.Register(r, requireAuth)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthz(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		res := healthResponse{Status: "ok", Checks: map[string]string{}}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				res.Status = "degraded"
				res.Checks[name] = err.Error()
				continue
			}
			res.Checks[name] = "ok"
		}
		status := http.StatusOK
		if res.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, res)
	}
}
