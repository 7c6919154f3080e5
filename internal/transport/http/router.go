// Package httptransport is the thin HTTP layer. Handlers decode, delegate to
// domain services, and encode; business rules live behind the service
// interfaces.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"givelink/internal/org"
	"givelink/internal/platform/metrics"
	"givelink/internal/platform/middleware"
	"givelink/internal/ratelimit"
	redirectlog "givelink/internal/redirect/log"
)

// Registrar handles organization sign-up.
type Registrar interface {
	Register(ctx context.Context, req org.RegisterRequest) (org.RegisterResult, error)
}

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Resolver maps a short code to its target URL.
type Resolver interface {
	Resolve(ctx context.Context, code string) (string, error)
}

// EventLister reads back the redirect history of one organization.
type EventLister interface {
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]redirectlog.Event, error)
}

type Handler struct {
	registrar Registrar
	auth      Authenticator
	resolver  Resolver
	events    EventLister
	limiter   *ratelimit.Middleware
	validator middleware.TokenValidator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewHandler(
	registrar Registrar,
	auth Authenticator,
	resolver Resolver,
	events EventLister,
	limiter *ratelimit.Middleware,
	validator middleware.TokenValidator,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		registrar: registrar,
		auth:      auth,
		resolver:  resolver,
		events:    events,
		limiter:   limiter,
		validator: validator,
		logger:    logger,
		metrics:   m,
	}
}

// NewRouter wires all public endpoints. The short-code route is registered
// last so fixed paths like /healthz always win the match.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.limiter.Limit)
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Get("/api/stats", h.handleStats)
	})

	r.Get("/{short_code}", h.handleRedirect)

	return r
}
