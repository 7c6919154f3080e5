package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"givelink/internal/platform/metrics"
	"givelink/pkg/domainerrors"
	"givelink/pkg/platform/httputil"
)

// Middleware gates requests per client IP. Limiter errors fail open: a broken
// limiter backend must not take the service down with it.
type Middleware struct {
	limiter Limiter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewMiddleware(limiter Limiter, logger *slog.Logger, m *metrics.Metrics) *Middleware {
	return &Middleware{
		limiter: limiter,
		logger:  logger,
		metrics: m,
	}
}

// Limit wraps next with admission control keyed on the caller address and the
// request path, so /register and /login budgets stay independent.
func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r) + ":" + r.URL.Path

		allowed, err := m.limiter.Allow(r.Context(), key)
		if err != nil {
			m.logger.Error("rate limit check failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			m.metrics.RateLimitedTotal.Inc()
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeRateLimited, "too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
