package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Claims is the subset of the access token the middleware cares about. The
// package keeps its own type so it stays decoupled from the token issuer.
type Claims struct {
	OrgID string
	Email string
}

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (Claims, error)
}

type orgIDKey struct{}
type orgEmailKey struct{}

var (
	ContextKeyOrgID    = orgIDKey{}
	ContextKeyOrgEmail = orgEmailKey{}
)

// GetOrgID retrieves the authenticated organization ID from the context.
func GetOrgID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyOrgID).(string); ok {
		return id
	}
	return ""
}

// GetOrgEmail retrieves the authenticated organization email from the context.
func GetOrgEmail(ctx context.Context) string {
	if email, ok := ctx.Value(ContextKeyOrgEmail).(string); ok {
		return email
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token and stores the
// organization identity in the request context for handlers downstream.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(r.Context(), "unauthorized, missing bearer token",
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized, invalid token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyOrgID, claims.OrgID)
			ctx = context.WithValue(ctx, ContextKeyOrgEmail, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
