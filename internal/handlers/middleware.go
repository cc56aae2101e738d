package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"brainsmath/internal/models"
	"brainsmath/internal/security"
	"brainsmath/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// Middleware wraps handlers with cross-cutting request behavior
type Middleware struct {
	auth    *service.AuthService
	limiter *security.RateLimiter
}

// NewMiddleware creates the shared middleware set
func NewMiddleware(auth *service.AuthService, limiter *security.RateLimiter) *Middleware {
	return &Middleware{auth: auth, limiter: limiter}
}

// RequireAuth rejects requests without a valid Bearer access token and puts
// the resolved user on the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := m.auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit throttles requests per client IP, for credential endpoints
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}

// Logging logs each request with its duration. In debug mode the line also
// carries the client IP and user agent.
func Logging(next http.Handler, debug bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if debug {
			log.Printf("%s %s %s from %s %q", r.Method, r.URL.Path, time.Since(start),
				security.GetClientIP(r), r.UserAgent())
			return
		}
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// userFromContext retrieves the authenticated user placed by RequireAuth
func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
