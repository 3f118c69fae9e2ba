package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
)

// AuthState is the authentication outcome of a single request. Failures are
// recorded so they are logged exactly once, a success wipes them.
type AuthState struct {
	mu        sync.Mutex
	failure   *authsdk.AuthError
	principal *domain.Principal
}

// Fail records the failure rendered to the client.
func (s *AuthState) Fail(ae *authsdk.AuthError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = ae
}

// SetPrincipal records who the request authenticated as.
func (s *AuthState) SetPrincipal(p domain.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = &p
}

// ClearFailure forgets any recorded failure. Calling it on a clean state is
// fine.
func (s *AuthState) ClearFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = nil
}

// ClearPrincipal forgets the authenticated identity.
func (s *AuthState) ClearPrincipal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
}

// Failure returns the recorded failure, if any.
func (s *AuthState) Failure() *authsdk.AuthError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Principal returns the recorded identity, if any.
func (s *AuthState) Principal() (domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.principal == nil {
		return domain.Principal{}, false
	}
	return *s.principal, true
}

type authStateKey struct{}

// AuthStateFromContext returns the request's AuthState. Without the
// middleware a detached state is returned so callers never nil check.
func AuthStateFromContext(ctx context.Context) *AuthState {
	if s, ok := ctx.Value(authStateKey{}).(*AuthState); ok {
		return s
	}
	return &AuthState{}
}

// AuthStateMiddleware gives each request a fresh AuthState and copies its
// final contents onto the access log line.
func AuthStateMiddleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := &AuthState{}
			ctx := context.WithValue(r.Context(), authStateKey{}, state)

			next.ServeHTTP(w, r.WithContext(ctx))

			if ae := state.Failure(); ae != nil {
				slogx.Annotate(ctx, slog.String("auth_error", ae.Code))
			}
			if p, ok := state.Principal(); ok {
				slogx.Annotate(ctx, slog.Int64("user_id", p.ID))
			}
		})
	}
}
