package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testClock }

type fakeAuthenticator struct {
	principal domain.Principal
	err       error
	got       service.Credentials
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, creds service.Credentials) (domain.Principal, error) {
	f.got = creds
	return f.principal, f.err
}

type fakeSuccess struct {
	tokens domain.IssuedTokens
	err    error
	calls  int
}

func (f *fakeSuccess) OnSuccess(context.Context, domain.Principal) (domain.IssuedTokens, error) {
	f.calls++
	return f.tokens, f.err
}

func fullTokens(scopes ...string) domain.IssuedTokens {
	return domain.IssuedTokens{
		Access: domain.SecurityToken{
			Class:     jwtx.ClassAccess,
			Value:     "access.jwt",
			IssuedAt:  testClock,
			ExpiresAt: testClock.Add(jwtx.DefaultAccessTokenTTL),
		},
		Refresh: &domain.SecurityToken{
			Class:     jwtx.ClassRefresh,
			Value:     "refresh.jwt",
			IssuedAt:  testClock,
			ExpiresAt: testClock.Add(jwtx.DefaultRefreshTokenTTL),
		},
		Scopes: scopes,
	}
}

func pendingTokens() domain.IssuedTokens {
	return domain.IssuedTokens{
		Access: domain.SecurityToken{
			Class:     jwtx.ClassTwoFactor,
			Value:     "pending.jwt",
			IssuedAt:  testClock,
			ExpiresAt: testClock.Add(jwtx.DefaultTwoFactorTokenTTL),
		},
	}
}

// serveWithState runs h behind AuthStateMiddleware and returns the state the
// handler saw.
func serveWithState(h http.Handler, req *http.Request) (*httptest.ResponseRecorder, *AuthState) {
	var state *AuthState
	capture := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state = AuthStateFromContext(r.Context())
			next.ServeHTTP(w, r)
		})
	}

	rec := httptest.NewRecorder()
	httpx.Chain(h, AuthStateMiddleware(), capture).ServeHTTP(rec, req)
	return rec, state
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) authsdk.AuthError {
	t.Helper()
	var body authsdk.AuthError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodePayload(t *testing.T, rec *httptest.ResponseRecorder) authsdk.TokenPayload {
	t.Helper()
	var body authsdk.TokenPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
