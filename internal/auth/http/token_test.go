package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/metrics"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func newTestTokenHandler(a *fakeAuthenticator, s *fakeSuccess) *TokenHandler {
	return NewTokenHandler(a, s, FailureResponder{Now: fixedNow})
}

func TestTokenHandler_RejectsNonPost(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			auth := &fakeAuthenticator{}
			h := newTestTokenHandler(auth, &fakeSuccess{})

			rec, state := serveWithState(h, jsonRequest(t, method, "/token", authsdk.TokenRequest{Username: "alice", Password: "hunter22"}))

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, authsdk.ErrorCodeMethodNotSupported, decodeAuthError(t, rec).Code)
			require.Nil(t, auth.got, "authenticator must not be consulted")
			require.Equal(t, authsdk.ErrorCodeMethodNotSupported, state.Failure().Code)
		})
	}
}

func TestTokenHandler_MissingCredentials(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"malformed json", "{username:"},
		{"missing password", `{"username":"alice"}`},
		{"blank username", `{"username":"   ","password":"hunter22"}`},
		{"whitespace password", `{"username":"alice","password":" \t "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &fakeAuthenticator{}
			h := newTestTokenHandler(auth, &fakeSuccess{})

			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(tc.body))
			rec, _ := serveWithState(h, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, authsdk.ErrorCodeMissingCredentials, decodeAuthError(t, rec).Code)
			require.Nil(t, auth.got)
		})
	}
}

func TestTokenHandler_TrimsCredentials(t *testing.T) {
	auth := &fakeAuthenticator{principal: domain.Principal{ID: 1, Verified: true}}
	h := newTestTokenHandler(auth, &fakeSuccess{tokens: fullTokens()})

	rec, _ := serveWithState(h, jsonRequest(t, http.MethodPost, "/token", authsdk.TokenRequest{Username: "  alice ", Password: " hunter22\n"}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, service.PasswordCredentials{Username: "alice", Password: "hunter22"}, auth.got)
}

func TestTokenHandler_BadCredentials(t *testing.T) {
	auth := &fakeAuthenticator{err: service.ErrBadCredentials}
	success := &fakeSuccess{}
	h := newTestTokenHandler(auth, success)

	before := testutil.ToFloat64(metrics.AuthAttempts.WithLabelValues(metrics.FlowPassword, metrics.OutcomeBadCredentials))

	rec, state := serveWithState(h, jsonRequest(t, http.MethodPost, "/token", authsdk.TokenRequest{Username: "alice", Password: "wrong"}))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, `Bearer realm="arcade"`, rec.Header().Get("WWW-Authenticate"))

	body := decodeAuthError(t, rec)
	require.Equal(t, authsdk.ErrorCodeBadCredentials, body.Code)
	require.Equal(t, testClock, body.Timestamp)
	require.Zero(t, success.calls)
	require.Equal(t, authsdk.ErrorCodeBadCredentials, state.Failure().Code)

	after := testutil.ToFloat64(metrics.AuthAttempts.WithLabelValues(metrics.FlowPassword, metrics.OutcomeBadCredentials))
	require.Equal(t, before+1, after)
}

func TestTokenHandler_FullCredentials(t *testing.T) {
	auth := &fakeAuthenticator{principal: domain.Principal{ID: 7, Verified: true}}
	h := newTestTokenHandler(auth, &fakeSuccess{tokens: fullTokens("games:read", "games:write")})

	rec, state := serveWithState(h, jsonRequest(t, http.MethodPost, "/token", authsdk.TokenRequest{Username: "alice", Password: "hunter22"}))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, httpx.ContentTypeJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	p := decodePayload(t, rec)
	require.Equal(t, authsdk.TokenTypeBearer, p.TokenType)
	require.False(t, p.RequiresSecondFactor())
	require.Equal(t, "access.jwt", p.AccessToken)
	require.Equal(t, "refresh.jwt", p.RefreshToken)
	require.Equal(t, "games:read;games:write", p.Scope)
	require.Equal(t, testClock, p.IssuedAt)
	require.Equal(t, testClock.Add(jwtx.DefaultAccessTokenTTL), p.ExpiresAt)

	require.Nil(t, state.Failure())
	got, ok := state.Principal()
	require.True(t, ok)
	require.Equal(t, int64(7), got.ID)
}

func TestTokenHandler_PendingSecondFactor(t *testing.T) {
	auth := &fakeAuthenticator{principal: domain.Principal{ID: 7, SecondFactor: true}}
	h := newTestTokenHandler(auth, &fakeSuccess{tokens: pendingTokens()})

	rec, _ := serveWithState(h, jsonRequest(t, http.MethodPost, "/token", authsdk.TokenRequest{Username: "alice", Password: "hunter22"}))

	require.Equal(t, http.StatusOK, rec.Code)
	p := decodePayload(t, rec)
	require.True(t, p.RequiresSecondFactor())
	require.Equal(t, "pending.jwt", p.AccessToken)
	require.Empty(t, p.RefreshToken)
	require.Empty(t, p.Scope)
}

func TestTokenHandler_RoleMisconfigurationIsServerError(t *testing.T) {
	for _, err := range []error{service.ErrNoRoleAssigned, service.ErrAmbiguousRole, errors.New("disk on fire")} {
		t.Run(err.Error(), func(t *testing.T) {
			auth := &fakeAuthenticator{principal: domain.Principal{ID: 7, Verified: true}}
			h := newTestTokenHandler(auth, &fakeSuccess{err: err})

			rec, state := serveWithState(h, jsonRequest(t, http.MethodPost, "/token", authsdk.TokenRequest{Username: "alice", Password: "hunter22"}))

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			require.Empty(t, rec.Header().Get("WWW-Authenticate"))
			require.NotContains(t, rec.Body.String(), err.Error())
			require.Equal(t, authsdk.ErrorCodeServerError, decodeAuthError(t, rec).Code)

			// The password was right, so the identity is still recorded
			_, ok := state.Principal()
			require.True(t, ok)
		})
	}
}
