package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/metrics"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
)

// TwoFactorHandler serves POST /token/2fa. The pending token from /token is
// sent as a bearer token alongside the one-time code.
type TwoFactorHandler struct {
	flow authFlow
}

// NewTwoFactorHandler wires the second factor flow. Failures also drop the
// request's authenticated identity.
func NewTwoFactorHandler(a service.Authenticator, s service.SuccessHandler, onFailure FailureResponder) *TwoFactorHandler {
	return &TwoFactorHandler{flow: authFlow{
		name:                   metrics.FlowSecondFactor,
		authenticator:          a,
		success:                s,
		onFailure:              onFailure,
		dropPrincipalOnFailure: true,
	}}
}

// ServeHTTP godoc
//
//	@Summary		Complete Two-Factor Login
//	@Description	Exchanges a two_factor_pending token and a TOTP code for full credentials.
//	@Tags			Token
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.TwoFactorRequest	true	"One-time code"
//	@Success		200		{object}	authsdk.TokenPayload		"token_type, access_token, issued_at, expires_at, refresh_token, scope"
//	@Failure		401		{object}	authsdk.AuthError			"error, error_description, timestamp"
//	@Failure		429		{object}	authsdk.AuthError			"error, error_description, timestamp"
//	@Failure		500		{object}	authsdk.AuthError			"error, error_description, timestamp"
//	@Header			200		{string}	Cache-Control				"no-store"
//	@Router			/token/2fa [post].
func (h *TwoFactorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		h.flow.fail(w, r, start, service.ErrMethodNotSupported)
		return
	}

	pending := httpx.BearerToken(r.Header.Get("Authorization"))

	var req authsdk.TwoFactorRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCredentialBody)).Decode(&req); err != nil {
		h.flow.fail(w, r, start, service.ErrMissingCredentials)
		return
	}

	creds := service.SecondFactorCredentials{
		PendingToken: pending,
		Code:         strings.TrimSpace(req.Code),
	}
	if creds.PendingToken == "" || creds.Code == "" {
		h.flow.fail(w, r, start, service.ErrMissingCredentials)
		return
	}

	h.flow.run(w, r, start, creds)
}
