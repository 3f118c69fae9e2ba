package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/metrics"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
)

// TokenHandler serves POST /token, exchanging a username and password for
// either full credentials or a pending second factor token.
type TokenHandler struct {
	flow authFlow
}

// NewTokenHandler wires the password flow.
func NewTokenHandler(a service.Authenticator, s service.SuccessHandler, onFailure FailureResponder) *TokenHandler {
	return &TokenHandler{flow: authFlow{
		name:          metrics.FlowPassword,
		authenticator: a,
		success:       s,
		onFailure:     onFailure,
	}}
}

// ServeHTTP godoc
//
//	@Summary		Password Login
//	@Description	Authenticates a username and password. Accounts with a second factor receive a short-lived
//	@Description	two_factor_pending token to present at /token/2fa instead of full credentials.
//	@Tags			Token
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.TokenRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.TokenPayload	"token_type, access_token, issued_at, expires_at, refresh_token, scope"
//	@Failure		401		{object}	authsdk.AuthError		"error, error_description, timestamp"
//	@Failure		429		{object}	authsdk.AuthError		"error, error_description, timestamp"
//	@Failure		500		{object}	authsdk.AuthError		"error, error_description, timestamp"
//	@Header			200		{string}	Cache-Control			"no-store"
//	@Router			/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		h.flow.fail(w, r, start, service.ErrMethodNotSupported)
		return
	}

	var req authsdk.TokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCredentialBody)).Decode(&req); err != nil {
		h.flow.fail(w, r, start, service.ErrMissingCredentials)
		return
	}

	creds := service.PasswordCredentials{
		Username: strings.TrimSpace(req.Username),
		Password: strings.TrimSpace(req.Password),
	}
	if creds.Username == "" || creds.Password == "" {
		h.flow.fail(w, r, start, service.ErrMissingCredentials)
		return
	}

	h.flow.run(w, r, start, creds)
}
