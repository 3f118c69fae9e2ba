package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
)

// SuccessResponder writes issued tokens as a TokenPayload.
type SuccessResponder struct{}

func (SuccessResponder) Respond(w http.ResponseWriter, r *http.Request, tokens domain.IssuedTokens) {
	AuthStateFromContext(r.Context()).ClearFailure()
	httpx.WriteJSON(w, http.StatusOK, tokenPayload(tokens))
}

func tokenPayload(t domain.IssuedTokens) authsdk.TokenPayload {
	p := authsdk.TokenPayload{
		TokenType:   authsdk.TokenTypeBearer,
		AccessToken: t.Access.Value,
		IssuedAt:    t.Access.IssuedAt.UTC(),
		ExpiresAt:   t.Access.ExpiresAt.UTC(),
		Scope:       strings.Join(t.Scopes, authsdk.ScopeSeparator),
	}
	if t.Pending() {
		p.TokenType = authsdk.TokenTypeTwoFactor
	}
	if t.Refresh != nil {
		p.RefreshToken = t.Refresh.Value
	}
	return p
}

// FailureResponder turns an authentication error into a categorised 401, or
// a 500 when the fault is ours. Internal error text never reaches the client.
type FailureResponder struct {
	// Now stamps the error body. Nil means time.Now.
	Now func() time.Time
}

func (f FailureResponder) Respond(w http.ResponseWriter, r *http.Request, err error) *authsdk.AuthError {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var ae *authsdk.AuthError
	switch {
	case errors.Is(err, service.ErrMethodNotSupported):
		ae = authsdk.ErrMethodNotSupported
	case errors.Is(err, service.ErrMissingCredentials):
		ae = authsdk.ErrMissingCredentials
	case errors.Is(err, service.ErrBadCredentials):
		ae = authsdk.ErrBadCredentials
	case errors.Is(err, service.ErrNoRoleAssigned), errors.Is(err, service.ErrAmbiguousRole):
		log.Error("account misconfigured, refusing to issue tokens", "err", err)
		ae = authsdk.ErrServerError
	default:
		log.Error("authentication failed unexpectedly", "err", err)
		ae = authsdk.ErrServerError
	}

	AuthStateFromContext(ctx).Fail(ae)

	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	ae.WriteErrorAt(w, now)
	return ae
}
