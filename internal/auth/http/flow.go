package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/metrics"
	"github.com/aussiebroadwan/arcade/internal/auth/service"
	"github.com/aussiebroadwan/arcade/pkg/authsdk"
)

// maxCredentialBody caps how much of a token request body is read.
const maxCredentialBody = 1 << 20

// authFlow is the authenticate-then-issue sequence shared by both token
// endpoints.
type authFlow struct {
	name          string
	authenticator service.Authenticator
	success       service.SuccessHandler
	onSuccess     SuccessResponder
	onFailure     FailureResponder

	// dropPrincipalOnFailure also forgets who authenticated when the request
	// fails.
	dropPrincipalOnFailure bool
}

func (f *authFlow) run(w http.ResponseWriter, r *http.Request, start time.Time, creds service.Credentials) {
	ctx := r.Context()

	p, err := f.authenticator.Authenticate(ctx, creds)
	if err != nil {
		f.fail(w, r, start, err)
		return
	}
	AuthStateFromContext(ctx).SetPrincipal(p)

	tokens, err := f.success.OnSuccess(ctx, p)
	if err != nil {
		f.fail(w, r, start, err)
		return
	}

	metrics.RecordTokenIssued(string(tokens.Access.Class))
	if tokens.Refresh != nil {
		metrics.RecordTokenIssued(string(tokens.Refresh.Class))
	}

	f.onSuccess.Respond(w, r, tokens)

	outcome := metrics.OutcomeSuccess
	if tokens.Pending() {
		outcome = metrics.OutcomeSecondFactor
	}
	metrics.RecordAttempt(f.name, outcome, time.Since(start))
}

func (f *authFlow) fail(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	if f.dropPrincipalOnFailure {
		AuthStateFromContext(r.Context()).ClearPrincipal()
	}
	ae := f.onFailure.Respond(w, r, err)
	metrics.RecordAttempt(f.name, ae.Code, time.Since(start))
}

// rejectRateLimited answers throttled token requests in the same shape as
// every other authentication failure.
func rejectRateLimited(flow string) func(w http.ResponseWriter, r *http.Request, retryAfter int) {
	return func(w http.ResponseWriter, r *http.Request, _ int) {
		metrics.RecordRateLimited(flow)
		AuthStateFromContext(r.Context()).Fail(authsdk.ErrRateLimited)
		authsdk.ErrRateLimited.WriteError(w)
	}
}
