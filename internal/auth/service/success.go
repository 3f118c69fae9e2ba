package service

import (
	"context"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
)

// SuccessHandler decides which tokens an authenticated principal receives.
type SuccessHandler interface {
	OnSuccess(ctx context.Context, p domain.Principal) (domain.IssuedTokens, error)
}

// PrimarySuccess follows a password login. Accounts with a second factor get
// a pending token, everyone else gets full credentials.
type PrimarySuccess struct {
	Issuer *TokenIssuer
}

func (h PrimarySuccess) OnSuccess(ctx context.Context, p domain.Principal) (domain.IssuedTokens, error) {
	if p.SecondFactor {
		slogx.FromContext(ctx).Debug("second factor required", "user_id", p.ID)
		return h.Issuer.IssueTwoFactor(p)
	}
	return h.Issuer.IssueFull(p)
}

// SecondFactorSuccess follows a completed second factor and always issues
// full credentials.
type SecondFactorSuccess struct {
	Issuer *TokenIssuer
}

func (h SecondFactorSuccess) OnSuccess(_ context.Context, p domain.Principal) (domain.IssuedTokens, error) {
	return h.Issuer.IssueFull(p)
}
