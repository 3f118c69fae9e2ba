package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
)

// SecondFactorAuthenticator completes a login that stopped at the second
// factor. The pending token is re-verified here, the handler only checks that
// one was sent. Each pending token allows MaxSecondFactorAttempts tries and
// is spent by its first success.
type SecondFactorAuthenticator struct {
	Store    store.Store
	Verifier jwtx.Verifier

	// Now is the TOTP clock. Nil means time.Now.
	Now func() time.Time

	challenges challengeLedger
}

func (a *SecondFactorAuthenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *SecondFactorAuthenticator) Authenticate(ctx context.Context, creds Credentials) (domain.Principal, error) {
	c, ok := creds.(SecondFactorCredentials)
	if !ok {
		return domain.Principal{}, fmt.Errorf("second factor authenticator: %w: %T", ErrUnsupportedCredentials, creds)
	}
	log := slogx.FromContext(ctx)

	claims, err := a.Verifier.Verify(c.PendingToken)
	if err != nil {
		log.Warn("pending token rejected", "err", err)
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrBadCredentials, ErrInvalidOrExpiredToken)
	}
	if err := claims.ValidateClass(jwtx.ClassTwoFactor); err != nil {
		log.Warn("pending token rejected", "err", err)
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrBadCredentials, ErrInvalidOrExpiredToken)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		log.Warn("pending token has a foreign subject", "sub", claims.Subject)
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrBadCredentials, ErrInvalidOrExpiredToken)
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		log.Warn("pending token has no jti", "sub", claims.Subject)
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrBadCredentials, ErrInvalidOrExpiredToken)
	}

	if err := a.challenges.begin(claims.ID, claims.ExpiresAt.Time, a.now()); err != nil {
		log.Warn("pending token refused", "user_id", id, "err", err)
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrBadCredentials, err)
	}

	u, err := a.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("pending token for deleted user", "user_id", id)
		return domain.Principal{}, ErrBadCredentials
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("second factor authenticator: load user: %w", err)
	}

	// MFA may have been turned off since the pending token was issued
	if !u.UsesSecondFactor() {
		log.Warn("second factor no longer enabled", "user_id", u.ID)
		return domain.Principal{}, ErrBadCredentials
	}
	if !ValidateTOTP(c.Code, *u.MFASecret, a.now()) {
		log.Warn("totp code rejected", "user_id", u.ID)
		return domain.Principal{}, ErrBadCredentials
	}
	if err := a.challenges.consume(claims.ID); err != nil {
		log.Warn("pending token replayed", "user_id", u.ID)
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrBadCredentials, err)
	}

	p := domain.PrincipalFromUser(u)
	p.Verified = true
	return p, nil
}
