package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/aussiebroadwan/arcade/pkg/cryptox"
	"github.com/aussiebroadwan/arcade/pkg/slogx"
)

// Credentials is something a client presented to prove who it is.
type Credentials interface {
	credentials()
}

// PasswordCredentials is the body of a primary login.
type PasswordCredentials struct {
	Username string
	Password string
}

func (PasswordCredentials) credentials() {}

// SecondFactorCredentials pairs a pending token with a one-time code.
type SecondFactorCredentials struct {
	PendingToken string
	Code         string
}

func (SecondFactorCredentials) credentials() {}

// Authenticator verifies credentials and returns the principal they belong
// to. Rejections wrap ErrBadCredentials, anything else is an internal error.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (domain.Principal, error)
}

// PasswordAuthenticator checks a username and password against the
// credential store.
type PasswordAuthenticator struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, creds Credentials) (domain.Principal, error) {
	c, ok := creds.(PasswordCredentials)
	if !ok {
		return domain.Principal{}, fmt.Errorf("password authenticator: %w: %T", ErrUnsupportedCredentials, creds)
	}
	log := slogx.FromContext(ctx)

	u, err := a.Store.Users().GetUserByUsername(ctx, c.Username)
	if errors.Is(err, store.ErrNotFound) {
		a.Hasher.VerifyDummy(c.Password)
		log.Warn("login for unknown user")
		return domain.Principal{}, ErrBadCredentials
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("password authenticator: load user: %w", err)
	}

	switch err := a.Hasher.Verify(c.Password, u.PasswordHash); {
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		log.Warn("password mismatch", "user_id", u.ID)
		return domain.Principal{}, ErrBadCredentials
	case err != nil:
		return domain.Principal{}, fmt.Errorf("password authenticator: user %d: %w", u.ID, err)
	}

	return domain.PrincipalFromUser(u), nil
}
