package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	"github.com/aussiebroadwan/arcade/pkg/cryptox"
)

// MinPasswordLength is the shortest password accepted for new accounts.
const MinPasswordLength = 8

var (
	ErrInvalidUsername = errors.New("username must not be empty or contain whitespace")
	ErrWeakPassword    = errors.New("password is too short")
)

// UserService provisions accounts in the credential store.
type UserService struct {
	Store  store.Store
	Hasher *cryptox.PasswordHasher
}

// CreateUser hashes the password and stores a new account. The authorities
// must hold exactly one role so the account can actually log in.
func (s *UserService) CreateUser(ctx context.Context, username, password string, authorities []string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.ContainsAny(username, " \t\r\n") {
		return domain.User{}, ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrWeakPassword
	}
	if _, _, err := PartitionAuthorities(authorities); err != nil {
		return domain.User{}, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := domain.User{
		Username:     username,
		PasswordHash: hash,
		Authorities:  authorities,
	}
	id, err := s.Store.Users().CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id
	return u, nil
}

// SetAuthorities replaces a user's role and scopes.
func (s *UserService) SetAuthorities(ctx context.Context, username string, authorities []string) error {
	if _, _, err := PartitionAuthorities(authorities); err != nil {
		return err
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		return tx.Users().UpdateAuthorities(ctx, u.ID, authorities)
	})
}
