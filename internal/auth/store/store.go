package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface of the credential store. Concrete
// drivers implement it and hand out sub-repositories so transactions can't be
// nested by accident.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is the transaction-scoped view handed to WithTx callbacks.
type Tx interface {
	Users() Users
}

type Users interface {
	// GetUserByID is used to load the subject of a pending token.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during password login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns its id. A taken username
	// yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id int64, newHash string) error

	// UpdateAuthorities replaces the user's role and scopes.
	UpdateAuthorities(ctx context.Context, id int64, authorities []string) error

	// SetMFASecret stores a TOTP secret without enabling it.
	SetMFASecret(ctx context.Context, id int64, secret string) error

	// EnableMFA marks MFA as enabled at the given time.
	EnableMFA(ctx context.Context, id int64, at time.Time) error

	// DisableMFA clears mfa_enabled and mfa_secret.
	DisableMFA(ctx context.Context, id int64) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
