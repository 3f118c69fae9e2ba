package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/arcade/internal/auth/domain"
	"github.com/aussiebroadwan/arcade/internal/auth/store"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	id, err := r.q.CreateUser(ctx, createUserParams{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Authorities:  domain.JoinAuthorities(u.Authorities),
	})
	if isUniqueViolation(err) {
		return 0, store.ErrAlreadyExists
	}
	return id, err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, newHash string) error {
	return mustAffect(r.q.UpdateUserPasswordHash(ctx, id, newHash))
}

func (r *usersRepo) UpdateAuthorities(ctx context.Context, id int64, authorities []string) error {
	return mustAffect(r.q.UpdateUserAuthorities(ctx, id, domain.JoinAuthorities(authorities)))
}

func (r *usersRepo) SetMFASecret(ctx context.Context, id int64, secret string) error {
	return mustAffect(r.q.UpdateUserMFASecret(ctx, id, secret))
}

func (r *usersRepo) EnableMFA(ctx context.Context, id int64, at time.Time) error {
	return mustAffect(r.q.EnableUserMFA(ctx, id, at))
}

func (r *usersRepo) DisableMFA(ctx context.Context, id int64) error {
	return mustAffect(r.q.DisableUserMFA(ctx, id))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func mapUser(row userRow) domain.User {
	return domain.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Authorities:  domain.SplitAuthorities(row.Authorities),
		MFAEnabled:   mapNullTimePtr(row.MfaEnabled),
		MFASecret:    mapNullStringPtr(row.MfaSecret),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// mustAffect turns an update that touched no rows into ErrNotFound.
func mustAffect(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
