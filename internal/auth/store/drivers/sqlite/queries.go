package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// queries holds every statement the driver runs.
type queries struct {
	db  dbtx
	now func() time.Time
}

type userRow struct {
	ID           int64
	Username     string
	PasswordHash string
	Authorities  string
	MfaSecret    sql.NullString
	MfaEnabled   sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const userColumns = `id, username, password_hash, authorities, mfa_secret, mfa_enabled, created_at, updated_at`

func scanUser(row *sql.Row) (userRow, error) {
	var u userRow
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Authorities,
		&u.MfaSecret,
		&u.MfaEnabled,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *queries) GetUserByID(ctx context.Context, id int64) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

func (q *queries) GetUserByUsername(ctx context.Context, username string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByUsername, username))
}

type createUserParams struct {
	Username     string
	PasswordHash string
	Authorities  string
}

const createUser = `INSERT INTO users (username, password_hash, authorities, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`

func (q *queries) CreateUser(ctx context.Context, arg createUserParams) (int64, error) {
	now := q.now()
	res, err := q.db.ExecContext(ctx, createUser,
		arg.Username,
		arg.PasswordHash,
		arg.Authorities,
		now,
		now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const updateUserPasswordHash = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserPasswordHash(ctx context.Context, id int64, hash string) (int64, error) {
	return q.exec(ctx, updateUserPasswordHash, hash, q.now(), id)
}

const updateUserAuthorities = `UPDATE users SET authorities = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserAuthorities(ctx context.Context, id int64, authorities string) (int64, error) {
	return q.exec(ctx, updateUserAuthorities, authorities, q.now(), id)
}

const updateUserMFASecret = `UPDATE users SET mfa_secret = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateUserMFASecret(ctx context.Context, id int64, secret string) (int64, error) {
	return q.exec(ctx, updateUserMFASecret, secret, q.now(), id)
}

const enableUserMFA = `UPDATE users SET mfa_enabled = ?, updated_at = ? WHERE id = ? AND mfa_secret IS NOT NULL`

func (q *queries) EnableUserMFA(ctx context.Context, id int64, at time.Time) (int64, error) {
	return q.exec(ctx, enableUserMFA, at.UTC(), q.now(), id)
}

const disableUserMFA = `UPDATE users SET mfa_enabled = NULL, mfa_secret = NULL, updated_at = ? WHERE id = ?`

func (q *queries) DisableUserMFA(ctx context.Context, id int64) (int64, error) {
	return q.exec(ctx, disableUserMFA, q.now(), id)
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

// exec runs a write and returns the number of affected rows.
func (q *queries) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
