// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

// Package postgres implements auth.Directory using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/aweblog/aweblog/internal/auth"
)

// querier is the subset of pgxpool.Pool the repository uses. pgxmock's
// PgxPoolIface satisfies it in tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements auth.Directory using PostgreSQL.
//
// The unique index on users.email makes this repository the final arbiter
// of email uniqueness: a duplicate insert surfaces as a ConflictError, not
// an infrastructure failure.
type UserRepository struct {
	pool querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool querier) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, name, password_digest, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordDigest,
		user.Image,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return &auth.ConflictError{Field: "email", Message: "already in use"}
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("email", user.Email).
			Wrap(err)
	}
	return nil
}

// FindByID retrieves a user by opaque id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_digest, image, created_at
		FROM users
		WHERE id = $1
	`, id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id).
			Wrap(err)
	}
	return user, nil
}

// FindByEmail retrieves a user by exact email match. Lookups are
// case-sensitive: the validator rejects uppercase input rather than
// normalizing it.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, name, password_digest, image, created_at
		FROM users
		WHERE email = $1
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_EMAIL_FAILED").
			With("operation", "get user by email").
			With("email", email).
			Wrap(err)
	}
	return user, nil
}

// List returns all users ordered by creation time, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*auth.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, password_digest, image, created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list users").
			Wrap(err)
	}
	defer rows.Close()

	var users []*auth.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, oops.Code("USER_LIST_FAILED").
				With("operation", "scan user row").
				Wrap(err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "iterate users").
			Wrap(err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		user      auth.User
		createdAt time.Time
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordDigest,
		&user.Image,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = createdAt
	return &user, nil
}
