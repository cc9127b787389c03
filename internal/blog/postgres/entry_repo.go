// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

// Package postgres implements blog.Repository using PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/aweblog/aweblog/internal/blog"
)

// querier is the subset of pgxpool.Pool the repository uses. pgxmock's
// PgxPoolIface satisfies it in tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EntryRepository implements blog.Repository using PostgreSQL.
type EntryRepository struct {
	pool querier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool querier) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create stores a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *blog.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blogs (id, user_id, user_name, user_image, name, summary, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		entry.ID,
		entry.UserID,
		entry.UserName,
		entry.UserImage,
		entry.Name,
		entry.Summary,
		entry.Content,
		entry.CreatedAt,
	)
	if err != nil {
		return oops.Code("ENTRY_CREATE_FAILED").
			With("operation", "insert entry").
			With("id", entry.ID).
			Wrap(err)
	}
	return nil
}

// FindByID retrieves an entry by id.
func (r *EntryRepository) FindByID(ctx context.Context, id string) (*blog.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, user_name, user_image, name, summary, content, created_at
		FROM blogs
		WHERE id = $1
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ENTRY_NOT_FOUND").
			With("id", id).
			Wrap(blog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ENTRY_GET_FAILED").
			With("operation", "get entry by id").
			With("id", id).
			Wrap(err)
	}
	return entry, nil
}

// List returns entries ordered by creation time descending.
func (r *EntryRepository) List(ctx context.Context, offset, limit int) ([]*blog.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, user_name, user_image, name, summary, content, created_at
		FROM blogs
		ORDER BY created_at DESC, id DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, oops.Code("ENTRY_LIST_FAILED").
			With("operation", "list entries").
			Wrap(err)
	}
	defer rows.Close()

	var entries []*blog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, oops.Code("ENTRY_LIST_FAILED").
				With("operation", "scan entry row").
				Wrap(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ENTRY_LIST_FAILED").
			With("operation", "iterate entries").
			Wrap(err)
	}
	return entries, nil
}

// Count returns the total number of entries.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(id) FROM blogs`).Scan(&count)
	if err != nil {
		return 0, oops.Code("ENTRY_COUNT_FAILED").
			With("operation", "count entries").
			Wrap(err)
	}
	return count, nil
}

func scanEntry(row pgx.Row) (*blog.Entry, error) {
	var entry blog.Entry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.UserName,
		&entry.UserImage,
		&entry.Name,
		&entry.Summary,
		&entry.Content,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
