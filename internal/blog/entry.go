// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

// Package blog provides blog entry creation and listing.
package blog

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("not found")

// Entry is a blog post. Author fields are denormalized at creation time so
// listing never joins against the user directory.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserImage string    `json:"user_image"`
	Name      string    `json:"name"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEntryID allocates an opaque entry id.
func NewEntryID() string {
	return ulid.Make().String()
}

// Repository manages entry persistence.
type Repository interface {
	// Create stores a new entry.
	Create(ctx context.Context, entry *Entry) error

	// FindByID retrieves an entry by id. Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id string) (*Entry, error)

	// List returns entries ordered by creation time descending,
	// applying offset and limit.
	List(ctx context.Context, offset, limit int) ([]*Entry, error)

	// Count returns the total number of entries.
	Count(ctx context.Context) (int, error)
}
