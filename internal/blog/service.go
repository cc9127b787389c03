// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package blog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/aweblog/aweblog/internal/auth"
)

// Listing is one page of entries together with its pagination window.
type Listing struct {
	Page    Page     `json:"page"`
	Entries []*Entry `json:"blogs"`
}

// Service coordinates blog entry operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the blog service.
func NewService(repo Repository, logger *slog.Logger) (*Service, error) {
	if repo == nil {
		return nil, oops.Code("BLOG_REPO_REQUIRED").Errorf("entry repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}, nil
}

// Create stores a new entry authored by the given user. The author is the
// identity resolved once at the request boundary; this service never
// re-resolves it. Name, summary, and content are required after trimming,
// checked in that order.
func (s *Service) Create(ctx context.Context, author *auth.User, name, summary, content string) (*Entry, error) {
	if author == nil || author.ID == "" {
		return nil, oops.Code("BLOG_AUTHOR_REQUIRED").Errorf("entry author is required")
	}

	name = strings.TrimSpace(name)
	summary = strings.TrimSpace(summary)
	content = strings.TrimSpace(content)
	switch {
	case name == "":
		return nil, &auth.ValidationError{Field: "name", Message: "name cannot be empty"}
	case summary == "":
		return nil, &auth.ValidationError{Field: "summary", Message: "summary cannot be empty"}
	case content == "":
		return nil, &auth.ValidationError{Field: "content", Message: "content cannot be empty"}
	}

	entry := &Entry{
		ID:        NewEntryID(),
		UserID:    author.ID,
		UserName:  author.Name,
		UserImage: author.Image,
		Name:      name,
		Summary:   summary,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, oops.Code("BLOG_CREATE_FAILED").
			With("operation", "create entry").
			With("user_id", author.ID).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "blog entry created", "entry_id", entry.ID, "user_id", author.ID)
	return entry, nil
}

// Get retrieves a single entry.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, oops.Code("BLOG_GET_FAILED").
			With("operation", "find entry by id").
			With("id", id).
			Wrap(err)
	}
	return entry, nil
}

// List returns the requested page of entries, newest first. An empty table
// yields an empty listing, not an error.
func (s *Service) List(ctx context.Context, pageIndex int) (*Listing, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, oops.Code("BLOG_LIST_FAILED").
			With("operation", "count entries").
			Wrap(err)
	}

	page := NewPage(count, pageIndex)
	if count == 0 {
		return &Listing{Page: page, Entries: []*Entry{}}, nil
	}

	entries, err := s.repo.List(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, oops.Code("BLOG_LIST_FAILED").
			With("operation", "list entries").
			With("page_index", page.PageIndex).
			Wrap(err)
	}
	return &Listing{Page: page, Entries: entries}, nil
}
