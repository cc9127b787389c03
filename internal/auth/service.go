// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/aweblog/aweblog/internal/observability"
)

// AuthenticationService orchestrates registration and sign-in. It is the
// only component in this package that performs I/O, through the Directory.
type AuthenticationService struct {
	dir       Directory
	hasher    CredentialHasher
	validator *RegistrationValidator
	codec     *SessionTokenCodec
	logger    *slog.Logger
}

// NewAuthenticationService creates the service.
func NewAuthenticationService(dir Directory, codec *SessionTokenCodec, logger *slog.Logger) (*AuthenticationService, error) {
	if dir == nil {
		return nil, oops.Code("AUTH_DIRECTORY_REQUIRED").Errorf("user directory is required")
	}
	if codec == nil {
		return nil, oops.Code("AUTH_CODEC_REQUIRED").Errorf("session token codec is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthenticationService{
		dir:       dir,
		validator: NewRegistrationValidator(),
		codec:     codec,
		logger:    logger,
	}, nil
}

// Register creates a user and mints a session token for it. The returned
// user is redacted; the caller attaches the token as a cookie.
//
// The email pre-check only short-circuits the common case. Two concurrent
// registrations can both pass it; the directory's insert-time uniqueness
// constraint is the authoritative arbiter, and its ConflictError is
// propagated as-is.
func (s *AuthenticationService) Register(ctx context.Context, reg Registration) (*User, string, error) {
	if err := s.validator.Validate(reg); err != nil {
		return nil, "", err
	}

	_, err := s.dir.FindByEmail(ctx, reg.Email)
	switch {
	case err == nil:
		return nil, "", &ConflictError{Field: "email", Message: "already in use"}
	case errors.Is(err, ErrNotFound):
		// proceed
	default:
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "find user by email").
			Wrap(err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:        NewUserID(),
		Email:     reg.Email,
		Name:      strings.TrimSpace(reg.Name),
		Image:     AvatarURL(reg.Email),
		CreatedAt: now,
	}
	user.PasswordDigest = s.hasher.Stage2Digest(user.ID, reg.Passwd)

	if err := s.dir.Create(ctx, user); err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return nil, "", conflict
		}
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			With("email", reg.Email).
			Wrap(err)
	}

	token, err := s.codec.Encode(user, DefaultSessionTTL)
	if err != nil {
		return nil, "", oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "mint session token").
			Wrap(err)
	}

	observability.RecordRegistration()
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return user.Redacted(), token, nil
}

// Authenticate verifies an email/client-digest pair and mints a session
// token. Failures are field-scoped ValidationErrors.
func (s *AuthenticationService) Authenticate(ctx context.Context, email, passwd string) (*User, string, error) {
	if email == "" {
		return nil, "", &ValidationError{Field: "email", Message: "email cannot be empty"}
	}
	if passwd == "" {
		return nil, "", &ValidationError{Field: "passwd", Message: "password cannot be empty"}
	}

	user, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			observability.RecordLogin("failure")
			return nil, "", &ValidationError{Field: "email", Message: "email does not exist"}
		}
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "find user by email").
			Wrap(err)
	}

	if !s.hasher.Verify(user, passwd) {
		observability.RecordLogin("failure")
		return nil, "", &ValidationError{Field: "passwd", Message: "invalid password"}
	}

	token, err := s.codec.Encode(user, DefaultSessionTTL)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "mint session token").
			Wrap(err)
	}

	observability.RecordLogin("success")
	s.logger.InfoContext(ctx, "user authenticated", "user_id", user.ID)
	return user.Redacted(), token, nil
}
