// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package auth

import (
	"context"
	"crypto/md5" //nolint:gosec // avatar identity only, carries no security weight
	"encoding/hex"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// RedactedDigest is the fixed mask substituted for a user's password digest
// before the record leaves this package.
const RedactedDigest = "******"

// User is an identity record in the directory.
//
// PasswordDigest is always a second-stage digest (see CredentialHasher),
// never a value the client transmitted.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordDigest string    `json:"passwd"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"created_at"`
}

// Redacted returns a copy of the user with the password digest masked.
func (u *User) Redacted() *User {
	c := *u
	c.PasswordDigest = RedactedDigest
	return &c
}

// NewUserID allocates an opaque user id. ULIDs are Crockford base32 and so
// never contain the `-` delimiter the session token wire format reserves.
func NewUserID() string {
	return ulid.Make().String()
}

// AvatarURL derives the gravatar image URL for an email. Deterministic per
// email; recomputing at any time yields the same URL.
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(email)) //nolint:gosec // avatar identity only
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=mm&s=120", hex.EncodeToString(sum[:]))
}

// Directory is the user store this package consumes. The directory, not
// this package, is the final arbiter of email uniqueness: Create must
// return a *ConflictError on field "email" for an insert-time duplicate.
type Directory interface {
	// FindByID retrieves a user by opaque id. Returns ErrNotFound if absent.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail retrieves a user by exact email match.
	// Returns ErrNotFound if absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new user record.
	Create(ctx context.Context, user *User) error
}
