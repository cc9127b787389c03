// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package auth

import (
	"context"
	"crypto/sha1" //nolint:gosec // token signature wire format is SHA1 by contract
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/aweblog/aweblog/internal/observability"
)

// DefaultSessionTTL is the lifetime of a minted session token. The cookie
// max-age must match it.
const DefaultSessionTTL = 86400 * time.Second

// Decode outcome labels for the token decode metric.
const (
	decodeMalformed   = "malformed"
	decodeExpired     = "expired"
	decodeUnknownUser = "unknown_user"
	decodeMismatch    = "signature_mismatch"
	decodeOK          = "ok"
)

// SessionTokenCodec mints and verifies session tokens.
//
// Wire form: "{user_id}-{expiry}-{signature}" where expiry is epoch seconds
// and signature is hex(SHA1(id + "-" + password_digest + "-" + expiry +
// "-" + secret)). The signature binds the digest at minting time, so a
// password change invalidates every outstanding token for that user.
//
// The user id must not contain `-`; NewUserID guarantees that.
type SessionTokenCodec struct {
	secret string
	dir    Directory
	now    func() time.Time
	logger *slog.Logger
}

// NewSessionTokenCodec creates a codec bound to the process-wide secret.
// The secret is immutable after construction.
func NewSessionTokenCodec(secret string, dir Directory, logger *slog.Logger) (*SessionTokenCodec, error) {
	if secret == "" {
		return nil, oops.Code("AUTH_SECRET_REQUIRED").Errorf("session secret is required")
	}
	if dir == nil {
		return nil, oops.Code("AUTH_DIRECTORY_REQUIRED").Errorf("user directory is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionTokenCodec{
		secret: secret,
		dir:    dir,
		now:    time.Now,
		logger: logger,
	}, nil
}

// WithClock replaces the codec's time source. Tests only.
func (c *SessionTokenCodec) WithClock(now func() time.Time) *SessionTokenCodec {
	c.now = now
	return c
}

// Encode mints a token for the user expiring ttl from now.
func (c *SessionTokenCodec) Encode(user *User, ttl time.Duration) (string, error) {
	if strings.Contains(user.ID, "-") {
		return "", oops.Code("AUTH_BAD_USER_ID").
			With("user_id", user.ID).
			Errorf("user id must not contain the token delimiter")
	}
	expiry := c.now().Unix() + int64(ttl/time.Second)
	sig := c.sign(user.ID, user.PasswordDigest, expiry)
	return user.ID + "-" + strconv.FormatInt(expiry, 10) + "-" + sig, nil
}

// Decode verifies a token and returns the user it identifies, with the
// password digest redacted. Malformed, expired, and tampered tokens all
// uniformly yield (nil, nil): absence of a valid token is a fact about
// identity, not an error. A non-nil error means the directory itself
// failed. Exactly one directory read is performed.
func (c *SessionTokenCodec) Decode(ctx context.Context, token string) (*User, error) {
	parts := strings.Split(token, "-")
	if len(parts) != 3 {
		observability.RecordTokenDecode(decodeMalformed)
		return nil, nil
	}
	userID, expiryStr, presented := parts[0], parts[1], parts[2]

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		observability.RecordTokenDecode(decodeMalformed)
		return nil, nil
	}

	// Strict less-than: a token expiring exactly now is still valid.
	if expiry < c.now().Unix() {
		observability.RecordTokenDecode(decodeExpired)
		return nil, nil
	}

	user, err := c.dir.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			observability.RecordTokenDecode(decodeUnknownUser)
			return nil, nil
		}
		return nil, oops.Code("AUTH_TOKEN_LOOKUP_FAILED").
			With("operation", "find user by id").
			Wrap(err)
	}

	// Recompute against the user's *current* digest. A mismatch is a
	// stronger anomaly than expiry: tampering, or a token minted against
	// a password that has since changed.
	expected := c.sign(user.ID, user.PasswordDigest, expiry)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) != 1 {
		observability.RecordSignatureMismatch()
		observability.RecordTokenDecode(decodeMismatch)
		c.logger.WarnContext(ctx, "session token signature mismatch",
			"user_id", user.ID,
			"expiry", expiry,
		)
		return nil, nil
	}

	observability.RecordTokenDecode(decodeOK)
	return user.Redacted(), nil
}

func (c *SessionTokenCodec) sign(userID, passwordDigest string, expiry int64) string {
	payload := userID + "-" + passwordDigest + "-" + strconv.FormatInt(expiry, 10) + "-" + c.secret
	sum := sha1.Sum([]byte(payload)) //nolint:gosec // see type comment
	return hex.EncodeToString(sum[:])
}
