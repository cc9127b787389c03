// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package auth

import (
	"crypto/sha1" //nolint:gosec // the stored-digest wire format is SHA1 by contract
	"crypto/subtle"
	"encoding/hex"
)

// CredentialHasher computes and verifies second-stage password digests.
//
// The client digest (a 40-hex SHA1 of the real password, computed outside
// this process) is treated as the effective secret. The server applies a
// second stage binding it to the user id, so two users with the same
// password never share a stored digest.
type CredentialHasher struct{}

// Stage2Digest computes hex(SHA1(userID + ":" + clientDigest)), the only
// password-derived value ever persisted.
func (CredentialHasher) Stage2Digest(userID, clientDigest string) string {
	sum := sha1.Sum([]byte(userID + ":" + clientDigest)) //nolint:gosec // see type comment
	return hex.EncodeToString(sum[:])
}

// Verify reports whether clientDigest was the client digest in effect when
// the user's stored digest was last set. Constant-time comparison.
func (h CredentialHasher) Verify(user *User, clientDigest string) bool {
	computed := h.Stage2Digest(user.ID, clientDigest)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(user.PasswordDigest)) == 1
}
