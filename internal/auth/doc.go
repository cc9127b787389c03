// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

// Package auth implements registration, sign-in, and the stateless
// session-token credential for aweblog.
//
// # Credential model
//
// Clients never transmit plaintext passwords. The browser tier sends a
// 40-hex SHA1 digest of the password (the "client digest"); the server
// binds it to the user id with a second SHA1 stage before storing it.
// See CredentialHasher.
//
// # Session tokens
//
// A login mints a self-verifying token "{id}-{expiry}-{signature}" carried
// in a cookie. There is no server-side session table: SessionTokenCodec
// re-derives validity on every request from the token itself, the process
// secret, and the user's current password digest. Changing a password
// therefore invalidates every previously issued token for that user.
//
// # Services
//
//   - AuthenticationService - registration and sign-in, the only component
//     here that performs I/O (through the Directory interface)
//   - SessionTokenCodec - token minting and verification
//   - RegistrationValidator - syntactic field checks in declared order
//
// Validation and conflict failures are returned as *ValidationError and
// *ConflictError values naming the offending field; they are never fatal.
package auth
