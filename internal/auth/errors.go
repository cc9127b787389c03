// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package auth

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a syntactically invalid input field. It is
// recovered at the boundary and always user-visible with the offending
// field named.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports a semantic conflict, such as a duplicate email.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Field, e.Message)
}
