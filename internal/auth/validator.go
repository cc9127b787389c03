// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package auth

import (
	"regexp"
	"strings"
)

// Email addresses are matched case-sensitively; uppercase input is rejected,
// not normalized.
var (
	emailPattern  = regexp.MustCompile(`^[a-z0-9._-]+@[a-z0-9_-]+(\.[a-z0-9_-]+){1,4}$`)
	digestPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// Registration is the raw input to user registration. Passwd carries the
// client password digest, never a plaintext password.
type Registration struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Passwd string `json:"passwd"`
}

// fieldRule is one syntactic constraint on a registration field.
type fieldRule struct {
	field   string
	value   func(Registration) string
	valid   func(string) bool
	message string
}

// RegistrationValidator checks registration input against a fixed, ordered
// rule set. The order is a contract: when several fields are invalid, the
// first rule in declaration order names the reported field.
type RegistrationValidator struct {
	rules []fieldRule
}

// NewRegistrationValidator builds the validator with rules in the declared
// precedence: email, then name, then passwd.
func NewRegistrationValidator() *RegistrationValidator {
	return &RegistrationValidator{
		rules: []fieldRule{
			{
				field:   "email",
				value:   func(r Registration) string { return r.Email },
				valid:   emailPattern.MatchString,
				message: "not a valid email address",
			},
			{
				field:   "name",
				value:   func(r Registration) string { return r.Name },
				valid:   func(s string) bool { return strings.TrimSpace(s) != "" },
				message: "name cannot be empty",
			},
			{
				field:   "passwd",
				value:   func(r Registration) string { return r.Passwd },
				valid:   digestPattern.MatchString,
				message: "password digest must be 40 lowercase hex characters",
			},
		},
	}
}

// Validate returns nil or a *ValidationError naming the first invalid field
// in declaration order.
func (v *RegistrationValidator) Validate(reg Registration) error {
	for _, rule := range v.rules {
		if !rule.valid(rule.value(reg)) {
			return &ValidationError{Field: rule.field, Message: rule.message}
		}
	}
	return nil
}
