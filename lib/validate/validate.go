// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package validate holds the form-input checks shared by the join,
// staff sign-in, and staff sign-up flows. All checks are pure: no
// state, no I/O, no network.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

// Error describes a failed input check. The Reason is written for
// inline display next to the offending field.
type Error struct {
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// emailPattern is deliberately conservative: a local part, a single @,
// and a domain that ends in a dot followed by at least two letters.
// It rejects plenty of technically-valid addresses; the remote service
// is the final authority, this only catches obvious typos before a
// request is made.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Email checks an address against the conservative local@domain.tld
// shape. Returns nil when the address passes, or an *Error with a
// display-ready reason.
func Email(address string) error {
	if address == "" {
		return &Error{Reason: "email is required"}
	}
	if strings.Count(address, "@") != 1 {
		return &Error{Reason: "email must contain exactly one @"}
	}
	if !emailPattern.MatchString(address) {
		return &Error{Reason: "email must look like name@example.com"}
	}
	return nil
}

// Password checks the staff password rules: at least 8 characters with
// at least one uppercase letter, one lowercase letter, and one digit.
func Password(password string) error {
	if len(password) < 8 {
		return &Error{Reason: "password must be at least 8 characters"}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return &Error{Reason: "password needs an uppercase letter"}
	}
	if !hasLower {
		return &Error{Reason: "password needs a lowercase letter"}
	}
	if !hasDigit {
		return &Error{Reason: "password needs a digit"}
	}
	return nil
}
