// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"errors"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"a@b.co", true},
		{"a@b.edu", true},
		{"first.last+tag@sub.example.org", true},
		{"a@b", false},       // No TLD.
		{"ab.com", false},    // No @.
		{"", false},          // Empty.
		{"a@@b.co", false},   // Two @.
		{"a@b.c", false},     // One-letter TLD.
		{"@b.co", false},     // No local part.
		{"a@b.12", false},    // Numeric TLD.
		{"a b@c.com", false}, // Space in local part.
	}

	for _, test := range tests {
		err := Email(test.address)
		if test.valid && err != nil {
			t.Errorf("Email(%q) = %v, want nil", test.address, err)
		}
		if !test.valid && err == nil {
			t.Errorf("Email(%q) = nil, want error", test.address)
		}
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Abcd1234", true},
		{"abcd1234", false}, // No uppercase.
		{"ABCD1234", false}, // No lowercase.
		{"Abcdefgh", false}, // No digit.
		{"Ab1", false},      // Too short.
		{"", false},
		{"LongEnough99", true},
	}

	for _, test := range tests {
		err := Password(test.password)
		if test.valid && err != nil {
			t.Errorf("Password(%q) = %v, want nil", test.password, err)
		}
		if !test.valid && err == nil {
			t.Errorf("Password(%q) = nil, want error", test.password)
		}
	}
}

func TestErrorType(t *testing.T) {
	err := Email("")
	var validationErr *Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("Email(\"\") returned %T, want *validate.Error", err)
	}
	if validationErr.Reason == "" {
		t.Fatal("validation error has empty reason")
	}
}
