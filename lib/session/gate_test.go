// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ST-2004/Queuescape/lib/clock"
)

// staticProvider returns a fixed credential or error.
type staticProvider struct {
	credential Credential
	err        error
}

func (p staticProvider) CurrentCredential(context.Context) (Credential, error) {
	return p.credential, p.err
}

var testInstant = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

func TestIsValid(t *testing.T) {
	clk := clock.Fake(testInstant)

	tests := []struct {
		name     string
		provider Provider
		want     bool
	}{
		{
			name: "live credential",
			provider: staticProvider{credential: Credential{
				AccessToken: "tok-1",
				ExpiresAt:   testInstant.Add(time.Hour),
			}},
			want: true,
		},
		{
			name: "no reported expiry",
			provider: staticProvider{credential: Credential{
				AccessToken: "tok-2",
			}},
			want: true,
		},
		{
			name: "expired credential",
			provider: staticProvider{credential: Credential{
				AccessToken: "tok-3",
				ExpiresAt:   testInstant.Add(-time.Minute),
			}},
			want: false,
		},
		{
			name:     "empty token",
			provider: staticProvider{credential: Credential{}},
			want:     false,
		},
		{
			name:     "provider failure collapses to false",
			provider: staticProvider{err: errors.New("identity unreachable")},
			want:     false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gate := NewGate(test.provider, clk)
			if got := gate.IsValid(context.Background()); got != test.want {
				t.Fatalf("IsValid() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestAuthorizationHeader(t *testing.T) {
	clk := clock.Fake(testInstant)

	gate := NewGate(staticProvider{credential: Credential{
		AccessToken: "abc123",
		ExpiresAt:   testInstant.Add(time.Hour),
	}}, clk)

	header, err := gate.AuthorizationHeader(context.Background())
	if err != nil {
		t.Fatalf("AuthorizationHeader() error: %v", err)
	}
	if header != "Bearer abc123" {
		t.Fatalf("AuthorizationHeader() = %q, want %q", header, "Bearer abc123")
	}
}

func TestAuthorizationHeaderUnauthenticated(t *testing.T) {
	clk := clock.Fake(testInstant)

	providers := map[string]Provider{
		"provider error": staticProvider{err: errors.New("signed out")},
		"expired": staticProvider{credential: Credential{
			AccessToken: "stale",
			ExpiresAt:   testInstant.Add(-time.Second),
		}},
		"empty token": staticProvider{credential: Credential{}},
	}

	for name, provider := range providers {
		t.Run(name, func(t *testing.T) {
			gate := NewGate(provider, clk)
			_, err := gate.AuthorizationHeader(context.Background())
			if !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("AuthorizationHeader() error = %v, want ErrUnauthenticated", err)
			}
		})
	}
}
