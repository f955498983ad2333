// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package session gates staff-only operations behind a valid identity
// credential.
//
// The gate does not own the credential: it wraps a Provider (in
// production the identity client) and turns its answers into the two
// signals the rest of the client needs — "is a session currently
// valid" and "produce an authorization header or fail". The gate never
// refreshes or stores anything; presence, absence, and renewal of the
// credential are entirely the provider's business.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/ST-2004/Queuescape/lib/clock"
)

// ErrUnauthenticated is returned when a staff operation is attempted
// without a valid credential. Callers check it with errors.Is; the
// operation must not have touched the network when it is returned.
var ErrUnauthenticated = errors.New("session: not authenticated")

// Credential is a bearer credential as reported by the identity
// collaborator.
type Credential struct {
	// AccessToken is the opaque bearer token.
	AccessToken string

	// ExpiresAt is when the token stops being valid. The zero value
	// means the provider did not report an expiry; the gate treats
	// such a token as valid.
	ExpiresAt time.Time
}

// Provider supplies the current credential. Implementations may
// refresh transparently inside CurrentCredential; the gate never
// attempts a refresh itself.
type Provider interface {
	// CurrentCredential returns the current credential, or an error
	// when none exists (signed out, expired beyond renewal, identity
	// service unreachable).
	CurrentCredential(ctx context.Context) (Credential, error)
}

// Gate answers validity and authorization-header questions about the
// process-wide session.
type Gate struct {
	provider Provider
	clock    clock.Clock
}

// NewGate wraps the given provider. clk is used for expiry checks.
func NewGate(provider Provider, clk clock.Clock) *Gate {
	return &Gate{provider: provider, clock: clk}
}

// IsValid reports whether a non-expired credential is currently
// available. Provider failures collapse to false; IsValid never
// returns an error.
func (gate *Gate) IsValid(ctx context.Context) bool {
	credential, err := gate.provider.CurrentCredential(ctx)
	if err != nil {
		return false
	}
	return gate.usable(credential)
}

// AuthorizationHeader returns the value for the Authorization header
// of a staff request, or ErrUnauthenticated when no valid credential
// exists. Staff operations call this before any network I/O and
// propagate the failure without attempting the request.
func (gate *Gate) AuthorizationHeader(ctx context.Context) (string, error) {
	credential, err := gate.provider.CurrentCredential(ctx)
	if err != nil {
		return "", ErrUnauthenticated
	}
	if !gate.usable(credential) {
		return "", ErrUnauthenticated
	}
	return "Bearer " + credential.AccessToken, nil
}

func (gate *Gate) usable(credential Credential) bool {
	if credential.AccessToken == "" {
		return false
	}
	if credential.ExpiresAt.IsZero() {
		return true
	}
	return gate.clock.Now().Before(credential.ExpiresAt)
}
