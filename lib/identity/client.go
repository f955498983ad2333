// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package identity is the HTTP client for the external identity
// collaborator. It signs staff accounts up, signs them in, and holds
// the resulting credential for the rest of the process.
//
// Renewal is this package's job alone: CurrentCredential refreshes an
// expired access token transparently when a refresh token exists. The
// session gate and the queue API client only ever observe a credential
// being present or absent.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ST-2004/Queuescape/lib/clock"
	"github.com/ST-2004/Queuescape/lib/session"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the identity service
	// (e.g. "https://id.example.com").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
	// Clock is used for expiry bookkeeping. If nil, the system clock
	// is used.
	Clock clock.Clock
}

// Client talks to the identity service and holds the process-wide
// credential. It implements session.Provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	clock      clock.Clock

	mu      sync.Mutex
	current *credentialState
}

// credentialState is the stored result of a sign-in or refresh.
type credentialState struct {
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// authResponse is the wire shape shared by the login, signup, and
// refresh endpoints.
type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// NewClient creates an identity client. The returned client has no
// credential until LogIn succeeds.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("identity: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("identity: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		clock:      clk,
	}, nil
}

// SignUp registers a new staff account. It does not sign the account
// in; callers follow up with LogIn.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	_, err := c.doAuthRequest(ctx, "/auth/signup", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("identity: signup failed: %w", err)
	}
	c.logger.Info("staff account created", "email", email)
	return nil
}

// LogIn authenticates with email and password and stores the resulting
// credential for the process.
func (c *Client) LogIn(ctx context.Context, email, password string) error {
	auth, err := c.doAuthRequest(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("identity: login failed: %w", err)
	}

	c.store(auth)
	c.logger.Info("staff signed in", "email", email)
	return nil
}

// SignOut drops the stored credential. Subsequent staff operations
// fail the session gate until the next LogIn.
func (c *Client) SignOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.logger.Info("staff signed out")
}

// CurrentCredential implements session.Provider. When the stored
// access token has expired and a refresh token exists, the credential
// is renewed in place before being returned. A failed renewal drops
// the credential entirely so that validity checks stay consistent.
func (c *Client) CurrentCredential(ctx context.Context) (session.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return session.Credential{}, fmt.Errorf("identity: no session")
	}

	if !c.expiredLocked() {
		return session.Credential{
			AccessToken: c.current.accessToken,
			ExpiresAt:   c.current.expiresAt,
		}, nil
	}

	if c.current.refreshToken == "" {
		c.current = nil
		return session.Credential{}, fmt.Errorf("identity: session expired")
	}

	auth, err := c.doAuthRequest(ctx, "/auth/refresh", map[string]string{
		"refreshToken": c.current.refreshToken,
	})
	if err != nil {
		c.current = nil
		return session.Credential{}, fmt.Errorf("identity: session refresh failed: %w", err)
	}

	c.storeLocked(auth)
	c.logger.Debug("session refreshed")
	return session.Credential{
		AccessToken: c.current.accessToken,
		ExpiresAt:   c.current.expiresAt,
	}, nil
}

func (c *Client) expiredLocked() bool {
	if c.current.expiresAt.IsZero() {
		return false
	}
	return !c.clock.Now().Before(c.current.expiresAt)
}

func (c *Client) store(auth *authResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storeLocked(auth)
}

func (c *Client) storeLocked(auth *authResponse) {
	state := &credentialState{
		accessToken:  auth.AccessToken,
		refreshToken: auth.RefreshToken,
	}
	if auth.ExpiresIn > 0 {
		state.expiresAt = c.clock.Now().Add(time.Duration(auth.ExpiresIn) * time.Second)
	}
	c.current = state
}

// doAuthRequest posts a JSON body to an identity endpoint and parses
// the shared auth response shape.
func (c *Client) doAuthRequest(ctx context.Context, path string, requestBody map[string]string) (*authResponse, error) {
	encoded, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected %d response from %s", response.StatusCode, path)
	}

	var auth authResponse
	if err := json.Unmarshal(responseBody, &auth); err != nil {
		return nil, fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return &auth, nil
}
