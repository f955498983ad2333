// Copyright 2026 The QueueEscape Authors
// SPDX-License-Identifier: Apache-2.0

// Package queueapi is the HTTP client for the remote queue service:
// one method per remote operation, a uniform failure kind for every
// transport problem, and a session gate consulted before any staff
// call leaves the process.
//
// The client performs no retries and sets no timeout of its own — one
// attempt per invocation, with cancellation left to the caller's
// context and the transport.
package queueapi

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
)

// RequestError is the uniform failure for any queue API operation that
// reached the network: connection failures, non-2xx responses, and
// malformed response bodies all surface as a RequestError carrying the
// operation name. The cause is preserved for logs but callers are not
// expected to branch on it.
type RequestError struct {
	// Operation is the remote operation that failed ("join", "status",
	// "staff summary", "call next", "complete", "set traffic").
	Operation string

	cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("queueapi: %s request failed: %v", e.Operation, e.cause)
}

func (e *RequestError) Unwrap() error { return e.cause }

// AuthHeaderSource produces the Authorization header value for staff
// requests, or fails when no valid session exists. session.Gate
// satisfies this; staff operations consult it before any network I/O
// and propagate its failure without attempting the request.
type AuthHeaderSource interface {
	AuthorizationHeader(ctx context.Context) (string, error)
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the base URL of the queue service
	// (e.g. "https://api.example.com").
	BaseURL string
	// Gate guards staff operations. Required.
	Gate AuthHeaderSource
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client calls the remote queue service.
type Client struct {
	baseURL    string
	gate       AuthHeaderSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a queue API client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("queueapi: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("queueapi: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if config.Gate == nil {
		return nil, fmt.Errorf("queueapi: Gate is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		gate:       config.Gate,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Join adds a person to the named queue. Visitor operation, no auth.
func (c *Client) Join(ctx context.Context, queueID, email string) (*JoinResult, error) {
	const operation = "join"
	body, err := c.doRequest(ctx, operation, http.MethodPost, "/queue/join", nil,
		map[string]string{"email": email, "queueId": queueID}, false)
	if err != nil {
		return nil, err
	}

	var result JoinResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &RequestError{Operation: operation, cause: fmt.Errorf("parsing response: %w", err)}
	}
	c.logger.Info("joined queue", "queue_id", queueID, "ticket_number", result.TicketNumber)
	return &result, nil
}

// Status fetches the current state of one ticket. Visitor operation,
// no auth.
func (c *Client) Status(ctx context.Context, queueID, ticketNumber string) (*TicketStatusResult, error) {
	const operation = "status"
	path := "/queue/status/" + url.PathEscape(queueID) + "/" + url.PathEscape(ticketNumber)
	body, err := c.doRequest(ctx, operation, http.MethodGet, path, nil, nil, false)
	if err != nil {
		return nil, err
	}

	var result TicketStatusResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &RequestError{Operation: operation, cause: fmt.Errorf("parsing response: %w", err)}
	}
	return &result, nil
}

// StaffSummary fetches every not-completed ticket in the queue, oldest
// first. Staff operation.
func (c *Client) StaffSummary(ctx context.Context, queueID string) (*Summary, error) {
	const operation = "staff summary"
	query := url.Values{"queueId": []string{queueID}}
	body, err := c.doRequest(ctx, operation, http.MethodGet, "/queue/staff/summary", query, nil, true)
	if err != nil {
		return nil, err
	}

	var summary Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, &RequestError{Operation: operation, cause: fmt.Errorf("parsing response: %w", err)}
	}
	return &summary, nil
}

// CallNext advances the queue: the oldest waiting ticket becomes the
// one being served. Staff operation.
func (c *Client) CallNext(ctx context.Context, queueID string) (*CallNextResult, error) {
	const operation = "call next"
	body, err := c.doRequest(ctx, operation, http.MethodPost, "/queue/staff/next", nil,
		map[string]string{"queueId": queueID}, true)
	if err != nil {
		return nil, err
	}

	var result CallNextResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &RequestError{Operation: operation, cause: fmt.Errorf("parsing response: %w", err)}
	}
	if result.ServedTicket != nil {
		c.logger.Info("called next ticket", "queue_id", queueID, "ticket_number", result.ServedTicket.TicketNumber)
	}
	return &result, nil
}

// Complete marks the given ticket as served and done. Staff operation.
func (c *Client) Complete(ctx context.Context, queueID, ticketNumber string) error {
	const operation = "complete"
	_, err := c.doRequest(ctx, operation, http.MethodPost, "/queue/staff/complete", nil,
		map[string]string{"ticketNumber": ticketNumber, "queueId": queueID}, true)
	if err != nil {
		return err
	}
	c.logger.Info("completed ticket", "queue_id", queueID, "ticket_number", ticketNumber)
	return nil
}

// SetTrafficPeriod stores the staff-selected traffic period for the
// queue. Staff operation. The period's wire value goes out under the
// queue service's historical field name "peak_period".
func (c *Client) SetTrafficPeriod(ctx context.Context, queueID string, period string) error {
	const operation = "set traffic"
	_, err := c.doRequest(ctx, operation, http.MethodPost, "/queue/staff/settings", nil,
		map[string]string{"peak_period": period, "queueId": queueID}, true)
	if err != nil {
		return err
	}
	c.logger.Info("traffic period updated", "queue_id", queueID, "period", period)
	return nil
}

// doRequest performs one HTTP request and returns the response body.
// Staff requests (authed=true) go through the gate first; a gate
// failure is returned as-is, before any network I/O, so callers can
// distinguish it from transport failures with errors.Is.
func (c *Client) doRequest(ctx context.Context, operation, method, path string, query url.Values, requestBody any, authed bool) ([]byte, error) {
	var authHeader string
	if authed {
		header, err := c.gate.AuthorizationHeader(ctx)
		if err != nil {
			return nil, err
		}
		authHeader = header
	}

	requestURL := c.baseURL + path
	if query != nil {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, &RequestError{Operation: operation, cause: fmt.Errorf("encoding request body: %w", err)}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, &RequestError{Operation: operation, cause: err}
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		request.Header.Set("Authorization", authHeader)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &RequestError{Operation: operation, cause: err}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &RequestError{Operation: operation, cause: fmt.Errorf("reading response body: %w", err)}
	}

	// Non-2xx is a uniform failure: no operation-specific error bodies
	// are parsed.
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		c.logger.Warn("queue request failed",
			"operation", operation,
			"status_code", response.StatusCode,
		)
		return nil, &RequestError{Operation: operation, cause: fmt.Errorf("unexpected status %d", response.StatusCode)}
	}

	return responseBody, nil
}
