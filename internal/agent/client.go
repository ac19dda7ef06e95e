// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent provides the HTTP client for the analytics service API.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the analytics service client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeServer
	ErrTypeInvalidResponse
	ErrTypeRateLimited
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "analytics service is unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrRateLimited = &ClientError{Type: ErrTypeRateLimited, Message: "too many queries, slow down"}
)

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsUnreachable checks if an error indicates the service is unreachable.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// UserMessage returns the text shown to the user for a client error.
// A server-supplied detail is preferred over the transport description.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Message
	}
	return err.Error()
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the analytics client.
type ClientConfig struct {
	// BaseURL of the analytics service (default: http://127.0.0.1:8000)
	BaseURL string

	// QueryTimeout bounds a single POST /query. The service may run an
	// LLM pipeline per question, so this is deliberately generous. It is
	// also the backstop that resolves a hung submission as a failure
	// instead of blocking the input surface forever. (default: 90s)
	QueryTimeout time.Duration

	// RequestTimeout bounds history/stats calls (default: 15s)
	RequestTimeout time.Duration

	// QueriesPerMinute rate-limits submissions client-side
	// (default: 20, 0 disables the limiter)
	QueriesPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:          "http://127.0.0.1:8000",
		QueryTimeout:     90 * time.Second,
		RequestTimeout:   15 * time.Second,
		QueriesPerMinute: 20,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the analytics service.
// It is safe for concurrent use; in practice all calls originate from
// Bubble Tea command goroutines.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.QueryTimeout == 0 {
		config.QueryTimeout = 90 * time.Second
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if config.QueriesPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(config.QueriesPerMinute)/60.0), config.QueriesPerMinute)
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{},
		limiter:    limiter,
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// QUERY SUBMISSION
// =============================================================================

// SubmitQuery sends a natural-language query for the given session and
// returns the assistant's reply.
func (c *Client) SubmitQuery(ctx context.Context, query, sessionID string) (*QueryResponse, error) {
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	body, err := json.Marshal(QueryRequest{Query: query, SessionID: sessionID})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.QueryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var result QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// HISTORY OPERATIONS
// =============================================================================

// FetchHistory retrieves the stored conversation for a session.
func (c *Client) FetchHistory(ctx context.Context, sessionID string) (*HistoryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.conversationURL(sessionID), nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var result HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode history", Cause: err}
	}

	return &result, nil
}

// DeleteHistory removes the stored conversation for a session.
func (c *Client) DeleteHistory(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.conversationURL(sessionID), nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serverError(resp)
	}

	return nil
}

// =============================================================================
// STATISTICS
// =============================================================================

// FetchStats retrieves table row-count statistics.
func (c *Client) FetchStats(ctx context.Context) (*StatsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/stats", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp)
	}

	var result StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode stats", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// ERROR NORMALIZATION
// =============================================================================

// transportError converts a transport-level failure (no response, timeout,
// connection reset) into a ClientError.
func transportError(err error) *ClientError {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeUnreachable, Message: "analytics service is unreachable", Cause: err}
}

// serverError converts a non-2xx response into a ClientError, preferring the
// detail field of an error body when the service supplied one.
func serverError(resp *http.Response) *ClientError {
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Detail != "" {
			return &ClientError{Type: ErrTypeServer, Message: body.Detail}
		}
		if body.Error != "" {
			return &ClientError{Type: ErrTypeServer, Message: body.Error}
		}
	}
	return &ClientError{Type: ErrTypeServer, Message: "request failed: " + resp.Status}
}

// conversationURL builds the /conversation/{id} path with the session key
// escaped, since keys are opaque strings.
func (c *Client) conversationURL(sessionID string) string {
	return c.config.BaseURL + "/conversation/" + url.PathEscape(sessionID)
}
