// Package api provides the HTTP client for the Prism metering backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/prismlabs/prism-tui/internal/logger"
)

const maxBodySize = 1 << 20 // 1 MB

// ErrUnauthorized indicates the session token was rejected by the backend.
var ErrUnauthorized = errors.New("api: unauthorized")

// APIError is the uniform error shape for every non-success response.
// Callers never see transport-level distinctions.
type APIError struct {
	Status int
	Detail string
}

// Error returns the human-readable message for the failure.
func (e *APIError) Error() string {
	return e.Detail
}

// Unwrap maps authentication rejections onto ErrUnauthorized so callers can
// use errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// errorPayload matches the backend's structured error body.
type errorPayload struct {
	Detail string `json:"detail"`
}

// TokenSource returns the current session token, or the empty string when
// no session is active. The client re-reads it on every call.
type TokenSource func() string

// Client makes authenticated calls against the Prism backend. Calls are
// single-attempt: no retries, no caching.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// New creates a client for the given backend root URL.
func New(baseURL string, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{},
	}
}

// do performs one JSON round trip. body and out may be nil. Non-2xx
// responses are converted to *APIError, using the backend's detail field
// when it parses and a generic status message otherwise.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("api: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
			return &APIError{Status: resp.StatusCode, Detail: payload.Detail}
		}
		return &APIError{
			Status: resp.StatusCode,
			Detail: fmt.Sprintf("request failed: %d", resp.StatusCode),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: failed to parse response: %w", err)
	}
	return nil
}

// get is a convenience wrapper for query-string endpoints.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}
