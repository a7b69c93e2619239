package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prismlabs/prism-tui/internal/models"
)

// TokenResponse carries the session token issued at login or signup.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type signupRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createKeyRequest struct {
	ProviderAPIKey string `json:"provider_api_key"`
	Label          string `json:"label,omitempty"`
}

// Signup registers a new operator account and returns a fresh session token.
func (c *Client) Signup(ctx context.Context, email, password, organizationName string) (*TokenResponse, error) {
	var resp TokenResponse
	req := signupRequest{Email: email, Password: password, OrganizationName: organizationName}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var resp TokenResponse
	req := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me resolves the identity tied to the current session token.
func (c *Client) Me(ctx context.Context) (*models.Identity, error) {
	var identity models.Identity
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// CreateKey provisions a proxy credential. The returned proxy key secret is
// only available in this response.
func (c *Client) CreateKey(ctx context.Context, providerAPIKey, label string) (*models.CreatedKey, error) {
	var created models.CreatedKey
	req := createKeyRequest{ProviderAPIKey: providerAPIKey, Label: label}
	if err := c.do(ctx, http.MethodPost, "/keys", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListKeys returns all provisioned proxy credentials.
func (c *Client) ListKeys(ctx context.Context) ([]models.ProxyKey, error) {
	var keys []models.ProxyKey
	if err := c.do(ctx, http.MethodGet, "/keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteKey revokes a proxy credential.
func (c *Client) DeleteKey(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/keys/"+url.PathEscape(id), nil, nil)
}

// Summary fetches aggregate usage for the period.
func (c *Client) Summary(ctx context.Context, period models.Period) (*models.Summary, error) {
	var summary models.Summary
	q := url.Values{"period": {string(period)}}
	if err := c.get(ctx, "/analytics/summary", q, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CostOverTime fetches the cost time series for the period.
func (c *Client) CostOverTime(ctx context.Context, period models.Period, granularity models.Granularity) ([]models.SeriesPoint, error) {
	var series []models.SeriesPoint
	q := url.Values{
		"period":      {string(period)},
		"granularity": {string(granularity)},
	}
	if err := c.get(ctx, "/analytics/cost-over-time", q, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// ByModel fetches the per-model spend breakdown for the period.
func (c *Client) ByModel(ctx context.Context, period models.Period) ([]models.ModelBreakdownRow, error) {
	var rows []models.ModelBreakdownRow
	q := url.Values{"period": {string(period)}}
	if err := c.get(ctx, "/analytics/by-model", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ByKey fetches the per-credential spend breakdown for the period.
func (c *Client) ByKey(ctx context.Context, period models.Period) ([]models.KeyBreakdownRow, error) {
	var rows []models.KeyBreakdownRow
	q := url.Values{"period": {string(period)}}
	if err := c.get(ctx, "/analytics/by-key", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// RequestLogs fetches one page of the request log. The ordering is
// server-defined, stable within a page.
func (c *Client) RequestLogs(ctx context.Context, page, limit int) (*models.RequestLogPage, error) {
	var logs models.RequestLogPage
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	if err := c.get(ctx, "/analytics/requests", q, &logs); err != nil {
		return nil, err
	}
	return &logs, nil
}
