package models

import "time"

// Summary holds aggregate usage statistics for one reporting period.
// Derived figures (savings, budget utilization) are computed on read by the
// analytics service and never stored here.
type Summary struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalInputTokens  int64   `json:"total_input_tokens"`
	TotalOutputTokens int64   `json:"total_output_tokens"`
	TotalCostUSD      float64 `json:"total_cost"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	Period            Period  `json:"period"`
}

// SeriesPoint is one bucket of the cost-over-time series. Points arrive in
// chronological ascending order and the series is immutable once fetched.
type SeriesPoint struct {
	Date         string  `json:"date"`
	Requests     int64   `json:"requests"`
	CostUSD      float64 `json:"cost"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
}

// ModelBreakdownRow is one per-model slice of aggregate spend.
type ModelBreakdownRow struct {
	Model        string  `json:"model"`
	Requests     int64   `json:"requests"`
	CostUSD      float64 `json:"cost"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
}

// KeyBreakdownRow is one per-credential slice of aggregate spend.
type KeyBreakdownRow struct {
	KeyPrefix string  `json:"key_prefix"`
	Label     string  `json:"label"`
	Requests  int64   `json:"requests"`
	CostUSD   float64 `json:"cost"`
}

// RequestLogEntry is one proxied request as recorded by the backend.
// Entries are immutable and served newest first.
type RequestLogEntry struct {
	ID           string    `json:"id"`
	Model        string    `json:"model"`
	InputTokens  int64     `json:"input_tokens"`
	OutputTokens int64     `json:"output_tokens"`
	CostUSD      float64   `json:"cost_usd"`
	StatusCode   int       `json:"status_code"`
	LatencyMs    int64     `json:"latency_ms"`
	Endpoint     string    `json:"endpoint"`
	CreatedAt    time.Time `json:"created_at"`
	CredentialID string    `json:"credential_id,omitempty"`
}

// RequestLogPage is one page of the request log.
type RequestLogPage struct {
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Data  []RequestLogEntry `json:"data"`
}
