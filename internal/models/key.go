package models

import "time"

// ProxyKey is a provisioned proxy credential as listed by the backend.
// The full secret is only returned once, at creation time.
type ProxyKey struct {
	ID        string    `json:"id"`
	KeyPrefix string    `json:"key_prefix"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatedKey is the response to provisioning a new proxy credential.
// ProxyKey carries the full secret and must be shown to the operator
// immediately; it cannot be retrieved again.
type CreatedKey struct {
	ID        string `json:"id"`
	ProxyKey  string `json:"proxy_key"`
	KeyPrefix string `json:"key_prefix"`
	Label     string `json:"label"`
}
