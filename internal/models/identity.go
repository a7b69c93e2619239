package models

// Identity is the resolved account profile tied to a valid session token.
// It is replaced wholesale on each successful resolution, never mutated.
type Identity struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	OrganizationName string `json:"organization_name,omitempty"`
}
