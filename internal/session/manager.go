// Package session owns the authentication state machine: token lifecycle,
// identity resolution and logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/prismlabs/prism-tui/internal/api"
	"github.com/prismlabs/prism-tui/internal/logger"
	"github.com/prismlabs/prism-tui/internal/models"
)

// ErrMissingFields is returned when required login/signup fields are empty.
// It is caught before any network dispatch.
var ErrMissingFields = errors.New("session: email and password are required")

// Status is the authentication state.
type Status int

const (
	// StatusInitializing holds until the startup token (if any) has been
	// validated. The machine never returns here.
	StatusInitializing Status = iota
	// StatusAuthenticated means a validated token and resolved identity.
	StatusAuthenticated
	// StatusAnonymous means no usable token.
	StatusAnonymous
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session is a read-only snapshot of the authentication state.
// Identity is non-nil exactly when Status is StatusAuthenticated.
type Session struct {
	Token    string
	Identity *models.Identity
	Status   Status
}

// TokenStore persists the session token across restarts.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
}

// Authenticator is the slice of the backend client the manager needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Signup(ctx context.Context, email, password, organizationName string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*models.Identity, error)
}

// Manager drives the Initializing -> {Authenticated, Anonymous} machine.
// Each token change bumps a generation counter; an identity resolution
// carrying a stale generation never touches state (last-token-wins).
type Manager struct {
	mu       sync.RWMutex
	store    TokenStore
	client   Authenticator
	token    string
	identity *models.Identity
	status   Status
	gen      uint64
}

// NewManager creates a session manager in the Initializing state.
func NewManager(store TokenStore, client Authenticator) *Manager {
	return &Manager{
		store:  store,
		client: client,
		status: StatusInitializing,
	}
}

// Token returns the current session token. Safe for concurrent use; wired as
// the API client's TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Current returns a snapshot of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{Token: m.token, Identity: m.identity, Status: m.status}
}

// Bootstrap resolves the startup state: a stored token is validated against
// the backend, no token means Anonymous. Any validation failure clears the
// stored token.
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, err := m.store.Get()
	if err != nil {
		return fmt.Errorf("session: failed to read stored token: %w", err)
	}

	if token == "" {
		m.mu.Lock()
		m.becomeAnonymousLocked()
		m.mu.Unlock()
		return nil
	}

	m.mu.Lock()
	m.token = token
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	return m.resolveIdentity(ctx, gen)
}

// Login exchanges credentials for a token, persists it and resolves the
// identity. The token is persisted before the state flips.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingFields
	}

	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adoptToken(ctx, resp.AccessToken)
}

// Signup registers a new account and establishes a session for it.
func (m *Manager) Signup(ctx context.Context, email, password, organizationName string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingFields
	}

	resp, err := m.client.Signup(ctx, email, password, organizationName)
	if err != nil {
		return err
	}
	return m.adoptToken(ctx, resp.AccessToken)
}

// Logout erases the stored credential and returns to Anonymous.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Revalidate re-reads the stored token and, when it differs from the one in
// memory, validates it. Used when the token file changes externally.
func (m *Manager) Revalidate(ctx context.Context) error {
	token, err := m.store.Get()
	if err != nil {
		return fmt.Errorf("session: failed to read stored token: %w", err)
	}

	m.mu.Lock()
	if token == m.token {
		m.mu.Unlock()
		return nil
	}
	if token == "" {
		m.token = ""
		m.gen++
		m.becomeAnonymousLocked()
		m.mu.Unlock()
		return nil
	}
	m.token = token
	m.identity = nil
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	return m.resolveIdentity(ctx, gen)
}

// adoptToken persists a fresh token and resolves its identity.
func (m *Manager) adoptToken(ctx context.Context, token string) error {
	if err := m.store.Set(token); err != nil {
		return fmt.Errorf("session: failed to persist token: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.identity = nil
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	return m.resolveIdentity(ctx, gen)
}

// resolveIdentity performs the single identity round trip for a generation.
// Exactly one resolution is in flight per token change; a stale generation
// discards its result without touching state.
func (m *Manager) resolveIdentity(ctx context.Context, gen uint64) error {
	identity, err := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.gen {
		// A newer token change superseded this resolution.
		logger.Debug("discarding stale identity resolution", "gen", gen)
		return nil
	}

	if err != nil {
		// Expired or revoked token: force logout.
		m.clearLocked()
		return err
	}

	m.identity = identity
	m.status = StatusAuthenticated
	return nil
}

// becomeAnonymousLocked settles into Anonymous without erasing the store.
func (m *Manager) becomeAnonymousLocked() {
	m.status = StatusAnonymous
	m.identity = nil
}

// clearLocked erases the credential and settles into Anonymous.
func (m *Manager) clearLocked() {
	if err := m.store.Set(""); err != nil {
		logger.Error("failed to clear stored token", "error", err)
	}
	m.token = ""
	m.identity = nil
	m.gen++
	m.status = StatusAnonymous
}
