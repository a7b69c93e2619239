// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/prismlabs/prism-tui/internal/analytics"
	"github.com/prismlabs/prism-tui/internal/api"
	"github.com/prismlabs/prism-tui/internal/config"
	"github.com/prismlabs/prism-tui/internal/credstore"
	"github.com/prismlabs/prism-tui/internal/db"
	"github.com/prismlabs/prism-tui/internal/logger"
	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/session"
)

type (
	// SessionChangedEvent is emitted when the authentication state changes,
	// whether from an in-app action or an external edit of the token file.
	SessionChangedEvent struct {
		Session session.Session
	}

	// BudgetAlertEvent is emitted when spend crosses a budget threshold.
	BudgetAlertEvent struct {
		Percent   float64
		Threshold float64
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionChangedEvent) isServiceEvent() {}
func (BudgetAlertEvent) isServiceEvent()    {}
func (ErrorEvent) isServiceEvent()          {}

// Budget thresholds that trigger a desktop notification, in percent.
var budgetThresholds = []float64{80, 100}

// Manager orchestrates the credential store, API client, session manager
// and analytics service, and routes their events to subscribers.
type Manager struct {
	mu          sync.RWMutex
	store       *credstore.Store
	client      *api.Client
	sessions    *session.Manager
	analytics   *analytics.Service
	database    *db.DB
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent

	// lastPercent tracks budget utilization per period. Periods cover
	// different windows, so crossings are only meaningful within one.
	lastPercent map[models.Period]float64
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		eventChan:   make(chan ServiceEvent, 100),
		stopChan:    make(chan struct{}),
		lastPercent: make(map[models.Period]float64),
	}

	var err error
	m.store, err = credstore.New(cfg.TokenPath)
	if err != nil {
		return nil, err
	}

	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// The client reads the session's current token, and the session
	// manager authenticates through the client. Bind the token source
	// late so the cycle resolves at call time.
	m.client = api.New(cfg.BaseURL, func() string {
		if m.sessions == nil {
			return ""
		}
		return m.sessions.Token()
	})
	m.sessions = session.NewManager(m.store, m.client)

	m.analytics = analytics.New(m.client, cfg.SavingsMultiplier, cfg.BudgetCap)

	go m.routeEvents()

	return m, nil
}

// Client returns the API client shared by all services.
func (m *Manager) Client() *api.Client {
	return m.client
}

// Sessions returns the session manager.
func (m *Manager) Sessions() *session.Manager {
	return m.sessions
}

// Analytics returns the analytics service.
func (m *Manager) Analytics() *analytics.Service {
	return m.analytics
}

// Bootstrap resolves the persisted token into an initial session and
// broadcasts the result.
func (m *Manager) Bootstrap(ctx context.Context) error {
	err := m.sessions.Bootstrap(ctx)
	m.broadcast(SessionChangedEvent{Session: m.sessions.Current()})
	return err
}

// Login authenticates with the backend and broadcasts the new session.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := m.sessions.Login(ctx, email, password); err != nil {
		return err
	}
	m.broadcast(SessionChangedEvent{Session: m.sessions.Current()})
	return nil
}

// Signup registers a new organization and broadcasts the new session.
func (m *Manager) Signup(ctx context.Context, email, password, organizationName string) error {
	if err := m.sessions.Signup(ctx, email, password, organizationName); err != nil {
		return err
	}
	m.broadcast(SessionChangedEvent{Session: m.sessions.Current()})
	return nil
}

// Logout clears the session and the persisted token.
func (m *Manager) Logout() {
	m.sessions.Logout()
	m.broadcast(SessionChangedEvent{Session: m.sessions.Current()})
}

// RecordDashboard caches the fetched summary locally and checks the
// budget thresholds for desktop notifications.
func (m *Manager) RecordDashboard(dash *analytics.Dashboard) {
	if dash == nil {
		return
	}

	if m.database != nil {
		if err := m.database.SaveSummary(dash.Summary); err != nil {
			logger.Error("failed to cache summary snapshot", "error", err)
		}
	}

	m.checkBudget(dash.Period, dash.BudgetPercent)
}

// cachedSeriesLimit caps how many snapshots back the offline spend trend.
const cachedSeriesLimit = 30

// CachedDashboard rebuilds the most recent persisted dashboard for a
// period, for display when the backend is unreachable. The spend trend is
// reconstructed from snapshot history (running totals, oldest first).
// Returns nil when the cache has nothing for the period.
func (m *Manager) CachedDashboard(period models.Period) *analytics.Dashboard {
	if m.database == nil {
		return nil
	}

	snap, err := m.database.LatestSummary(period)
	if err != nil {
		logger.Error("failed to read cached summary", "error", err)
		return nil
	}
	if snap == nil {
		return nil
	}

	var series []models.SeriesPoint
	history, err := m.database.SummaryHistory(period, cachedSeriesLimit)
	if err != nil {
		logger.Warn("failed to read summary history", "error", err)
	}
	// History arrives newest first; the chart wants chronological order.
	for i := len(history) - 1; i >= 0; i-- {
		h := history[i]
		series = append(series, models.SeriesPoint{
			Date:         h.FetchedAt.Format("2006-01-02"),
			Requests:     h.Summary.TotalRequests,
			CostUSD:      h.Summary.TotalCostUSD,
			InputTokens:  h.Summary.TotalInputTokens,
			OutputTokens: h.Summary.TotalOutputTokens,
		})
	}

	return m.analytics.FromCache(period, snap.Summary, series, snap.FetchedAt)
}

// checkBudget fires a notification when spend crosses a threshold upwards.
// The first sample for a period seeds its baseline without alerting.
func (m *Manager) checkBudget(period models.Period, percent float64) {
	m.mu.Lock()
	oldPercent, exists := m.lastPercent[period]
	m.lastPercent[period] = percent
	m.mu.Unlock()

	if !exists {
		return
	}

	for _, threshold := range budgetThresholds {
		if percent >= threshold && oldPercent < threshold {
			title := "Prism Budget Alert"
			body := fmt.Sprintf("Spend has reached %.0f%% of the monthly budget.", percent)
			if err := beeep.Notify(title, body, ""); err != nil {
				logger.Error("failed to send budget notification", "error", err)
			}
			m.broadcast(BudgetAlertEvent{Percent: percent, Threshold: threshold})
		}
	}
}

// routeEvents routes token-file events into session revalidation.
func (m *Manager) routeEvents() {
	for {
		select {
		case event, ok := <-m.store.Events():
			if !ok {
				return
			}
			m.handleStoreEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleStoreEvent revalidates the session when the token file changes
// behind our back and broadcasts the outcome.
func (m *Manager) handleStoreEvent(event credstore.Event) {
	switch event.Type {
	case credstore.EventTokenChanged, credstore.EventTokenRemoved:
		before := m.sessions.Current()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := m.sessions.Revalidate(ctx)
		cancel()

		if err != nil {
			m.broadcast(ErrorEvent{Service: "session", Error: err})
		}

		after := m.sessions.Current()
		if after != before {
			m.broadcast(SessionChangedEvent{Session: after})
		}

	case credstore.EventError:
		m.broadcast(ErrorEvent{Service: "credstore", Error: event.Error})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close shuts down event routing and all underlying services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.store.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
