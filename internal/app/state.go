// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/prismlabs/prism-tui/internal/analytics"
	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/session"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial   bool
	Dashboard bool
	Keys      bool
	Requests  bool
}

// State holds the shared application state behind a mutex so both the
// Bubble Tea update loop and background commands can read it.
type State struct {
	mu sync.RWMutex

	session   session.Session
	dashboard *analytics.Dashboard
	keys      []models.ProxyKey
	requests  *models.RequestLogPage

	// requestedPeriod tags the in-flight dashboard fetch; responses for
	// any other period are stale and get dropped.
	requestedPeriod models.Period

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates the initial application state.
func NewState() *State {
	return &State{
		session:         session.Session{Status: session.StatusInitializing},
		requestedPeriod: models.DefaultPeriod,
		notifications:   make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "dashboard":
		s.Loading.Dashboard = loading
	case "keys":
		s.Loading.Keys = loading
	case "requests":
		s.Loading.Requests = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Dashboard ||
		s.Loading.Keys ||
		s.Loading.Requests
}

// IsInitialLoading returns true if the startup session is still resolving.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// SetSession replaces the current session snapshot.
func (s *State) SetSession(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.session
	s.session = sess
	s.LastUpdated = time.Now()

	// Leaving the authenticated state invalidates everything derived
	// from the old identity.
	if prev.Status == session.StatusAuthenticated && sess.Status != session.StatusAuthenticated {
		s.dashboard = nil
		s.keys = nil
		s.requests = nil
	}
}

// GetSession returns the current session snapshot.
func (s *State) GetSession() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// IsAuthenticated reports whether the console has a resolved identity.
func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Status == session.StatusAuthenticated
}

// RequestPeriod marks a period as the one currently being fetched.
func (s *State) RequestPeriod(period models.Period) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestedPeriod = period
}

// RequestedPeriod returns the period of the most recent fetch request.
func (s *State) RequestedPeriod() models.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requestedPeriod
}

// SetDashboard stores a fetched dashboard. It returns false without
// storing when the dashboard belongs to a period the user has since
// navigated away from.
func (s *State) SetDashboard(dash *analytics.Dashboard) bool {
	if dash == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dash.Period != s.requestedPeriod {
		return false
	}

	s.dashboard = dash
	s.LastUpdated = time.Now()
	return true
}

// GetDashboard returns the current dashboard, or nil before the first load.
func (s *State) GetDashboard() *analytics.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dashboard
}

// SetKeys replaces the proxy key list.
func (s *State) SetKeys(keys []models.ProxyKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
	s.LastUpdated = time.Now()
}

// GetKeys returns a copy of the proxy key list.
func (s *State) GetKeys() []models.ProxyKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]models.ProxyKey, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// SetRequests replaces the current request log page.
func (s *State) SetRequests(page *models.RequestLogPage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = page
	s.LastUpdated = time.Now()
}

// GetRequests returns the current request log page, or nil.
func (s *State) GetRequests() *models.RequestLogPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
