package app

import (
	"time"

	"github.com/prismlabs/prism-tui/internal/analytics"
	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/services"
)

// TickMsg is sent periodically to sweep expired notifications.
type TickMsg struct {
	Time time.Time
}

// RefreshTickMsg is sent on the configured refresh interval to reload
// the dashboard.
type RefreshTickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SessionResolvedMsg carries the result of the startup bootstrap.
type SessionResolvedMsg struct {
	Error error
}

// LoginSubmitMsg requests authentication with the entered credentials.
// OrganizationName is set only for signups.
type LoginSubmitMsg struct {
	Email            string
	Password         string
	OrganizationName string
	Signup           bool
}

// LoginResultMsg contains the result of a login or signup attempt.
type LoginResultMsg struct {
	Signup bool
	Error  error
}

// LogoutMsg requests ending the current session.
type LogoutMsg struct{}

// DashboardLoadedMsg contains a fetched dashboard. Period identifies
// which request produced it so stale responses can be dropped.
type DashboardLoadedMsg struct {
	Period    models.Period
	Dashboard *analytics.Dashboard
	Error     error
}

// PeriodChangedMsg requests switching the dashboard to a new period.
type PeriodChangedMsg struct {
	Period models.Period
}

// KeysLoadedMsg contains the proxy key list.
type KeysLoadedMsg struct {
	Keys  []models.ProxyKey
	Error error
}

// CreateKeyMsg requests provisioning a new proxy key.
type CreateKeyMsg struct {
	ProviderAPIKey string
	Label          string
}

// KeyCreatedMsg contains the result of key creation. Key carries the
// plaintext proxy key, shown once and never persisted.
type KeyCreatedMsg struct {
	Key   *models.CreatedKey
	Error error
}

// DeleteKeyMsg requests revoking a proxy key.
type DeleteKeyMsg struct {
	ID string
}

// KeyDeletedMsg contains the result of key deletion.
type KeyDeletedMsg struct {
	ID    string
	Error error
}

// RequestsLoadedMsg contains a page of the request log.
type RequestsLoadedMsg struct {
	Page  *models.RequestLogPage
	Error error
}

// RequestPageMsg requests a different request-log page.
type RequestPageMsg struct {
	Page int
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "dashboard", "keys", "requests"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}
