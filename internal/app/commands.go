package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prismlabs/prism-tui/internal/models"
	"github.com/prismlabs/prism-tui/internal/services"
)

const (
	// requestTimeout bounds every backend call issued from the UI.
	requestTimeout = 30 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// requestPageSize is the request-log page size.
	requestPageSize = 25
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// bootstrapCmd resolves the persisted token into an initial session.
func bootstrapCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return SessionResolvedMsg{Error: mgr.Bootstrap(ctx)}
	}
}

// loginCmd authenticates or signs up with the backend.
func loginCmd(mgr *services.Manager, msg LoginSubmitMsg) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var err error
		if msg.Signup {
			err = mgr.Signup(ctx, msg.Email, msg.Password, msg.OrganizationName)
		} else {
			err = mgr.Login(ctx, msg.Email, msg.Password)
		}
		return LoginResultMsg{Signup: msg.Signup, Error: err}
	}
}

// fetchDashboardCmd runs the four analytics queries as one batch. The
// result carries the period it was requested for. When the backend is
// unreachable, the last cached dashboard rides along with the error so
// the view can show most-recent-known figures.
func fetchDashboardCmd(mgr *services.Manager, period models.Period) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		dash, err := mgr.Analytics().FetchDashboard(ctx, period)
		if err != nil {
			return DashboardLoadedMsg{Period: period, Dashboard: mgr.CachedDashboard(period), Error: err}
		}

		mgr.RecordDashboard(dash)
		return DashboardLoadedMsg{Period: period, Dashboard: dash}
	}
}

// loadKeysCmd fetches the proxy key list.
func loadKeysCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		keys, err := mgr.Client().ListKeys(ctx)
		return KeysLoadedMsg{Keys: keys, Error: err}
	}
}

// createKeyCmd provisions a new proxy key.
func createKeyCmd(mgr *services.Manager, providerAPIKey, label string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		key, err := mgr.Client().CreateKey(ctx, providerAPIKey, label)
		return KeyCreatedMsg{Key: key, Error: err}
	}
}

// deleteKeyCmd revokes a proxy key.
func deleteKeyCmd(mgr *services.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := mgr.Client().DeleteKey(ctx, id)
		return KeyDeletedMsg{ID: id, Error: err}
	}
}

// loadRequestsCmd fetches one page of the request log.
func loadRequestsCmd(mgr *services.Manager, page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		logs, err := mgr.Client().RequestLogs(ctx, page, requestPageSize)
		return RequestsLoadedMsg{Page: logs, Error: err}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}
