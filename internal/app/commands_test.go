package app

import (
	"testing"
	"time"
)

func TestTickCmd(t *testing.T) {
	cmd := tickCmd(time.Millisecond)
	if cmd == nil {
		t.Error("tickCmd returned nil")
	}
}

func TestRefreshTickCmd(t *testing.T) {
	if refreshTickCmd(time.Minute) == nil {
		t.Error("refreshTickCmd returned nil")
	}
	// A zero interval falls back to a sane default instead of spinning.
	if refreshTickCmd(0) == nil {
		t.Error("refreshTickCmd should handle a zero interval")
	}
}

func TestNotificationCommands(t *testing.T) {
	for _, tt := range []struct {
		name string
		fn   func(string) AddNotificationMsg
		want NotificationType
	}{
		{"Success", func(s string) AddNotificationMsg { return notifySuccessCmd(s)().(AddNotificationMsg) }, NotificationSuccess},
		{"Error", func(s string) AddNotificationMsg { return notifyErrorCmd(s)().(AddNotificationMsg) }, NotificationError},
		{"Info", func(s string) AddNotificationMsg { return notifyInfoCmd(s)().(AddNotificationMsg) }, NotificationInfo},
	} {
		t.Run(tt.name, func(t *testing.T) {
			addMsg := tt.fn("msg")
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration <= 0 {
				t.Error("notification should carry a positive duration")
			}
		})
	}
}

func TestClearNotificationCmd(t *testing.T) {
	cmd := clearNotificationCmd("id", time.Millisecond)
	if cmd == nil {
		t.Error("clearNotificationCmd returned nil")
	}
}
