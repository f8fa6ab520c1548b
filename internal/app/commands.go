package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/engagement-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// RecentFetchLimit is how many fetch log entries the info tab charts.
	RecentFetchLimit = 40
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// autoRefreshCmd schedules the next AutoRefreshMsg. It is a no-op when
// interval is not positive.
func autoRefreshCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return AutoRefreshMsg{Time: t}
	})
}

// loadFetchLogCmd returns a command that loads the fetch log summary.
func loadFetchLogCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		stats, err := mgr.FetchStats()
		if err != nil {
			return FetchLogLoadedMsg{Error: err}
		}
		recent, err := mgr.RecentFetches(RecentFetchLimit)
		return FetchLogLoadedMsg{Stats: stats, Recent: recent, Error: err}
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

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     t,
			Message:  message,
			Duration: d,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}
