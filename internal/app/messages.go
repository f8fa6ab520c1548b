package app

import (
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
	"github.com/j-veylop/engagement-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// AutoRefreshMsg asks the tabs to re-issue their current query.
type AutoRefreshMsg struct {
	Time time.Time
}

// RefreshMsg is sent when the user asks for fresh data.
type RefreshMsg struct{}

// FetchLogLoadedMsg contains the fetch log summary for the info tab.
type FetchLogLoadedMsg struct {
	Stats  *models.FetchStats
	Recent []models.FetchRecord
	Error  error
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

// StartLoadingMsg shows the loading toast with Message.
type StartLoadingMsg struct {
	Message string
}

// StopLoadingMsg hides the loading toast.
type StopLoadingMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// TranslationsReloadedMsg tells the tabs that catalog text changed.
type TranslationsReloadedMsg struct {
	Locale string
}
