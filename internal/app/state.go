// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
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

	maxNotifications = 10
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
	case NotificationLoading:
		return "loading"
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

// State is shared between the application shell and its tabs.
type State struct {
	mu sync.RWMutex

	fetchStats    *models.FetchStats
	recentFetches []models.FetchRecord
	lastUpdated   time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
	}
}

// SetFetchLog stores the latest fetch log summary and entries.
func (s *State) SetFetchLog(stats *models.FetchStats, recent []models.FetchRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchStats = stats
	s.recentFetches = recent
	s.lastUpdated = time.Now()
}

// FetchStats returns the fetch log summary, or nil before the first load.
func (s *State) FetchStats() *models.FetchStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchStats
}

// RecentFetches returns a copy of the newest fetch log entries.
func (s *State) RecentFetches() []models.FetchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FetchRecord, len(s.recentFetches))
	copy(out, s.recentFetches)
	return out
}

// LastUpdated returns when the fetch log was last loaded.
func (s *State) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), s.notificationSeq)

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
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
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
