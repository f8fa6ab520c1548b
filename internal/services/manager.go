// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/engagement-dashboard-tui/internal/config"
	"github.com/j-veylop/engagement-dashboard-tui/internal/db"
	"github.com/j-veylop/engagement-dashboard-tui/internal/engagement"
	"github.com/j-veylop/engagement-dashboard-tui/internal/i18n"
	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

const (
	// maxFetchLog is how many fetch log entries are kept.
	maxFetchLog = 500
	// pruneEvery is how many inserts happen between prunes.
	pruneEvery = 50
)

type (
	// FetchLoggedEvent is emitted after a channels request has been recorded.
	FetchLoggedEvent struct {
		Record models.FetchRecord
	}

	// TranslationsReloadedEvent is emitted when the catalog directory changed.
	TranslationsReloadedEvent struct {
		Locale string
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

func (FetchLoggedEvent) isServiceEvent()          {}
func (TranslationsReloadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()                {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	client      *engagement.Client
	database    *db.DB
	translator  *i18n.Translator
	watcher     *i18n.Watcher
	subscribers []chan ServiceEvent
	inserts     int
	closed      bool

	now    func() time.Time
	notify func(title, body string) error
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:    cfg,
		client: engagement.NewClient(cfg.ServerURL, cfg.UserID, cfg.AuthToken, cfg.RequestTimeout),
		now:    time.Now,
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}

	var err error
	m.translator, err = i18n.New(cfg.Locale, cfg.LocaleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.LocaleDir != "" {
		m.watcher, err = i18n.Watch(m.translator, m.handleReload)
		if err != nil {
			// Hot reload is optional; the catalogs are already loaded.
			logger.Warn("translation hot reload disabled", "dir", cfg.LocaleDir, "error", err)
		}
	}

	return m, nil
}

func (m *Manager) handleReload(err error) {
	if err != nil {
		m.broadcast(ErrorEvent{Service: "i18n", Error: err})
		return
	}
	m.broadcast(TranslationsReloadedEvent{Locale: m.translator.Locale()})
}

// FetchChannels requests one page of channel statistics and records the
// outcome in the fetch log. Failed requests raise a desktop notification
// when enabled; cancelled ones are only logged.
func (m *Manager) FetchChannels(ctx context.Context, params models.QueryParams, period models.PeriodID) (*models.ChannelsResponse, error) {
	started := m.now()
	res, err := m.client.ListChannels(ctx, params)

	rec := models.FetchRecord{
		StartedAt: started,
		Period:    period,
		Offset:    params.Offset,
		Count:     params.Count,
	}

	switch {
	case err == nil:
		rec.Status = models.FetchOK
		rec.RequestID = res.RequestID
		rec.DurationMs = res.Duration.Milliseconds()
		rec.Channels = len(res.Response.Channels)
		rec.Total = res.Response.Total

	case engagement.IsCanceled(err):
		rec.Status = models.FetchCancelled
		rec.DurationMs = m.now().Sub(started).Milliseconds()

	default:
		rec.Status = models.FetchFailed
		rec.Error = err.Error()
		rec.DurationMs = m.now().Sub(started).Milliseconds()
		var apiErr *engagement.APIError
		if errors.As(err, &apiErr) {
			rec.RequestID = apiErr.RequestID
		}
		logger.Error("failed to fetch channels", "error", err, "offset", params.Offset, "count", params.Count)
		m.notifyFailure(err)
	}

	m.record(rec)

	if err != nil {
		return nil, err
	}
	return res.Response, nil
}

func (m *Manager) record(rec models.FetchRecord) {
	if err := m.database.InsertFetch(&rec); err != nil {
		logger.Error("failed to record fetch", "error", err)
		m.broadcast(ErrorEvent{Service: "db", Error: err})
		return
	}

	m.mu.Lock()
	m.inserts++
	prune := m.inserts%pruneEvery == 0
	m.mu.Unlock()

	if prune {
		m.compact(maxFetchLog)
	}

	m.broadcast(FetchLoggedEvent{Record: rec})
}

// compact trims the fetch log to keep entries and reclaims the freed pages.
func (m *Manager) compact(keep int) {
	n, err := m.database.PruneFetches(keep)
	if err != nil {
		logger.Warn("failed to prune fetch log", "error", err)
		return
	}
	if n == 0 {
		return
	}
	logger.Debug("pruned fetch log", "deleted", n)
	if err := m.database.Vacuum(); err != nil {
		logger.Warn("failed to vacuum fetch log", "error", err)
	}
}

func (m *Manager) notifyFailure(err error) {
	if !m.cfg.DesktopNotifications {
		return
	}
	if nerr := m.notify(m.translator.T("Engagement dashboard"), m.translator.T("Failed to load channels: %s", err.Error())); nerr != nil {
		logger.Warn("desktop notification failed", "error", nerr)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
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
	if m.closed {
		close(ch)
	} else {
		m.subscribers = append(m.subscribers, ch)
	}
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
// It yields nil once the channel is closed.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
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

// RecentFetches returns the newest fetch log entries.
func (m *Manager) RecentFetches(limit int) ([]models.FetchRecord, error) {
	return m.database.RecentFetches(limit)
}

// FetchStats summarizes the fetch log.
func (m *Manager) FetchStats() (*models.FetchStats, error) {
	return m.database.FetchStats()
}

// Translator returns the active translator.
func (m *Manager) Translator() *i18n.Translator {
	return m.translator
}

// Config returns the configuration the manager was built from.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
