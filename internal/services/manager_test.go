package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/clock"
	"github.com/j-veylop/engagement-dashboard-tui/internal/config"
	"github.com/j-veylop/engagement-dashboard-tui/internal/engagement"
	"github.com/j-veylop/engagement-dashboard-tui/internal/fakeapi"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	return &config.Config{
		ServerURL:      serverURL,
		UserID:         "user-1",
		AuthToken:      "token-1",
		Locale:         "en",
		DatabasePath:   filepath.Join(tmpDir, "test.db"),
		RequestTimeout: 5 * time.Second,
	}
}

func newFakeServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(fakeapi.New(fakeapi.Generate(n, testNow, 1), fakeapi.Options{AuthToken: "token-1"}))
	t.Cleanup(srv.Close)
	return srv
}

func testParams(offset, count int) models.QueryParams {
	r := models.PeriodLast7Days.Range(clock.Fixed{T: testNow})
	return models.NewQueryParams(r, models.Pagination{Current: offset, ItemsPerPage: count})
}

func TestNewManager(t *testing.T) {
	mgr, err := NewManager(testConfig(t, "http://localhost"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
	if mgr.Translator() == nil {
		t.Error("Translator should be initialized")
	}
	if mgr.Config().ServerURL != "http://localhost" {
		t.Errorf("Config().ServerURL = %q", mgr.Config().ServerURL)
	}
}

func TestNewManager_BadDatabasePath(t *testing.T) {
	cfg := testConfig(t, "http://localhost")
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.DatabasePath = filepath.Join(blocker, "test.db")

	if _, err := NewManager(cfg); err == nil {
		t.Error("expected error for unusable database path")
	}
}

func TestFetchChannels_Success(t *testing.T) {
	srv := newFakeServer(t, 30)
	mgr, err := NewManager(testConfig(t, srv.URL))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()

	resp, err := mgr.FetchChannels(context.Background(), testParams(25, 25), models.PeriodLast7Days)
	if err != nil {
		t.Fatalf("FetchChannels failed: %v", err)
	}
	if resp.Total != 30 || len(resp.Channels) != 5 {
		t.Errorf("Total = %d, len = %d; want 30, 5", resp.Total, len(resp.Channels))
	}

	select {
	case e := <-ch:
		logged, ok := e.(FetchLoggedEvent)
		if !ok {
			t.Fatalf("event = %T, want FetchLoggedEvent", e)
		}
		if logged.Record.Status != models.FetchOK || logged.Record.Channels != 5 || logged.Record.Total != 30 {
			t.Errorf("unexpected record %+v", logged.Record)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for FetchLoggedEvent")
	}

	records, err := mgr.RecentFetches(10)
	if err != nil {
		t.Fatalf("RecentFetches failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].RequestID == "" {
		t.Error("RequestID should be recorded")
	}
	if records[0].Period != models.PeriodLast7Days || records[0].Offset != 25 {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestFetchChannels_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.DesktopNotifications = true
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	var mu sync.Mutex
	var notified []string
	mgr.notify = func(title, body string) error {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, body)
		return nil
	}

	_, err = mgr.FetchChannels(context.Background(), testParams(0, 25), models.PeriodLast7Days)
	var apiErr *engagement.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *engagement.APIError", err)
	}

	mu.Lock()
	if len(notified) != 1 || !strings.Contains(notified[0], "boom") {
		t.Errorf("notifications = %v", notified)
	}
	mu.Unlock()

	stats, err := mgr.FetchStats()
	if err != nil {
		t.Fatalf("FetchStats failed: %v", err)
	}
	if stats.TotalFetches != 1 || stats.FailedFetches != 1 {
		t.Errorf("stats = %+v, want 1 total 1 failed", stats)
	}

	records, _ := mgr.RecentFetches(1)
	if len(records) != 1 || records[0].Error == "" || records[0].RequestID == "" {
		t.Errorf("failed fetch not recorded properly: %+v", records)
	}
}

func TestFetchChannels_NotificationsDisabled(t *testing.T) {
	mgr, err := NewManager(testConfig(t, "http://127.0.0.1:1"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	mgr.notify = func(title, body string) error {
		t.Error("notify should not be called when desktop notifications are off")
		return nil
	}

	if _, err := mgr.FetchChannels(context.Background(), testParams(0, 25), models.PeriodLast7Days); err == nil {
		t.Error("expected connection error")
	}
}

func TestFetchChannels_Canceled(t *testing.T) {
	srv := newFakeServer(t, 5)
	cfg := testConfig(t, srv.URL)
	cfg.DesktopNotifications = true
	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	mgr.notify = func(title, body string) error {
		t.Error("cancelled fetches should not notify")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = mgr.FetchChannels(ctx, testParams(0, 25), models.PeriodLast7Days)
	if !engagement.IsCanceled(err) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}

	records, _ := mgr.RecentFetches(1)
	if len(records) != 1 || records[0].Status != models.FetchCancelled {
		t.Errorf("records = %+v, want one cancelled", records)
	}

	stats, _ := mgr.FetchStats()
	if stats.TotalFetches != 0 {
		t.Errorf("cancelled fetches should not count, got %d", stats.TotalFetches)
	}
}

func TestManager_Compact(t *testing.T) {
	mgr, err := NewManager(testConfig(t, "http://localhost"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	for i := range 5 {
		rec := models.FetchRecord{
			RequestID: "req",
			StartedAt: testNow.Add(time.Duration(i) * time.Minute),
			Period:    models.PeriodLast7Days,
			Status:    models.FetchOK,
		}
		if err := mgr.Database().InsertFetch(&rec); err != nil {
			t.Fatalf("InsertFetch failed: %v", err)
		}
	}

	mgr.compact(2)

	recent, err := mgr.RecentFetches(10)
	if err != nil {
		t.Fatalf("RecentFetches failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if !recent[0].StartedAt.Equal(testNow.Add(4 * time.Minute)) {
		t.Errorf("newest entry should survive, got %v", recent[0].StartedAt)
	}

	// Nothing left to delete.
	mgr.compact(2)
	if recent, _ := mgr.RecentFetches(10); len(recent) != 2 {
		t.Errorf("len(recent) = %d after second compact, want 2", len(recent))
	}
}

func TestManager_TranslationsReloaded(t *testing.T) {
	localeDir := t.TempDir()
	cfg := testConfig(t, "http://localhost")
	cfg.LocaleDir = localeDir

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()

	catalog := "locale: en\nmessages:\n  \"No data found\": \"Nada\"\n"
	if err := os.WriteFile(filepath.Join(localeDir, "en.yaml"), []byte(catalog), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-ch:
		reloaded, ok := e.(TranslationsReloadedEvent)
		if !ok {
			t.Fatalf("event = %T, want TranslationsReloadedEvent", e)
		}
		if reloaded.Locale != "en" {
			t.Errorf("Locale = %q, want en", reloaded.Locale)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}

	if got := mgr.Translator().T("No data found"); got != "Nada" {
		t.Errorf("T(No data found) = %q, want Nada", got)
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr, err := NewManager(testConfig(t, "http://localhost"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Unsubscribe should close the channel")
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr, err := NewManager(testConfig(t, "http://localhost"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := TranslationsReloadedEvent{Locale: "de"}
	mgr.broadcast(event)

	select {
	case e := <-ch:
		if e != event {
			t.Errorf("Got event %v, want %v", e, event)
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for broadcast")
	}
}

func TestManager_CloseTwice(t *testing.T) {
	mgr, err := NewManager(testConfig(t, "http://localhost"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	ch, _ := mgr.Subscribe()
	if err := mgr.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	if _, ok := <-ch; ok {
		t.Error("subscriber channel should be closed")
	}

	late, _ := mgr.Subscribe()
	if _, ok := <-late; ok {
		t.Error("subscribing after Close should yield a closed channel")
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ErrorEvent{Service: "db", Error: errors.New("x")}

	msg := WaitForEvent(ch)()
	if _, ok := msg.(ErrorEvent); !ok {
		t.Errorf("msg = %T, want ErrorEvent", msg)
	}

	close(ch)
	if msg := WaitForEvent(ch)(); msg != nil {
		t.Errorf("msg after close = %v, want nil", msg)
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = FetchLoggedEvent{}
	var _ ServiceEvent = TranslationsReloadedEvent{}
	var _ ServiceEvent = ErrorEvent{}
}
