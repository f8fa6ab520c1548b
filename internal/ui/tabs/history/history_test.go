package history

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/engagement-dashboard-tui/internal/app"
	"github.com/j-veylop/engagement-dashboard-tui/internal/i18n"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

func newTestModel(t *testing.T, state *app.State) *Model {
	t.Helper()
	tr, err := i18n.New("en", "")
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}
	tr.SetLocation(time.UTC)
	m := New(state, tr)
	m.SetSize(140, 40)
	return m
}

func seededState() *app.State {
	started := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	state := app.NewState()
	state.SetFetchLog(&models.FetchStats{TotalFetches: 3, FailedFetches: 1}, []models.FetchRecord{
		{ID: 3, StartedAt: started.Add(2 * time.Second), RequestID: "c0ffee00-1111", Period: models.PeriodLast30Days, Status: models.FetchOK, DurationMs: 120, Offset: 25, Count: 25, Channels: 25, Total: 1200},
		{ID: 2, StartedAt: started.Add(time.Second), RequestID: "bad00000-2222", Period: models.PeriodLast7Days, Status: models.FetchFailed, Error: "server returned 500", DurationMs: 1500, Count: 25},
		{ID: 1, StartedAt: started, RequestID: "abc", Period: models.PeriodLast7Days, Status: models.FetchCancelled, DurationMs: 40, Count: 25},
	})
	return state
}

func TestView_Empty(t *testing.T) {
	m := newTestModel(t, app.NewState())

	out := ansi.Strip(m.View())
	for _, want := range []string{"History", "All requests", "Time", "Status", "No fetches yet"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestView_Entries(t *testing.T) {
	m := newTestModel(t, seededState())

	out := ansi.Strip(m.View())
	for _, want := range []string{"Last 30 days", "25/25", "ok", "120 ms", "25/1,200", "c0ffee00", "failed", "1500 ms", "↳ server returned 500", "cancelled", "03/10/2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(out, "c0ffee00-1111") {
		t.Error("request ids should be shortened")
	}

	// Newest first.
	if strings.Index(out, "c0ffee00") > strings.Index(out, "bad00000") {
		t.Error("entries should be listed newest first")
	}
}

func TestToggleFilter(t *testing.T) {
	m := newTestModel(t, seededState())

	if got := len(m.Entries()); got != 3 {
		t.Fatalf("entries = %d, want 3", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	entries := m.Entries()
	if len(entries) != 1 || entries[0].Status != models.FetchFailed {
		t.Errorf("failures only = %+v", entries)
	}

	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Failures only") {
		t.Error("filter indicator should change")
	}
	if strings.Contains(out, "c0ffee00") {
		t.Error("successful requests should be hidden")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if len(m.Entries()) != 3 {
		t.Error("toggling again should show every entry")
	}
}

func TestEntries_DoesNotMutateState(t *testing.T) {
	state := seededState()
	m := newTestModel(t, state)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m.Entries()

	if got := state.RecentFetches(); len(got) != 3 || got[0].ID != 3 {
		t.Errorf("state changed: %+v", got)
	}
}

func TestUpdate_Misc(t *testing.T) {
	m := newTestModel(t, seededState())
	if tab, cmd := m.Update(app.FetchLogLoadedMsg{}); tab != m || cmd != nil {
		t.Error("FetchLogLoadedMsg should not produce commands")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if len(m.ShortHelp()) != 1 || len(m.FullHelp()) != 2 {
		t.Error("unexpected help bindings")
	}
}
