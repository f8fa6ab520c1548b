// Package history provides the history tab listing recent channels requests.
package history

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/engagement-dashboard-tui/internal/app"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

// Translator is the subset of the translation collaborator the tab needs.
type Translator interface {
	T(key string, args ...any) string
	ShortDate(t time.Time) string
	Number(n int) string
}

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	ToggleFilter key.Binding
	Up           key.Binding
	Down         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle failures only"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	tr       Translator
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model

	failuresOnly bool
}

// New creates a new history model. Entries come from the fetch log the
// application shell keeps in state.
func New(state *app.State, tr Translator) *Model {
	return &Model{
		state:    state,
		tr:       tr,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.FetchLogLoadedMsg:
		if m.viewport.YOffset > 0 {
			// Keep the newest entry in sight after a reload.
			m.viewport.GotoTop()
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ToggleFilter) {
			m.failuresOnly = !m.failuresOnly
			m.viewport.GotoTop()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Entries returns the fetch log entries shown under the current filter,
// newest first.
func (m *Model) Entries() []models.FetchRecord {
	recent := m.state.RecentFetches()
	if !m.failuresOnly {
		return recent
	}
	out := recent[:0]
	for _, r := range recent {
		if r.Status == models.FetchFailed {
			out = append(out, r)
		}
	}
	return out
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleFilter}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleFilter},
		{m.keys.Up, m.keys.Down},
	}
}
