// Package info provides the info tab: configuration, build metadata and
// fetch log statistics.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/engagement-dashboard-tui/internal/app"
	"github.com/j-veylop/engagement-dashboard-tui/internal/config"
)

// Translator looks up localized labels.
type Translator interface {
	T(key string, args ...any) string
	Locale() string
	Locales() []string
}

// Store describes the fetch log database.
type Store interface {
	Path() string
	SchemaVersion() (int64, error)
}

type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
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

// Model represents the info tab state.
type Model struct {
	state    *app.State
	config   *config.Config
	store    Store
	tr       Translator
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new info model. store may be nil.
func New(state *app.State, cfg *config.Config, store Store, tr Translator) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		store:    store,
		tr:       tr,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info tab. The fetch log itself is
// loaded by the application shell into the shared state.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
