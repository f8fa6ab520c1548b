// Package channels provides the channel engagement table tab.
package channels

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/engagement-dashboard-tui/internal/app"
	"github.com/j-veylop/engagement-dashboard-tui/internal/clock"
	"github.com/j-veylop/engagement-dashboard-tui/internal/engagement"
	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/components"
)

// FetchFunc loads one page of channel statistics.
type FetchFunc func(ctx context.Context, params models.QueryParams, period models.PeriodID) (*models.ChannelsResponse, error)

// Translator is the subset of the translation collaborator the tab needs.
type Translator interface {
	T(key string, args ...any) string
	ShortDate(t time.Time) string
	Number(n int) string
}

// LoadedMsg carries the outcome of one channels request.
type LoadedMsg struct {
	Params   models.QueryParams
	Response *models.ChannelsResponse
	Err      error
	seq      int
}

type keyMap struct {
	Chooser  key.Binding
	Cycle    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Close    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	More     key.Binding
	Fewer    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Chooser: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "choose period"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next period"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next page"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more per page"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer per page"),
		),
	}
}

// Model represents the channels tab state.
type Model struct {
	fetch FetchFunc
	tr    Translator
	clk   clock.Clock
	keys  keyMap

	period     models.PeriodID
	rng        models.Range
	pagination models.Pagination

	// params is the tuple of the latest request; seq identifies it.
	params    models.QueryParams
	seq       int
	requested bool
	cancel    context.CancelFunc
	loading   bool

	// data is nil until the first successful response.
	data *models.ChannelsResponse

	chooserOpen bool
	cursor      int

	spinner  components.LoadingSpinner
	viewport viewport.Model
	width    int
	height   int
}

// New creates the channels tab. The first request is issued by Init.
func New(fetch FetchFunc, tr Translator, clk clock.Clock) *Model {
	m := &Model{
		fetch:      fetch,
		tr:         tr,
		clk:        clk,
		keys:       defaultKeyMap(),
		period:     models.DefaultPeriod,
		pagination: models.NewPagination(),
		spinner:    components.NewSpinner(tr.T("Loading...")),
		viewport:   viewport.New(0, 0),
	}
	m.rng = m.period.Range(clk)
	return m
}

// Init issues the first request.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick(), m.query(false))
}

// Update handles messages for the channels tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		return m, m.handleLoaded(msg)

	case app.RefreshMsg, app.AutoRefreshMsg:
		return m, m.query(true)

	case app.TranslationsReloadedMsg:
		m.spinner.SetLabel(m.tr.T("Loading..."))
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.chooserOpen {
		n := len(models.PeriodOptions)
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + n) % n
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % n
		case key.Matches(msg, m.keys.Select):
			m.chooserOpen = false
			return m.setPeriod(models.PeriodOptions[m.cursor].ID)
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Chooser):
			m.chooserOpen = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Chooser):
		m.chooserOpen = true
		m.cursor = m.period.Index()
	case key.Matches(msg, m.keys.Cycle):
		return m.setPeriod(m.period.Next())
	case key.Matches(msg, m.keys.PrevPage):
		if m.pagination.HasPrev() {
			return m.setOffset(m.pagination.Prev())
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.data != nil && m.pagination.HasNext(m.data.Total) {
			return m.setOffset(m.pagination.Next())
		}
	case key.Matches(msg, m.keys.More):
		return m.setItemsPerPage(models.NextItemsPerPage(m.pagination.ItemsPerPage, 1))
	case key.Matches(msg, m.keys.Fewer):
		return m.setItemsPerPage(models.NextItemsPerPage(m.pagination.ItemsPerPage, -1))
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// setPeriod changes the period and re-derives its range.
func (m *Model) setPeriod(p models.PeriodID) tea.Cmd {
	if !p.Valid() {
		p = models.DefaultPeriod
	}
	if p == m.period {
		return nil
	}
	m.period = p
	m.rng = p.Range(m.clk)
	return m.query(false)
}

func (m *Model) setOffset(offset int) tea.Cmd {
	m.pagination.Current = offset
	return m.query(false)
}

func (m *Model) setItemsPerPage(n int) tea.Cmd {
	m.pagination.ItemsPerPage = n
	return m.query(false)
}

// query issues a request for the current tuple. Unless force is set, an
// unchanged tuple issues nothing. Any request still in flight is cancelled.
func (m *Model) query(force bool) tea.Cmd {
	params := models.NewQueryParams(m.rng, m.pagination)
	if !force && m.requested && params.Equal(m.params) {
		return nil
	}

	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())

	m.seq++
	m.params = params
	m.cancel = cancel
	m.requested = true
	m.loading = true

	seq, period, fetch := m.seq, m.period, m.fetch
	cmd := func() tea.Msg {
		resp, err := fetch(ctx, params, period)
		return LoadedMsg{Params: params, Response: resp, Err: err, seq: seq}
	}

	if m.data == nil {
		return cmd
	}
	// Stale rows stay visible; the toast tells the user a refetch runs.
	// The toast must be up before the response can take it down.
	label := m.tr.T("Loading...")
	return tea.Sequence(func() tea.Msg { return app.StartLoadingMsg{Message: label} }, cmd)
}

func (m *Model) handleLoaded(msg LoadedMsg) tea.Cmd {
	if msg.seq != m.seq {
		logger.Debug("dropping superseded channels response", "offset", msg.Params.Offset, "count", msg.Params.Count)
		return nil
	}

	m.loading = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	stop := func() tea.Msg { return app.StopLoadingMsg{} }

	if msg.Err != nil {
		if engagement.IsCanceled(msg.Err) {
			return stop
		}
		text := m.tr.T("Failed to load channels: %s", msg.Err.Error())
		return tea.Batch(stop, func() tea.Msg {
			return app.AddNotificationMsg{
				Type:     app.NotificationError,
				Message:  text,
				Duration: app.LongNotificationDuration,
			}
		})
	}

	m.data = msg.Response
	return stop
}

// Period returns the selected period.
func (m *Model) Period() models.PeriodID {
	return m.period
}

// Pagination returns the current pagination state.
func (m *Model) Pagination() models.Pagination {
	return m.pagination
}

// Params returns the tuple of the latest request.
func (m *Model) Params() models.QueryParams {
	return m.params
}

// Rows returns the display rows, nil while nothing has been loaded.
func (m *Model) Rows() []models.ChannelRow {
	return models.MapChannelRows(m.data)
}

// Loading reports whether a request is in flight.
func (m *Model) Loading() bool {
	return m.loading
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Chooser,
		m.keys.Cycle,
		m.keys.PrevPage,
		m.keys.NextPage,
		m.keys.More,
		m.keys.Fewer,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Chooser, m.keys.Cycle, m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Close},
		{m.keys.PrevPage, m.keys.NextPage, m.keys.More, m.keys.Fewer},
	}
}
