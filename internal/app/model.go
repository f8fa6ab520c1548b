// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/engagement-dashboard-tui/internal/services"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabChannels is the ID for the channels table tab.
	TabChannels TabID = iota
	// TabHistory is the ID for the fetch history tab.
	TabHistory
	// TabInfo is the ID for the info tab.
	TabInfo
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabChannels:
		return "Channels"
	case TabHistory:
		return "History"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

var tabIDs = []TabID{TabChannels, TabHistory, TabInfo}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// KeyMap defines the global keybindings of the application.
type KeyMap struct {
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "channels")),
		Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "history")),
		Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "info")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3},
		{k.NextTab, k.PrevTab},
		{k.Refresh, k.Help, k.Quit},
	}
}

// Styles defines the application styles.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	NotificationSuccess lipgloss.Style
	NotificationError   lipgloss.Style
	NotificationWarning lipgloss.Style
	NotificationInfo    lipgloss.Style

	Content lipgloss.Style
	Toast   lipgloss.Style

	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	s := Styles{}
	s.TabBar = lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(styles.Subtle)
	s.ActiveTab = lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 2)
	s.InactiveTab = lipgloss.NewStyle().Foreground(styles.Subtle).Padding(0, 2)

	s.NotificationSuccess = styles.SuccessTextStyle.Padding(0, 1)
	s.NotificationError = styles.ErrorTextStyle.Bold(true).Padding(0, 1)
	s.NotificationWarning = styles.WarningTextStyle.Padding(0, 1)
	s.NotificationInfo = styles.InfoTextStyle.Padding(0, 1)

	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.Toast = styles.ToastStyle

	s.Title = styles.TitleStyle
	s.Subtle = lipgloss.NewStyle().Foreground(styles.Subtle)
	s.Highlight = lipgloss.NewStyle().Foreground(styles.Primary)
	return s
}

// Model is the main application model.
type Model struct {
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	spinner spinner.Model

	width  int
	height int

	showHelp    bool
	ready       bool
	autoRefresh time.Duration

	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model. mgr may be nil in tests.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	m := &Model{
		activeTab: TabChannels,
		tabs:      make([]Tab, len(tabIDs)),
		state:     NewState(),
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
	if mgr != nil {
		m.autoRefresh = mgr.Config().AutoRefreshInterval
	}
	m.refreshTabNames()
	return m
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// GetActiveTab returns the currently active tab ID.
func (m *Model) GetActiveTab() TabID {
	return m.activeTab
}

// IsReady returns true if the model is ready (window size received).
func (m *Model) IsReady() bool {
	return m.ready
}

func (m *Model) refreshTabNames() {
	names := make([]string, len(tabIDs))
	for i, id := range tabIDs {
		names[i] = id.String()
		if m.services != nil {
			names[i] = m.services.Translator().T(id.String())
		}
	}
	m.tabNames = names
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
		autoRefreshCmd(m.autoRefresh),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services), loadFetchLogCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model. Key presses go to the
// active tab only; every other message reaches all tabs so results of
// background work are never lost while another tab is shown.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return m, cmd
		}
		return m, m.updateTab(m.activeTab, msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	default:
		cmds = append(cmds, m.handleAppMsg(msg)...)
	}

	for _, id := range tabIDs {
		cmds = append(cmds, m.updateTab(id, msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		m.state.ClearExpiredNotifications()
		cmds = append(cmds, defaultTickCmd())
	case AutoRefreshMsg:
		cmds = append(cmds, autoRefreshCmd(m.autoRefresh))
	case SubscriptionEventMsg:
		m.eventChannel = msg.Channel
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEvent(msg.Event))
		if m.eventChannel != nil {
			cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
		}
	case FetchLogLoadedMsg:
		if msg.Error != nil {
			cmds = append(cmds, notifyWarningCmd(fmt.Sprintf("Fetch log unavailable: %v", msg.Error)))
		} else {
			m.state.SetFetchLog(msg.Stats, msg.Recent)
		}
	case TranslationsReloadedMsg:
		m.refreshTabNames()
	case AddNotificationMsg:
		id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
		if msg.Duration > 0 {
			cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
		}
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case StartLoadingMsg:
		m.state.SetLoadingNotification(msg.Message)
	case StopLoadingMsg:
		m.state.ClearLoadingNotification()
	}
	return cmds
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.FetchLoggedEvent:
		if m.services != nil {
			return loadFetchLogCmd(m.services)
		}

	case services.TranslationsReloadedEvent:
		text := "Translations reloaded"
		if m.services != nil {
			text = m.services.Translator().T(text)
		}
		return tea.Batch(
			func() tea.Msg { return TranslationsReloadedMsg{Locale: e.Locale} },
			notifyInfoCmd(text),
		)

	case services.ErrorEvent:
		return notifyErrorCmd(fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}
	return nil
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

// handleKeyMsg processes global keys and reports whether the key was consumed.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case m.showHelp:
		if key.Matches(msg, m.keymap.Escape) {
			m.showHelp = false
		}
		return nil, true

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabChannels)
		return nil, true

	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabHistory)
		return nil, true

	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabInfo)
		return nil, true

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % len(tabIDs)))
		return nil, true

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + len(tabIDs)) % len(tabIDs)))
		return nil, true

	case key.Matches(msg, m.keymap.Refresh):
		return func() tea.Msg { return RefreshMsg{} }, true
	}

	return nil, false
}

func (m *Model) switchTab(id TabID) {
	if int(id) < 0 || int(id) >= len(tabIDs) {
		return
	}
	m.activeTab = id
	m.updateTabSizes()
}

func (m *Model) updateTab(id TabID, msg tea.Msg) tea.Cmd {
	if int(id) >= len(m.tabs) || m.tabs[id] == nil {
		return nil
	}
	var cmd tea.Cmd
	m.tabs[id], cmd = m.tabs[id].Update(msg)
	return cmd
}

func (m *Model) updateTabSizes() {
	contentHeight := max(0, m.height-3)
	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		b.WriteString(m.tabs[m.activeTab].View())
	} else {
		b.WriteString(m.styles.Content.Render(m.styles.Subtle.Render(m.tabNames[m.activeTab])))
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if toasts := m.renderNotifications(); len(toasts) > 0 {
		return m.overlayToasts(mainView, toasts)
	}
	return mainView
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := strings.Split(mainView, "\n")
	overlayLines := strings.Split(overlay, "\n")

	overlayWidth := lipgloss.Width(overlay)
	y := max((m.height-len(overlayLines))/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	// Grow the view so the panel is never clipped on short content.
	for len(mainLines) < y+len(overlayLines) {
		mainLines = append(mainLines, "")
	}

	for i, overlayLine := range overlayLines {
		mainLine := mainLines[y+i]

		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")
		if w := lipgloss.Width(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		mainLines[y+i] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	tabs := make([]string, 0, len(m.tabNames))
	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	toasts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		var style lipgloss.Style
		var prefix string

		switch n.Type {
		case NotificationSuccess:
			style, prefix = m.styles.NotificationSuccess, "[OK]"
		case NotificationError:
			style, prefix = m.styles.NotificationError, "[ERR]"
		case NotificationWarning:
			style, prefix = m.styles.NotificationWarning, "[WARN]"
		case NotificationInfo:
			style, prefix = m.styles.NotificationInfo, "[INFO]"
		case NotificationLoading:
			style, prefix = m.styles.NotificationInfo, m.spinner.View()
		}

		content := style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}
	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := strings.Split(mainView, "\n")

	startX := max(m.width-lipgloss.Width(toastStack)-2, 0)
	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		if w := lipgloss.Width(mainLine); w < startX {
			mainLines[lineIdx] = mainLine + strings.Repeat(" ", startX-w) + toastLine
		} else {
			mainLines[lineIdx] = ansi.Truncate(mainLine, startX, "") + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderHelp() string {
	lines := []string{m.styles.Title.Render("Keyboard Shortcuts"), ""}

	lines = append(lines, m.styles.Highlight.Render("Navigation"))
	for _, b := range []key.Binding{m.keymap.Tab1, m.keymap.Tab2, m.keymap.Tab3, m.keymap.NextTab, m.keymap.PrevTab} {
		lines = append(lines, helpLine(b))
	}
	lines = append(lines, "")

	lines = append(lines, m.styles.Highlight.Render("Actions"))
	for _, b := range m.keymap.ShortHelp() {
		lines = append(lines, helpLine(b))
	}

	if int(m.activeTab) < len(m.tabs) && m.tabs[m.activeTab] != nil {
		if tabHelp := m.tabs[m.activeTab].ShortHelp(); len(tabHelp) > 0 {
			lines = append(lines, "", m.styles.Highlight.Render(m.tabNames[m.activeTab]))
			for _, b := range tabHelp {
				lines = append(lines, helpLine(b))
			}
		}
	}

	lines = append(lines, "", m.styles.Subtle.Render("Press ? or Esc to close"))
	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func helpLine(b key.Binding) string {
	return fmt.Sprintf("  %-11s %s", b.Help().Key, b.Help().Desc)
}
