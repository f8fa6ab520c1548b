package info

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/engagement-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(m.tr.T("Info")),
		m.renderConfigCard(),
		m.renderFetchCard(),
	)

	m.viewport.SetContent(content)
	if m.viewport.Height == 0 {
		return styles.DocStyle.Render(content)
	}
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

// renderConfigCard renders the configuration and version card.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render(m.tr.T("Configuration"))}

	if m.config != nil {
		refresh := m.tr.T("Off")
		if m.config.AutoRefreshInterval > 0 {
			refresh = m.config.AutoRefreshInterval.String()
		}
		rows = append(rows,
			m.renderRow(m.tr.T("Server"), m.config.ServerURL),
			m.renderRow(m.tr.T("Auto refresh"), refresh),
		)
	}
	rows = append(rows,
		m.renderRow(m.tr.T("Locale"), m.locale()),
		m.renderRow(m.tr.T("Database"), m.database()),
	)

	b := version.Get()
	rows = append(rows, m.renderRow(m.tr.T("Version"), fmt.Sprintf("%s (%s, %s)", b.Version, b.Commit, b.Platform)))

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderFetchCard renders request statistics and the latency chart.
func (m *Model) renderFetchCard() string {
	rows := []string{styles.CardTitleStyle.Render(m.tr.T("Fetch log"))}

	stats := m.state.FetchStats()
	if stats == nil || stats.TotalFetches == 0 {
		rows = append(rows, styles.HelpStyle.Render(m.tr.T("No fetches yet")))
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	last := m.tr.T("Never")
	if !stats.LastFetch.IsZero() {
		last = humanize.Time(stats.LastFetch)
	}

	inner := m.cardWidth() - 6
	rows = append(rows,
		m.renderRow(m.tr.T("Requests"), humanize.Comma(int64(stats.TotalFetches))),
		m.renderRow(m.tr.T("Failed"), humanize.Comma(int64(stats.FailedFetches))),
		m.renderRow(m.tr.T("Average latency"), styles.GetLatencyStyle(int64(stats.AvgDurationMs)).Render(fmt.Sprintf("%.0f ms", stats.AvgDurationMs))),
		m.renderRow(m.tr.T("Last fetch"), last),
		m.renderRow(m.tr.T("Success rate"), components.RenderRateBar(stats.SuccessRate(), inner-20)),
		"",
		components.RenderLineChart(latencies(m.state.RecentFetches()), inner-16, 6, m.tr.T("Latency (ms)"), m.tr.T("No fetches yet")),
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// locale shows the active catalog followed by every loaded one.
func (m *Model) locale() string {
	return fmt.Sprintf("%s (%s)", m.tr.Locale(), strings.Join(m.tr.Locales(), ", "))
}

func (m *Model) database() string {
	if m.store == nil {
		if m.config != nil {
			return m.config.DatabasePath
		}
		return "-"
	}
	v, err := m.store.SchemaVersion()
	if err != nil {
		return m.store.Path()
	}
	return fmt.Sprintf("%s (%s)", m.store.Path(), m.tr.T("schema v%s", v))
}

func (m *Model) renderRow(label, value string) string {
	return styles.LabelStyle.Width(20).Render(label+":") + " " + styles.ValueStyle.Render(value)
}

// latencies returns request durations oldest first. Cancelled requests
// are left out.
func latencies(recent []models.FetchRecord) []float64 {
	out := make([]float64, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].Status == models.FetchCancelled {
			continue
		}
		out = append(out, float64(recent[i].DurationMs))
	}
	return out
}
