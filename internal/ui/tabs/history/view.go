package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

const (
	timeWidth     = 20
	periodWidth   = 16
	pageWidth     = 10
	statusWidth   = 12
	durationWidth = 10
	resultsWidth  = 12
	requestWidth  = 10
	columnGap     = "  "
)

// View renders the history tab.
func (m *Model) View() string {
	entries := m.Entries()

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(entries),
		styles.TableHeaderStyle.Render(m.line(
			m.tr.T("Time"), m.tr.T("Period"), "offset/count", m.tr.T("Status"),
			m.tr.T("Duration"), m.tr.T("Results"), m.tr.T("Request"),
		)),
	)

	var body string
	if len(entries) == 0 {
		body = components.EmptyState(m.tr.T("No fetches yet"), lipgloss.Width(header))
	} else {
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = m.renderEntry(e)
		}
		body = strings.Join(lines, "\n")
	}

	height := m.height - 2 - lipgloss.Height(header)
	if height < 1 {
		height = lipgloss.Height(body)
	}
	m.viewport.Width = max(m.width-6, lipgloss.Width(header))
	m.viewport.Height = height
	m.viewport.SetContent(body)

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View()))
}

func (m *Model) renderHeader(entries []models.FetchRecord) string {
	title := styles.TitleStyle.Render(m.tr.T("History"))

	filter := m.tr.T("All requests")
	if m.failuresOnly {
		filter = m.tr.T("Failures only")
	}
	indicator := styles.SelectStyle.Render(fmt.Sprintf("[t] %s", filter))

	top := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", indicator)

	durations := make([]float64, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		durations = append(durations, float64(entries[i].DurationMs))
	}
	if spark := components.RenderSparkline(durations, 60); spark != "" {
		return lipgloss.JoinVertical(lipgloss.Left, top, styles.InfoTextStyle.Render(spark), "")
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, "")
}

func (m *Model) renderEntry(e models.FetchRecord) string {
	var status string
	switch e.Status {
	case models.FetchOK:
		status = styles.SuccessTextStyle.Render(m.tr.T("ok"))
	case models.FetchFailed:
		status = styles.ErrorTextStyle.Render(m.tr.T("failed"))
	default:
		status = styles.HelpStyle.Render(m.tr.T(string(e.Status)))
	}

	results := "-"
	if e.Status == models.FetchOK {
		results = fmt.Sprintf("%s/%s", m.tr.Number(e.Channels), m.tr.Number(e.Total))
	}

	request := e.RequestID
	if len(request) > 8 {
		request = request[:8]
	}

	line := m.line(
		m.tr.ShortDate(e.StartedAt)+" "+e.StartedAt.Local().Format("15:04:05"),
		m.tr.T(e.Period.LabelKey()),
		fmt.Sprintf("%d/%d", e.Offset, e.Count),
		status,
		styles.GetLatencyStyle(e.DurationMs).Render(fmt.Sprintf("%d ms", e.DurationMs)),
		results,
		request,
	)
	if e.Error != "" {
		line += "\n" + styles.ErrorTextStyle.Render("  ↳ "+e.Error)
	}
	return line
}

func (m *Model) line(when, period, page, status, duration, results, request string) string {
	return strings.Join([]string{
		components.Fit(when, timeWidth, components.AlignLeft),
		components.Fit(period, periodWidth, components.AlignLeft),
		components.Fit(page, pageWidth, components.AlignRight),
		components.Fit(status, statusWidth, components.AlignLeft),
		components.Fit(duration, durationWidth, components.AlignRight),
		components.Fit(results, resultsWidth, components.AlignRight),
		components.Fit(request, requestWidth, components.AlignLeft),
	}, columnGap)
}
