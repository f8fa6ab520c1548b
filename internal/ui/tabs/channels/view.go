package channels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

const minTableWidth = 60

// View renders the period chooser, the table and the pagination footer.
func (m *Model) View() string {
	width := max(m.width-6, minTableWidth)
	layout := components.NewTableLayout(width)

	top := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderChooser(),
		layout.Header(components.RowCells{
			Rank:     m.tr.T("#"),
			Name:     m.tr.T("Channel"),
			Created:  m.tr.T("Created"),
			Active:   m.tr.T("Last active"),
			Messages: m.tr.T("Messages sent"),
		}),
	)
	body := m.renderBody(layout)
	footer := m.renderFooter(layout.Width())

	bodyHeight := m.height - 2 - lipgloss.Height(top) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = lipgloss.Height(body)
	}
	m.viewport.Width = layout.Width()
	m.viewport.Height = bodyHeight
	m.viewport.SetContent(body)

	return styles.DocStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, top, m.viewport.View(), footer),
	)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render(m.tr.T("Channels"))
	if !m.loading {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", m.spinner.ViewWithLabel())
}

func (m *Model) renderChooser() string {
	labels := make([]string, len(models.PeriodOptions))
	for i, opt := range models.PeriodOptions {
		labels[i] = m.tr.T(opt.LabelKey)
	}
	return components.RenderSelect(m.tr.T("Period"), labels, m.period.Index(), m.cursor, m.chooserOpen)
}

// renderBody draws one of the three table states.
func (m *Model) renderBody(layout components.TableLayout) string {
	rows := m.Rows()

	switch {
	case rows == nil:
		lines := make([]string, components.SkeletonRows)
		for i := range lines {
			lines[i] = layout.SkeletonRow()
		}
		return strings.Join(lines, "\n")

	case len(rows) == 0:
		return components.EmptyState(m.tr.T("No data found"), layout.Width())

	default:
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = layout.Row(m.rowCells(i, row))
		}
		return strings.Join(lines, "\n")
	}
}

func (m *Model) rowCells(i int, row models.ChannelRow) components.RowCells {
	name := row.DisplayName
	if glyph := row.Type.Glyph(); glyph != "" {
		name = styles.GlyphStyle.Render(glyph) + " " + name
	}

	messages := m.tr.Number(row.MessagesCount)
	if growth := components.Growth(row.MessagesVariation); growth != "" {
		messages += " " + growth
	}

	return components.RowCells{
		Rank:     fmt.Sprintf("%d.", i+1),
		Name:     name,
		Created:  m.shortDate(row.CreatedAt),
		Active:   m.shortDate(row.UpdatedAt),
		Messages: messages,
	}
}

func (m *Model) shortDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return m.tr.ShortDate(t)
}

func (m *Model) renderFooter(width int) string {
	total := 0
	if m.data != nil {
		total = m.data.Total
	}

	from, to, of := m.pagination.ShowingRange(total)
	page, pages := m.pagination.Page(total)

	return components.RenderPager(m.pagination, total, components.PagerLabels{
		ItemsPerPage: m.tr.T("Items per page:"),
		Page:         m.tr.T("Page %s of %s", m.tr.Number(page), m.tr.Number(pages)),
		Showing:      m.tr.T("Showing results %s - %s of %s", m.tr.Number(from), m.tr.Number(to), m.tr.Number(of)),
	}, width)
}
