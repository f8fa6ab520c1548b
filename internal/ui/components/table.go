// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

const (
	// SkeletonRows is how many placeholder rows the table shows while loading.
	SkeletonRows = 5

	rankWidth     = 6
	dateWidth     = 12
	messagesWidth = 20
	minNameWidth  = 12
	cellGap       = 2
)

// Align controls how a cell is padded.
type Align int

const (
	// AlignLeft pads on the right.
	AlignLeft Align = iota
	// AlignRight pads on the left.
	AlignRight
)

// RowCells are the already formatted cell contents of one table line.
type RowCells struct {
	Rank     string
	Name     string
	Created  string
	Active   string
	Messages string
}

// TableLayout holds the column widths of the channels table.
type TableLayout struct {
	Rank     int
	Name     int
	Created  int
	Active   int
	Messages int
}

// NewTableLayout gives the name column whatever width the fixed columns leave.
func NewTableLayout(width int) TableLayout {
	fixed := rankWidth + 2*dateWidth + messagesWidth + 4*cellGap
	return TableLayout{
		Rank:     rankWidth,
		Name:     max(width-fixed, minNameWidth),
		Created:  dateWidth,
		Active:   dateWidth,
		Messages: messagesWidth,
	}
}

// Width returns the total rendered width of a line.
func (l TableLayout) Width() int {
	return l.Rank + l.Name + l.Created + l.Active + l.Messages + 4*cellGap
}

// Header renders the column titles.
func (l TableLayout) Header(cells RowCells) string {
	return styles.TableHeaderStyle.Render(l.line(cells))
}

// Row renders one populated line.
func (l TableLayout) Row(cells RowCells) string {
	cells.Rank = styles.RankStyle.Render(cells.Rank)
	return l.line(cells)
}

// SkeletonRow renders a loading placeholder line.
func (l TableLayout) SkeletonRow() string {
	block := func(w int) string {
		return styles.SkeletonStyle.Render(strings.Repeat("░", max(w, 1)))
	}
	return l.line(RowCells{
		Rank:     block(l.Rank - 2),
		Name:     block(l.Name * 2 / 3),
		Created:  block(l.Created - 2),
		Active:   block(l.Active - 2),
		Messages: block(l.Messages / 2),
	})
}

func (l TableLayout) line(c RowCells) string {
	gap := strings.Repeat(" ", cellGap)
	return strings.Join([]string{
		Fit(c.Rank, l.Rank, AlignLeft),
		Fit(c.Name, l.Name, AlignLeft),
		Fit(c.Created, l.Created, AlignLeft),
		Fit(c.Active, l.Active, AlignLeft),
		Fit(c.Messages, l.Messages, AlignRight),
	}, gap)
}

// Fit truncates s to width cells, ANSI-aware, and pads it to exactly width.
func Fit(s string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	pad := strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
	if align == AlignRight {
		return pad + s
	}
	return s + pad
}

// Growth renders the week-over-week variation indicator. Zero renders
// nothing.
func Growth(diff int) string {
	switch {
	case diff > 0:
		return styles.GrowthUpStyle.Render(fmt.Sprintf("▲ +%d", diff))
	case diff < 0:
		return styles.GrowthDownStyle.Render(fmt.Sprintf("▼ %d", diff))
	default:
		return ""
	}
}

// EmptyState renders the centered "no data" tile.
func EmptyState(message string, width int) string {
	return styles.EmptyStateStyle.Width(max(width, 1)).Align(lipgloss.Center).Render(message)
}
