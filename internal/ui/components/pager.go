package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

// PagerLabels are the localized texts of the pagination footer.
type PagerLabels struct {
	ItemsPerPage string
	Page         string
	Showing      string
}

// RenderPager draws the footer: page size choices, page arrows and the
// "showing results" summary.
func RenderPager(p models.Pagination, total int, labels PagerLabels, width int) string {
	sizes := make([]string, 0, len(models.ItemsPerPageOptions))
	for _, n := range models.ItemsPerPageOptions {
		if n == p.ItemsPerPage {
			sizes = append(sizes, styles.PagerActiveStyle.Render(fmt.Sprintf("[%d]", n)))
		} else {
			sizes = append(sizes, fmt.Sprintf(" %d ", n))
		}
	}
	left := labels.ItemsPerPage + " " + strings.Join(sizes, "")

	prev, next := "‹", "›"
	if !p.HasPrev() {
		prev = styles.PagerDisabledStyle.Render(prev)
	}
	if !p.HasNext(total) {
		next = styles.PagerDisabledStyle.Render(next)
	}
	middle := prev + " " + labels.Page + " " + next

	right := labels.Showing

	used := lipgloss.Width(left) + lipgloss.Width(middle) + lipgloss.Width(right)
	space := max(width-used, 4)
	gapLeft := strings.Repeat(" ", space/2)
	gapRight := strings.Repeat(" ", space-space/2)

	return styles.PagerStyle.Render(left + gapLeft + middle + gapRight + right)
}
