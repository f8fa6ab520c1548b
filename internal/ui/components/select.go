package components

import (
	"strings"

	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

// RenderSelect draws a dropdown labelled label showing options[selected].
// When open, every option is listed with cursor highlighted.
func RenderSelect(label string, options []string, selected, cursor int, open bool) string {
	current := ""
	if selected >= 0 && selected < len(options) {
		current = options[selected]
	}

	arrow := "▾"
	if open {
		arrow = "▴"
	}

	head := styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(current) + " " + arrow
	if !open {
		return styles.SelectStyle.Render(head)
	}

	lines := []string{head}
	for i, opt := range options {
		if i == cursor {
			lines = append(lines, styles.SelectedOptionStyle.Render("› "+opt))
		} else {
			lines = append(lines, styles.OptionStyle.Render(opt))
		}
	}
	return styles.SelectOpenStyle.Render(strings.Join(lines, "\n"))
}
