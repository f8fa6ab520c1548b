package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/engagement-dashboard-tui/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption, empty string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(empty)
	}

	// Ensure minimum dimensions
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue),
	)
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Keep the newest values when there are more than fit.
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v / maxVal) * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// RenderRateBar draws a success rate bar followed by the percentage.
func RenderRateBar(percent float64, width int) string {
	bar := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(max(width-8, 5)),
		progress.WithoutPercentage(),
	)

	style := styles.SuccessTextStyle
	switch {
	case percent < 50:
		style = styles.ErrorTextStyle
	case percent < 90:
		style = styles.WarningTextStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		bar.ViewAs(percent/100),
		" ",
		style.Render(fmt.Sprintf("%.0f%%", percent)),
	)
}
