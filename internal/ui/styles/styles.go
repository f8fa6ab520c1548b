// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the dashboard theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// SubTitleStyle is used for section headings.
var SubTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Secondary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpDescStyle styles help descriptions.
var HelpDescStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// LabelStyle styles field labels.
var LabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// ValueStyle styles field values.
var ValueStyle = lipgloss.NewStyle().
	Foreground(TextPrimary)

// SelectStyle is the closed period chooser.
var SelectStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// SelectOpenStyle is the period chooser while its options are shown.
var SelectOpenStyle = SelectStyle.
	BorderForeground(Primary)

// OptionStyle styles a chooser option.
var OptionStyle = lipgloss.NewStyle().
	PaddingLeft(2).
	Foreground(TextSecondary)

// SelectedOptionStyle styles the highlighted chooser option.
var SelectedOptionStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Foreground(Primary).
	Bold(true)

// TableHeaderStyle styles table headers.
var TableHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(Subtle)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// RankStyle styles the row rank column.
var RankStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// GlyphStyle styles the room type glyph.
var GlyphStyle = lipgloss.NewStyle().
	Foreground(Secondary)

// SkeletonStyle styles placeholder blocks shown while loading.
var SkeletonStyle = lipgloss.NewStyle().
	Foreground(BgLight)

// EmptyStateStyle styles the "no data" tile.
var EmptyStateStyle = lipgloss.NewStyle().
	Foreground(TextMuted).
	Italic(true).
	Padding(2, 0)

// GrowthUpStyle styles positive week-over-week variation.
var GrowthUpStyle = lipgloss.NewStyle().
	Foreground(Success)

// GrowthDownStyle styles negative week-over-week variation.
var GrowthDownStyle = lipgloss.NewStyle().
	Foreground(Error)

// PagerStyle styles the pagination footer.
var PagerStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	BorderStyle(lipgloss.NormalBorder()).
	BorderTop(true).
	BorderForeground(Subtle)

// PagerActiveStyle highlights the selected page size.
var PagerActiveStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// PagerDisabledStyle dims unavailable navigation arrows.
var PagerDisabledStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// WarningTextStyle for warning messages.
var WarningTextStyle = lipgloss.NewStyle().
	Foreground(Warning)

// InfoTextStyle for info messages.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// GetLatencyStyle colors a request duration.
func GetLatencyStyle(ms int64) lipgloss.Style {
	switch {
	case ms < 300:
		return SuccessTextStyle
	case ms < 1000:
		return WarningTextStyle
	default:
		return ErrorTextStyle
	}
}

// CenterHorizontal centers content horizontally within a given width.
func CenterHorizontal(content string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(content)
}

// CenterBoth centers content both horizontally and vertically.
func CenterBoth(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(content)
}
