// Package styles defines the visual styling for the application.
package styles

import "github.com/charmbracelet/lipgloss"

// Color definitions for the SEOScribe theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("36")  // Teal
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240") // Gray

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark  = lipgloss.Color("235")
	BgLight = lipgloss.Color("237")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
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

// ActiveTabStyle styles the currently selected tab.
var ActiveTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(Primary).
	Padding(0, 2).
	MarginRight(1)

// InactiveTabStyle styles non-selected tabs.
var InactiveTabStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Background(BgLight).
	Padding(0, 2).
	MarginRight(1)

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

// FocusedStyle is used for focused input elements.
var FocusedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// BlurredStyle is used for unfocused input elements.
var BlurredStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// FocusedBorderStyle creates a focused border.
var FocusedBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1)

// BlurredBorderStyle creates an unfocused border.
var BlurredBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// ToastStyle for floating notifications.
var ToastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1).
	MarginBottom(1)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpKeyStyle styles keyboard shortcut keys.
var HelpKeyStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// ListItemStyle styles list items.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedListItemStyle styles selected list items.
var SelectedListItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Foreground(Primary).
	Bold(true)

// PlanProStyle styles pro plan indicators.
var PlanProStyle = lipgloss.NewStyle().
	Foreground(Success).
	Bold(true)

// PlanFreeStyle styles free plan indicators.
var PlanFreeStyle = lipgloss.NewStyle().
	Foreground(Warning)

// PlanDemoStyle styles anonymous demo indicators.
var PlanDemoStyle = lipgloss.NewStyle().
	Foreground(Subtle)

// UsageOKStyle for usage well under the limit.
var UsageOKStyle = lipgloss.NewStyle().
	Foreground(Success)

// UsageNearStyle for usage close to the limit.
var UsageNearStyle = lipgloss.NewStyle().
	Foreground(Warning)

// UsageLockedStyle for a reached limit.
var UsageLockedStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// ScoreGoodStyle for strong SEO scores.
var ScoreGoodStyle = lipgloss.NewStyle().
	Foreground(Success)

// ScoreMediumStyle for middling SEO scores.
var ScoreMediumStyle = lipgloss.NewStyle().
	Foreground(Warning)

// ScoreLowStyle for weak SEO scores.
var ScoreLowStyle = lipgloss.NewStyle().
	Foreground(Error)

// StatusDraftStyle styles draft status badges.
var StatusDraftStyle = lipgloss.NewStyle().
	Foreground(Info)

// StatusPublishedStyle styles published status badges.
var StatusPublishedStyle = lipgloss.NewStyle().
	Foreground(Success)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// SuccessTextStyle for success messages.
var SuccessTextStyle = lipgloss.NewStyle().
	Foreground(Success)

// InfoTextStyle for informational messages and links.
var InfoTextStyle = lipgloss.NewStyle().
	Foreground(Info)

// GetUsageStyle returns the appropriate style for a used/limit ratio.
func GetUsageStyle(count, limit int) lipgloss.Style {
	if limit <= 0 {
		return UsageOKStyle
	}
	switch {
	case count >= limit:
		return UsageLockedStyle
	case float64(count)/float64(limit) >= 0.8:
		return UsageNearStyle
	default:
		return UsageOKStyle
	}
}

// GetPlanStyle returns the appropriate style for a plan label.
func GetPlanStyle(plan string) lipgloss.Style {
	switch plan {
	case "pro":
		return PlanProStyle
	case "free":
		return PlanFreeStyle
	default:
		return PlanDemoStyle
	}
}

// GetScoreStyle returns the appropriate style for an SEO score out of 100.
func GetScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return ScoreGoodStyle
	case score >= 50:
		return ScoreMediumStyle
	default:
		return ScoreLowStyle
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
