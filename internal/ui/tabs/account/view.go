package account

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/components"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/styles"
)

// View renders the account tab.
func (m *Model) View() string {
	var content string

	switch {
	case m.entering:
		content = m.renderEmailForm()
	case m.state.SignedIn():
		content = m.renderProfile()
	default:
		content = m.renderSignedOut()
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderSignedOut() string {
	var rows []string

	rows = append(rows, styles.TitleStyle.Render("Account"), "")
	rows = append(rows, "You are not signed in.")
	rows = append(rows, "")

	if m.sentTo != "" {
		rows = append(rows, styles.SuccessTextStyle.Render("Magic link sent to "+m.sentTo))
		rows = append(rows, styles.HelpStyle.Render("Open the link in your email, then press r to refresh."))
		rows = append(rows, "")
	}

	rows = append(rows, styles.HelpStyle.Render("Anonymous users get one free demo generation."))
	rows = append(rows, styles.HelpStyle.Render("Sign in for 1 article per month, or Pro for 15 per day."))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("s sign in with email"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderEmailForm() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Sign in"),
		"",
		"We'll email you a magic link. No password needed.",
		"",
		m.emailInput.View(),
		"",
		styles.HelpStyle.Render("enter send link · esc cancel"),
	)
	return styles.CardStyle.Render(content)
}

func (m *Model) renderProfile() string {
	profile := m.state.Profile()

	var rows []string

	badge := components.RenderPlanBadge(m.state.Plan())
	title := lipgloss.JoinHorizontal(lipgloss.Center, styles.TitleStyle.Render("Account"), "  ", badge)
	rows = append(rows, title, "")

	if profile != nil {
		rows = append(rows, m.renderProfileDetails(profile)...)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Loading profile..."))
	}

	rows = append(rows, "")

	lock, resetAt := m.state.Usage()
	rows = append(rows, components.RenderUsageSummary(lock, resetAt))
	rows = append(rows, "")

	if m.linkURL != "" {
		rows = append(rows, styles.SubTitleStyle.Render("Open in your browser:"))
		rows = append(rows, styles.InfoTextStyle.Render(m.linkURL))
		rows = append(rows, "")
	}

	if m.state.Plan() == "pro" {
		rows = append(rows, styles.HelpStyle.Render("b billing portal · o sign out"))
	} else {
		rows = append(rows, styles.HelpStyle.Render("u upgrade to Pro · b billing portal · o sign out"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderProfileDetails(profile *models.Profile) []string {
	var rows []string

	if profile.Email != "" {
		rows = append(rows, fmt.Sprintf("Email:  %s", profile.Email))
	}
	rows = append(rows, fmt.Sprintf("Plan:   %s", m.state.Plan()))
	rows = append(rows, fmt.Sprintf("Server usage: %d today, %d this month",
		profile.Usage.Today.Generations, profile.Usage.Month.Generations))
	if profile.ProTrialRemaining > 0 {
		rows = append(rows, fmt.Sprintf("Pro trial: %d generations left", profile.ProTrialRemaining))
	}

	return rows
}
