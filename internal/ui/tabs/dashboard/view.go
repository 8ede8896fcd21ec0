package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/components"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/styles"
)

// View renders the dashboard tab.
func (m *Model) View() string {
	if m.loading {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string

	sections = append(sections,
		m.renderHeader(),
		m.renderUsageCard(),
		m.renderActivityCard(),
		m.renderRecentCard(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("SEOScribe")
	subtitle := styles.HelpStyle.Render("AI article generation from your terminal")

	badge := components.RenderPlanBadge(m.state.Plan())

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge)

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderUsageCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("◈")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Usage")), "")

	lock, resetAt := m.state.Usage()

	if !m.state.SignedIn() {
		rows = append(rows, "  "+styles.HelpStyle.Render("Not signed in. One demo generation available."))
		rows = append(rows, "  "+styles.HelpStyle.Render("Sign in from the Account tab for more."))
	} else {
		barWidth := max(cardWidth-20, 20)
		rows = append(rows, "  "+components.RenderUsageBar(lock.Count, lock.Limit, barWidth))
		rows = append(rows, "")
		rows = append(rows, "  "+components.RenderUsageSummary(lock, resetAt))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderActivityCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("▲")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Generation Activity")), "")

	if m.errorMsg != "" {
		rows = append(rows, "  "+styles.ErrorTextStyle.Render("Error: "+m.errorMsg))
	} else if len(m.counts) == 0 || totalCount(m.counts) == 0 {
		rows = append(rows, "  "+styles.HelpStyle.Render("No generations recorded yet"))
	} else {
		data := make([]float64, len(m.counts))
		for i, c := range m.counts {
			data[i] = float64(c.Count)
		}

		chartWidth := max(cardWidth-12, 30)
		chart := components.RenderLineChart(data, chartWidth, 6,
			fmt.Sprintf("Articles generated, last %d days", len(m.counts)))

		for _, line := range strings.Split(chart, "\n") {
			rows = append(rows, "  "+line)
		}

		if m.stats != nil {
			rows = append(rows, "")
			rows = append(rows, fmt.Sprintf("  Total: %d articles, %d words",
				m.stats.TotalGenerations, m.stats.TotalWords))
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRecentCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string

	titleIcon := lipgloss.NewStyle().Foreground(styles.Primary).Render("≡")
	rows = append(rows, fmt.Sprintf("%s %s", titleIcon, styles.CardTitleStyle.Render("Recent Generations")), "")

	if len(m.recent) == 0 {
		rows = append(rows, "  "+styles.HelpStyle.Render("Nothing generated yet. Press n to write your first article."))
	} else {
		for _, rec := range m.recent {
			status := styles.SuccessTextStyle.Render("ok")
			if rec.Status != "ok" {
				status = styles.ErrorTextStyle.Render("err")
			}

			topic := ansi.Truncate(rec.Topic, max(cardWidth-38, 16), "…")
			line := fmt.Sprintf("  %s  %-5s %s  %s",
				rec.Timestamp.Format("Jan 02 15:04"),
				rec.Plan,
				status,
				topic,
			)
			rows = append(rows, line)
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func totalCount(counts []models.DailyCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
