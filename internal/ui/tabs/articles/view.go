package articles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/render"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/styles"
)

// View renders the articles tab.
func (m *Model) View() string {
	var content string

	switch m.mode {
	case modeDetail:
		content = m.renderDetail()
	case modeConfirmDelete:
		content = m.renderConfirm()
	default:
		content = m.renderList()
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderList() string {
	articles := m.state.Articles()

	var rows []string

	title := styles.TitleStyle.Render(fmt.Sprintf("Articles (%d)", len(articles)))
	rows = append(rows, title, "")

	if len(articles) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No articles yet."))
		rows = append(rows, styles.HelpStyle.Render("Switch to the Writer tab to generate one."))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	selected := m.state.SelectedIndex()
	titleWidth := max(m.width-36, 20)

	for i, a := range articles {
		line := fmt.Sprintf("%s  %s %s",
			ansi.Truncate(displayTitle(a), titleWidth, "…"),
			metaColumn(a),
			scoreColumn(a),
		)

		if i == selected {
			rows = append(rows, styles.SelectedListItemStyle.Render("▸ "+line))
		} else {
			rows = append(rows, styles.ListItemStyle.Render("  "+line))
		}
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("enter open · d delete · x export"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderDetail() string {
	if m.current == nil {
		return styles.HelpStyle.Render("No article selected")
	}

	var rows []string
	rows = append(rows, styles.TitleStyle.Render(displayTitle(*m.current)))
	rows = append(rows, styles.HelpStyle.Render(detailMeta(*m.current)))
	rows = append(rows, "")
	rows = append(rows, m.viewport.View())
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("esc back · d delete · x export · j/k scroll"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderConfirm() string {
	title := "this article"
	if m.current != nil {
		title = fmt.Sprintf("%q", displayTitle(*m.current))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Delete article"),
		"",
		fmt.Sprintf("Delete %s? This cannot be undone.", title),
		"",
		styles.HelpStyle.Render("y confirm · n cancel"),
	)

	return styles.CardStyle.Render(content)
}

func (m *Model) setDetailContent() {
	if m.current == nil {
		return
	}

	body := render.Markdown(m.current)
	if body == "" {
		if m.current.HTML != nil && *m.current.HTML != "" {
			body = "This article only carries rendered HTML. Press x to export it."
		} else {
			body = "This article has no stored content."
		}
	}

	m.viewport.SetContent(lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(body))
	m.viewport.GotoTop()
}

func displayTitle(a models.Article) string {
	if strings.TrimSpace(a.Title) != "" {
		return a.Title
	}
	return "(untitled)"
}

func metaColumn(a models.Article) string {
	words := fmt.Sprintf("%d words", a.WordCount)
	reading := fmt.Sprintf("%d min", a.ReadingTimeMinutes)
	return styles.HelpStyle.Render(fmt.Sprintf("%-11s %-7s", words, reading))
}

func scoreColumn(a models.Article) string {
	if a.SeoScore == nil {
		return styles.HelpStyle.Render("  —")
	}
	score := *a.SeoScore
	return styles.GetScoreStyle(score).Render(fmt.Sprintf("%3.0f", score))
}

func detailMeta(a models.Article) string {
	parts := []string{
		fmt.Sprintf("%d words", a.WordCount),
		fmt.Sprintf("%d min read", a.ReadingTimeMinutes),
	}
	if a.SeoScore != nil {
		parts = append(parts, fmt.Sprintf("SEO %.0f", *a.SeoScore))
	}
	if a.Keyword != nil && *a.Keyword != "" {
		parts = append(parts, "keyword: "+*a.Keyword)
	}
	if a.CreatedAt != "" {
		parts = append(parts, a.CreatedAt)
	}
	return strings.Join(parts, " · ")
}
