package writer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/frank-couchman/seoscribe-tui/internal/ui/components"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/styles"
)

// View renders the writer tab.
func (m *Model) View() string {
	if m.state.Generating() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var rows []string

	rows = append(rows, styles.TitleStyle.Render("New Article"), "")
	rows = append(rows, m.renderGateLine(), "")

	rows = append(rows, m.renderField(fieldTopic, "Topic", m.topicInput.View()))
	rows = append(rows, m.renderField(fieldKeyword, "Keyword", m.keywordInput.View()))
	rows = append(rows, m.renderField(fieldTone, "Tone", m.toneInput.View()))
	rows = append(rows, m.renderField(fieldWordCount, "Words", m.wordsInput.View()))
	rows = append(rows, "")
	rows = append(rows, m.renderSubmit())

	if m.errorMsg != "" {
		rows = append(rows, "", styles.ErrorTextStyle.Render(m.errorMsg))
	}

	if m.lastArticle != nil {
		rows = append(rows, "", styles.SuccessTextStyle.Render(
			fmt.Sprintf("Last generated: %s (%d words)", m.lastArticle.Title, m.lastArticle.WordCount)))
	}

	rows = append(rows, "", styles.HelpStyle.Render("tab next field · enter generate · esc clear"))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderGateLine() string {
	if !m.state.SignedIn() {
		return styles.HelpStyle.Render("Not signed in: one free demo generation, no account needed.")
	}

	lock, resetAt := m.state.Usage()
	return components.RenderUsageSummary(lock, resetAt)
}

func (m *Model) renderField(field formField, label, input string) string {
	labelStyle := styles.BlurredStyle
	if m.focusedField == field {
		labelStyle = styles.FocusedStyle
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-8s", label)), input)
}

func (m *Model) renderSubmit() string {
	if m.focusedField == fieldSubmit {
		return styles.FocusedBorderStyle.Render(" Generate ")
	}
	return styles.BlurredBorderStyle.Render(" Generate ")
}
