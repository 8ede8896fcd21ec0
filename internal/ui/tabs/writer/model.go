// Package writer provides the article generation form tab.
package writer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/components"
)

// formField represents which field is currently focused in the form.
type formField int

const (
	fieldTopic formField = iota
	fieldKeyword
	fieldTone
	fieldWordCount
	fieldSubmit

	fieldCount = 5
)

const defaultWordCount = 1200

// keyMap defines the key bindings specific to the writer tab.
type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Escape    key.Binding
}

// defaultKeyMap returns the default key bindings for the writer tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear form / leave"),
		),
	}
}

// Model represents the writer tab state.
type Model struct {
	state   *app.State
	spinner components.LoadingSpinner
	keys    keyMap
	width   int
	height  int

	focusedField formField
	topicInput   textinput.Model
	keywordInput textinput.Model
	toneInput    textinput.Model
	wordsInput   textinput.Model

	lastArticle *models.Article
	errorMsg    string
}

// New creates a new writer model.
func New(state *app.State) *Model {
	topicInput := textinput.New()
	topicInput.Placeholder = "What should the article be about?"
	topicInput.CharLimit = 200
	topicInput.Width = 50
	topicInput.Focus()

	keywordInput := textinput.New()
	keywordInput.Placeholder = "Target keyword (optional)"
	keywordInput.CharLimit = 100
	keywordInput.Width = 50

	toneInput := textinput.New()
	toneInput.Placeholder = "professional, casual, persuasive... (optional)"
	toneInput.CharLimit = 50
	toneInput.Width = 50

	wordsInput := textinput.New()
	wordsInput.Placeholder = strconv.Itoa(defaultWordCount)
	wordsInput.CharLimit = 5
	wordsInput.Width = 10

	return &Model{
		state:        state,
		spinner:      components.NewSpinner("Generating article..."),
		keys:         defaultKeyMap(),
		focusedField: fieldTopic,
		topicInput:   topicInput,
		keywordInput: keywordInput,
		toneInput:    toneInput,
		wordsInput:   wordsInput,
	}
}

// Init initializes the writer tab.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Init())
}

// Update handles messages for the writer tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state.Generating() {
			return m, nil
		}
		return m.handleKeyMsg(msg)

	case services.GenerationEvent:
		if !msg.Running {
			if msg.Err != nil {
				m.errorMsg = msg.Err.Error()
			} else if msg.Article != nil {
				m.lastArticle = msg.Article
				m.errorMsg = ""
				m.clearForm()
			}
		}

	case app.GenerateResultMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		// Escape clears a dirty form; on an empty form it leaves the tab
		// so the writer is never a dead end.
		if m.formEmpty() {
			m.errorMsg = ""
			return m, func() tea.Msg { return app.TabSwitchMsg{Tab: app.TabDashboard} }
		}
		m.clearForm()
		m.errorMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.focusedField = (m.focusedField + 1) % fieldCount
		m.updateFormFocus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.PrevField):
		m.focusedField = (m.focusedField - 1 + fieldCount) % fieldCount
		m.updateFormFocus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Submit):
		if m.focusedField == fieldSubmit {
			return m.submit()
		}
		m.focusedField = (m.focusedField + 1) % fieldCount
		m.updateFormFocus()
		return m, textinput.Blink
	}

	// Update the focused input
	var cmd tea.Cmd
	switch m.focusedField {
	case fieldTopic:
		m.topicInput, cmd = m.topicInput.Update(msg)
	case fieldKeyword:
		m.keywordInput, cmd = m.keywordInput.Update(msg)
	case fieldTone:
		m.toneInput, cmd = m.toneInput.Update(msg)
	case fieldWordCount:
		m.wordsInput, cmd = m.wordsInput.Update(msg)
	}

	return m, cmd
}

func (m *Model) submit() (app.Tab, tea.Cmd) {
	topic := strings.TrimSpace(m.topicInput.Value())
	if topic == "" {
		m.errorMsg = "Topic is required"
		m.focusedField = fieldTopic
		m.updateFormFocus()
		return m, textinput.Blink
	}

	words := defaultWordCount
	if v := strings.TrimSpace(m.wordsInput.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			m.errorMsg = "Word count must be a positive number"
			m.focusedField = fieldWordCount
			m.updateFormFocus()
			return m, textinput.Blink
		}
		words = n
	}

	req := models.DraftRequest{
		Topic:           topic,
		Keyword:         strings.TrimSpace(m.keywordInput.Value()),
		Tone:            strings.TrimSpace(m.toneInput.Value()),
		TargetWordCount: words,
	}

	m.errorMsg = ""
	return m, func() tea.Msg { return app.GenerateRequestMsg{Request: req} }
}

func (m *Model) formEmpty() bool {
	return strings.TrimSpace(m.topicInput.Value()) == "" &&
		strings.TrimSpace(m.keywordInput.Value()) == "" &&
		strings.TrimSpace(m.toneInput.Value()) == "" &&
		strings.TrimSpace(m.wordsInput.Value()) == ""
}

func (m *Model) clearForm() {
	m.topicInput.SetValue("")
	m.keywordInput.SetValue("")
	m.toneInput.SetValue("")
	m.wordsInput.SetValue("")
	m.focusedField = fieldTopic
	m.updateFormFocus()
}

// updateFormFocus updates which form field is focused.
func (m *Model) updateFormFocus() {
	m.topicInput.Blur()
	m.keywordInput.Blur()
	m.toneInput.Blur()
	m.wordsInput.Blur()

	switch m.focusedField {
	case fieldTopic:
		m.topicInput.Focus()
	case fieldKeyword:
		m.keywordInput.Focus()
	case fieldTone:
		m.toneInput.Focus()
	case fieldWordCount:
		m.wordsInput.Focus()
	}
}

// InputActive reports whether the form currently owns keyboard input.
// While a generation is running the form ignores keys, so global
// bindings apply again.
func (m *Model) InputActive() bool {
	return !m.state.Generating()
}

// SetSize sets the available size for the writer tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := min(max(width-30, 30), 70)
	m.topicInput.Width = inputWidth
	m.keywordInput.Width = inputWidth
	m.toneInput.Width = inputWidth
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextField,
		m.keys.Submit,
		m.keys.Escape,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NextField, m.keys.PrevField},
		{m.keys.Submit, m.keys.Escape},
	}
}
