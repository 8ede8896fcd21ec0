// Package articles provides the cached article browser tab.
package articles

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

// keyMap defines the key bindings specific to the articles tab.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Delete  key.Binding
	Export  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// defaultKeyMap returns the default key bindings for the articles tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open article"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export html"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// viewMode is the current presentation of the articles tab.
type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeConfirmDelete
)

// Model represents the articles tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	mode    viewMode
	current *models.Article
}

// New creates a new articles model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the articles tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the articles tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case app.DeleteArticleDoneMsg:
		if msg.Err == nil && m.current != nil && m.current.ID == msg.ID {
			m.current = nil
			m.mode = modeList
		}
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch m.mode {
	case modeConfirmDelete:
		return m.handleConfirmKeys(msg)
	case modeDetail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleListKeys(msg)
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	count := m.state.ArticleCount()

	switch {
	case key.Matches(msg, m.keys.Up):
		if count > 0 {
			m.state.SetSelectedIndex(m.state.SelectedIndex() - 1)
		}

	case key.Matches(msg, m.keys.Down):
		if count > 0 {
			m.state.SetSelectedIndex(m.state.SelectedIndex() + 1)
		}

	case key.Matches(msg, m.keys.Open):
		if a := m.state.SelectedArticle(); a != nil {
			m.current = a
			m.mode = modeDetail
			m.setDetailContent()
		}

	case key.Matches(msg, m.keys.Delete):
		if a := m.state.SelectedArticle(); a != nil {
			m.current = a
			m.mode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.Export):
		if a := m.state.SelectedArticle(); a != nil {
			id := a.ID
			return m, func() tea.Msg { return app.ExportArticleRequestMsg{ID: id} }
		}
	}

	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.current = nil

	case key.Matches(msg, m.keys.Delete):
		m.mode = modeConfirmDelete

	case key.Matches(msg, m.keys.Export):
		if m.current != nil {
			id := m.current.ID
			return m, func() tea.Msg { return app.ExportArticleRequestMsg{ID: id} }
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeList
		if m.current != nil {
			id := m.current.ID
			m.current = nil
			return m, func() tea.Msg { return app.DeleteArticleRequestMsg{ID: id} }
		}

	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.current = nil
	}

	return m, nil
}

// InputActive reports whether the tab owns keyboard input. The browser
// has no text fields.
func (m *Model) InputActive() bool {
	return false
}

// SetSize sets the available size for the articles tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-6, 3)
	if m.mode == modeDetail {
		m.setDetailContent()
	}
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Open,
		m.keys.Delete,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Open},
		{m.keys.Delete, m.keys.Export, m.keys.Back},
	}
}
