// Package dashboard provides the overview tab with usage and generation activity.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
	"github.com/frank-couchman/seoscribe-tui/internal/ui/components"
)

const activityDays = 7

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	NewArticle key.Binding
	Refresh    key.Binding
	Up         key.Binding
	Down       key.Binding
}

// defaultKeyMap returns the default key bindings for the dashboard tab.
func defaultKeyMap() keyMap {
	return keyMap{
		NewArticle: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new article"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// activityLoadedMsg is sent when generation history data is loaded.
type activityLoadedMsg struct {
	counts []models.DailyCount
	recent []models.GenerationRecord
	stats  *models.GenerationStats
}

// activityErrorMsg is sent when loading generation history fails.
type activityErrorMsg struct {
	err string
}

// Model represents the dashboard tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	spinner  components.LoadingSpinner
	keys     keyMap
	viewport viewport.Model
	width    int
	height   int

	counts   []models.DailyCount
	recent   []models.GenerationRecord
	stats    *models.GenerationStats
	loading  bool
	errorMsg string
}

// New creates a new dashboard model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		spinner:  components.NewSpinner("Loading activity..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spinner.Init(), m.loadActivityCmd())
}

// loadActivityCmd creates a command to load generation activity.
func (m *Model) loadActivityCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services == nil || m.services.Database() == nil {
			return activityLoadedMsg{}
		}

		db := m.services.Database()

		counts, err := db.DailyCounts(activityDays)
		if err != nil {
			return activityErrorMsg{err: err.Error()}
		}
		recent, err := db.RecentGenerations(5)
		if err != nil {
			return activityErrorMsg{err: err.Error()}
		}
		stats, err := db.Stats()
		if err != nil {
			return activityErrorMsg{err: err.Error()}
		}

		return activityLoadedMsg{counts: counts, recent: recent, stats: stats}
	}
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case activityLoadedMsg:
		m.counts = msg.counts
		m.recent = msg.recent
		m.stats = msg.stats
		m.loading = false
		m.errorMsg = ""

	case activityErrorMsg:
		m.loading = false
		m.errorMsg = msg.err

	case app.TabSwitchMsg:
		if msg.Tab == app.TabDashboard && !m.loading {
			m.loading = true
			cmds = append(cmds, m.loadActivityCmd())
		}

	case services.GenerationEvent:
		if !msg.Running && msg.Err == nil {
			cmds = append(cmds, m.loadActivityCmd())
		}

	case app.RefreshDoneMsg:
		cmds = append(cmds, m.loadActivityCmd())

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NewArticle):
		return func() tea.Msg { return app.TabSwitchMsg{Tab: app.TabWriter} }

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m.loadActivityCmd()

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
}

// InputActive reports whether the tab owns keyboard input. The dashboard
// has no text fields.
func (m *Model) InputActive() bool {
	return false
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NewArticle,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.NewArticle, m.keys.Refresh},
		{m.keys.Up, m.keys.Down},
	}
}
