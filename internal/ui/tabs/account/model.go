// Package account provides the session and billing tab.
package account

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
)

// keyMap defines the key bindings specific to the account tab.
type keyMap struct {
	SignIn  key.Binding
	SignOut key.Binding
	Upgrade key.Binding
	Billing key.Binding
	Escape  key.Binding
}

// defaultKeyMap returns the default key bindings for the account tab.
func defaultKeyMap() keyMap {
	return keyMap{
		SignIn: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "sign in"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sign out"),
		),
		Upgrade: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upgrade link"),
		),
		Billing: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "billing link"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// checkoutURLMsg carries a checkout or billing portal URL.
type checkoutURLMsg struct {
	url string
	err error
}

// Model represents the account tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	keys     keyMap
	width    int
	height   int

	entering   bool
	emailInput textinput.Model
	linkURL    string
	sentTo     string
}

// New creates a new account model.
func New(state *app.State, svc *services.Manager) *Model {
	emailInput := textinput.New()
	emailInput.Placeholder = "you@example.com"
	emailInput.CharLimit = 100
	emailInput.Width = 40

	return &Model{
		state:      state,
		services:   svc,
		keys:       defaultKeyMap(),
		emailInput: emailInput,
	}
}

// Init initializes the account tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the account tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if m.entering {
		return m.updateEmailForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case app.MagicLinkSentMsg:
		if msg.Err == nil {
			m.sentTo = msg.Email
		}

	case checkoutURLMsg:
		if msg.err != nil {
			return m, func() tea.Msg {
				return app.ShowNotificationMsg{
					Type:    app.NotificationError,
					Message: "Could not create link: " + msg.err.Error(),
				}
			}
		}
		m.linkURL = msg.url
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SignIn):
		if !m.state.SignedIn() {
			m.entering = true
			m.emailInput.Focus()
			m.emailInput.SetValue("")
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.SignOut):
		if m.state.SignedIn() {
			m.sentTo = ""
			m.linkURL = ""
			return m, func() tea.Msg { return app.SignOutRequestMsg{} }
		}

	case key.Matches(msg, m.keys.Upgrade):
		if m.state.SignedIn() {
			return m, m.checkoutCmd()
		}

	case key.Matches(msg, m.keys.Billing):
		if m.state.SignedIn() {
			return m, m.portalCmd()
		}
	}

	return m, nil
}

func (m *Model) updateEmailForm(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.entering = false
			m.emailInput.Blur()
			return m, nil

		case "enter":
			email := strings.TrimSpace(m.emailInput.Value())
			if email == "" || !strings.Contains(email, "@") {
				return m, func() tea.Msg {
					return app.ShowNotificationMsg{
						Type:    app.NotificationWarning,
						Message: "Enter a valid email address",
					}
				}
			}
			m.entering = false
			m.emailInput.Blur()
			return m, func() tea.Msg { return app.MagicLinkRequestMsg{Email: email} }
		}
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

func (m *Model) checkoutCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services == nil {
			return checkoutURLMsg{err: errNoServices}
		}
		ctx, cancel := m.services.RequestContext()
		defer cancel()

		url, err := m.services.Client().CreateCheckoutSession(ctx, "", "")
		return checkoutURLMsg{url: url, err: err}
	}
}

func (m *Model) portalCmd() tea.Cmd {
	return func() tea.Msg {
		if m.services == nil {
			return checkoutURLMsg{err: errNoServices}
		}
		ctx, cancel := m.services.RequestContext()
		defer cancel()

		url, err := m.services.Client().CreatePortalSession(ctx, "")
		return checkoutURLMsg{url: url, err: err}
	}
}

var errNoServices = serviceError("services not initialized")

type serviceError string

func (e serviceError) Error() string { return string(e) }

// InputActive reports whether the email form currently owns keyboard input.
func (m *Model) InputActive() bool {
	return m.entering
}

// SetSize sets the available size for the account tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.state.SignedIn() {
		return []key.Binding{
			m.keys.Upgrade,
			m.keys.Billing,
			m.keys.SignOut,
		}
	}
	return []key.Binding{m.keys.SignIn}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.SignIn, m.keys.SignOut},
		{m.keys.Upgrade, m.keys.Billing},
	}
}
