package account

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_View_SignedOut(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "not signed in") {
		t.Error("View should show signed-out state")
	}
	if !strings.Contains(view, "demo generation") {
		t.Error("View should explain the demo")
	}
}

func TestModel_SignInFlow(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 24)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if !m.entering {
		t.Fatal("s should open the email form")
	}

	view := m.View()
	if !strings.Contains(view, "magic link") {
		t.Error("Form should mention the magic link")
	}

	typeString(m, "user@example.com")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should submit the email")
	}
	msg := cmd()
	req, ok := msg.(app.MagicLinkRequestMsg)
	if !ok {
		t.Fatalf("expected MagicLinkRequestMsg, got %T", msg)
	}
	if req.Email != "user@example.com" {
		t.Errorf("Email = %q", req.Email)
	}
	if m.entering {
		t.Error("form should close after submit")
	}
}

func TestModel_SignInRejectsBadEmail(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 24)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	typeString(m, "nope")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a warning command")
	}
	msg := cmd()
	warn, ok := msg.(app.ShowNotificationMsg)
	if !ok {
		t.Fatalf("expected ShowNotificationMsg, got %T", msg)
	}
	if warn.Type != app.NotificationWarning {
		t.Error("bad email should warn")
	}
	if !m.entering {
		t.Error("form should stay open")
	}
}

func TestModel_EmailFormEscape(t *testing.T) {
	m := New(app.NewState(), nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.entering {
		t.Error("esc should close the form")
	}
}

func TestModel_MagicLinkSent(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 24)

	m.Update(app.MagicLinkSentMsg{Email: "user@example.com"})
	view := m.View()
	if !strings.Contains(view, "user@example.com") {
		t.Error("View should confirm where the link was sent")
	}
}

func TestModel_View_SignedIn(t *testing.T) {
	state := app.NewState()
	state.SetSession(true, &models.Profile{
		Plan:  "pro",
		Email: "pro@example.com",
		Usage: models.ProfileUsage{
			Today: models.GenerationCount{Generations: 3},
			Month: models.GenerationCount{Generations: 12},
		},
	})
	m := New(state, nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "pro@example.com") {
		t.Error("View should show the email")
	}
	if !strings.Contains(view, "PRO") {
		t.Error("View should show the plan badge")
	}
	if !strings.Contains(view, "3 today") {
		t.Error("View should show server usage")
	}
}

func TestModel_SignOut(t *testing.T) {
	state := app.NewState()
	state.SetSession(true, &models.Profile{Plan: "free"})
	m := New(state, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	if cmd == nil {
		t.Fatal("o should return a sign-out command")
	}
	if _, ok := cmd().(app.SignOutRequestMsg); !ok {
		t.Error("expected SignOutRequestMsg")
	}
}

func TestModel_CheckoutURLShown(t *testing.T) {
	state := app.NewState()
	state.SetSession(true, &models.Profile{Plan: "free"})
	m := New(state, nil)
	m.SetSize(80, 24)

	m.Update(checkoutURLMsg{url: "https://checkout.example.com/session"})
	view := m.View()
	if !strings.Contains(view, "checkout.example.com") {
		t.Error("View should show the checkout URL")
	}
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}

	state.SetSession(true, &models.Profile{Plan: "pro"})
	if len(m.ShortHelp()) != 3 {
		t.Error("signed-in ShortHelp should show account actions")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

func yieldsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if yieldsQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestEmailFormCapturesGlobalKeys(t *testing.T) {
	acct := New(app.NewState(), nil)
	root := app.NewModel(nil)
	root.SetTabs([]app.Tab{nil, nil, nil, acct})
	root.Update(app.TabSwitchMsg{Tab: app.TabAccount})

	root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if !acct.entering {
		t.Fatal("s should open the email form")
	}

	// "q" must land in the field instead of quitting.
	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if yieldsQuit(cmd) {
		t.Fatal("'q' should not quit while the email form is open")
	}
	if acct.emailInput.Value() != "q" {
		t.Errorf("email field = %q, want %q", acct.emailInput.Value(), "q")
	}

	// Digits must not switch tabs mid-entry.
	root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if root.GetActiveTab() != app.TabAccount {
		t.Errorf("ActiveTab = %v, want Account while the form is open", root.GetActiveTab())
	}

	// Escape closes the form and global bindings apply again.
	root.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if acct.entering {
		t.Fatal("esc should close the email form")
	}
	root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if root.GetActiveTab() != app.TabDashboard {
		t.Errorf("ActiveTab = %v, want Dashboard after the form closed", root.GetActiveTab())
	}
}

func TestModel_InputActive(t *testing.T) {
	m := New(app.NewState(), nil)
	if m.InputActive() {
		t.Error("InputActive should be false before the form opens")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if !m.InputActive() {
		t.Error("InputActive should be true while the email form is open")
	}
}
