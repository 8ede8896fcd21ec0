package app

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabDashboard {
		t.Error("Default tab should be Dashboard")
	}
	if len(model.tabs) != 4 {
		t.Errorf("Should have 4 tab placeholders, got %d", len(model.tabs))
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	cmd := model.Init()
	if cmd == nil {
		t.Error("Init returned nil command")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	msg := tea.WindowSizeMsg{Width: 100, Height: 50}

	newModel, _ := model.Update(msg)

	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}

	if m.width != 100 {
		t.Errorf("Width = %d, want 100", m.width)
	}
	if m.height != 50 {
		t.Errorf("Height = %d, want 50", m.height)
	}
	if !m.ready {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_Update_TabSwitch(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 100
	model.height = 50

	msg := TabSwitchMsg{Tab: TabArticles}
	newModel, _ := model.Update(msg)
	m := newModel.(*Model)

	if m.activeTab != TabArticles {
		t.Errorf("ActiveTab = %v, want Articles", m.activeTab)
	}

	keyMsg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}}
	model.handleKeyMsg(keyMsg)
	if model.activeTab != TabAccount {
		t.Errorf("ActiveTab = %v, want Account after key '4'", model.activeTab)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	msg := TickMsg(time.Now())

	_, cmd := model.Update(msg)
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	// Not ready
	view := model.View()
	if !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	// Ready
	model.ready = true
	model.width = 80
	model.height = 24

	view = model.View()
	if !strings.Contains(view, "Dashboard") {
		t.Error("View should show Dashboard tab")
	}
	if !strings.Contains(view, "not yet implemented") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := NewModel(nil)
	model.ready = true
	model.width = 80
	model.height = 24

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !model.showHelp {
		t.Error("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if model.showHelp {
		t.Error("showHelp should be false after toggle")
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	model.Update(ShowNotificationMsg{
		Message:  "Test Note",
		Type:     NotificationInfo,
		Duration: 0,
	})

	notifs := model.state.Notifications()
	if len(notifs) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(notifs))
	}

	model.ready = true
	model.width = 80
	model.height = 24
	view := model.View()
	if !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	model.handleServiceEvent(services.SessionChangedEvent{
		SignedIn: true,
		Profile:  &models.Profile{Plan: "pro"},
	})
	if !model.state.SignedIn() {
		t.Error("SignedIn should be updated")
	}
	if model.state.Plan() != "pro" {
		t.Errorf("Plan = %q, want pro", model.state.Plan())
	}

	model.handleServiceEvent(services.ArticlesChangedEvent{
		Articles: []models.Article{{ID: "a1"}},
	})
	if model.state.ArticleCount() != 1 {
		t.Error("Articles should be updated")
	}

	model.handleServiceEvent(services.UsageChangedEvent{
		Lock: quota.LockState{Locked: true, Count: 1, Limit: 1},
	})
	lock, _ := model.state.Usage()
	if !lock.Locked {
		t.Error("Usage lock should be updated")
	}

	cmds := model.handleServiceEvent(services.ErrorEvent{Service: "sync", Error: errTest("boom")})
	if len(cmds) == 0 {
		t.Error("Error event should trigger notification command")
	}
}

func TestModel_HandleGenerationEvent(t *testing.T) {
	model := NewModel(nil)

	model.handleServiceEvent(services.GenerationEvent{Running: true})
	if !model.state.Generating() {
		t.Error("Generating should be true while running")
	}
	if len(model.state.Notifications()) != 1 {
		t.Error("Loading notification should be visible")
	}

	cmds := model.handleServiceEvent(services.GenerationEvent{
		Running: false,
		Article: &models.Article{ID: "a1", Title: "Done"},
	})
	if model.state.Generating() {
		t.Error("Generating should be false after completion")
	}
	if len(cmds) == 0 {
		t.Error("Completion should trigger a notification command")
	}

	cmds = model.handleServiceEvent(services.GenerationEvent{
		Running: false,
		Err:     errTest("broken"),
	})
	if len(cmds) == 0 {
		t.Error("Failure should trigger a notification command")
	}
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestTabID_String(t *testing.T) {
	if TabDashboard.String() != "Dashboard" {
		t.Error("TabDashboard.String() mismatch")
	}
	if TabArticles.String() != "Articles" {
		t.Error("TabArticles.String() mismatch")
	}
	if TabWriter.String() != "Writer" {
		t.Error("TabWriter.String() mismatch")
	}
	if TabAccount.String() != "Account" {
		t.Error("TabAccount.String() mismatch")
	}
	if TabID(999).String() != "Unknown" {
		t.Error("Unknown tab string mismatch")
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		title string
		id    string
		want  string
	}{
		{"Great SEO Tips", "a1", "great-seo-tips.html"},
		{"", "a1", "a1.html"},
		{"///", "a1", "article.html"},
	}

	for _, tt := range tests {
		a := &models.Article{ID: tt.id, Title: tt.title}
		if got := exportFilename(a); got != tt.want {
			t.Errorf("exportFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

// formTab is a minimal tab whose input ownership can be toggled.
type formTab struct {
	inputActive bool
	lastKey     string
}

func (f *formTab) Init() tea.Cmd { return nil }

func (f *formTab) Update(msg tea.Msg) (Tab, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		f.lastKey = k.String()
	}
	return f, nil
}

func (f *formTab) View() string              { return "" }
func (f *formTab) SetSize(width, height int) {}
func (f *formTab) InputActive() bool         { return f.inputActive }
func (f *formTab) ShortHelp() []key.Binding  { return nil }
func (f *formTab) FullHelp() [][]key.Binding { return nil }

func TestModel_FocusedFormSuspendsGlobalKeys(t *testing.T) {
	model := NewModel(nil)
	form := &formTab{inputActive: true}
	model.SetTabs([]Tab{&formTab{}, &formTab{}, form, &formTab{}})
	model.activeTab = TabWriter

	// Plain "q" must reach the form, not quit.
	if cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd != nil {
		t.Error("'q' should not produce a command while a form is focused")
	}

	// Digits must not switch tabs.
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if model.activeTab != TabWriter {
		t.Errorf("ActiveTab = %v, want Writer after '1' into a focused form", model.activeTab)
	}

	// Refresh must not fire.
	if cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); cmd != nil {
		t.Error("'r' should not trigger a refresh while a form is focused")
	}

	// Help must not open.
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if model.showHelp {
		t.Error("'?' should not open help while a form is focused")
	}

	// Ctrl+c is the escape hatch and always quits.
	cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit even while a form is focused")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c command should produce tea.QuitMsg")
	}
}

func TestModel_GlobalKeysResumeWhenFormInactive(t *testing.T) {
	model := NewModel(nil)
	form := &formTab{inputActive: false}
	model.SetTabs([]Tab{&formTab{}, &formTab{}, form, &formTab{}})
	model.activeTab = TabWriter

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if model.activeTab != TabDashboard {
		t.Errorf("ActiveTab = %v, want Dashboard after '1' with no focused form", model.activeTab)
	}

	model.activeTab = TabWriter
	cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("'q' should quit when the active tab has no focused form")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("'q' command should produce tea.QuitMsg")
	}
}
