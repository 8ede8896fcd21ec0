package writer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/services"
)

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_View(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "New Article") {
		t.Error("View should show the form title")
	}
	if !strings.Contains(view, "Topic") {
		t.Error("View should show the topic field")
	}
	if !strings.Contains(view, "demo generation") {
		t.Error("View should explain the anonymous gate")
	}
}

func TestModel_SubmitRequiresTopic(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	// Jump straight to submit without a topic
	for i := 0; i < 4; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should return a blink command")
	}
	if m.errorMsg != "Topic is required" {
		t.Errorf("errorMsg = %q, want topic validation message", m.errorMsg)
	}
}

func TestModel_Submit(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	typeString(m, "seo basics")
	for i := 0; i < 4; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.focusedField != fieldSubmit {
		t.Fatalf("focusedField = %v, want submit", m.focusedField)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	msg := cmd()
	gen, ok := msg.(app.GenerateRequestMsg)
	if !ok {
		t.Fatalf("expected GenerateRequestMsg, got %T", msg)
	}
	if gen.Request.Topic != "seo basics" {
		t.Errorf("Topic = %q, want seo basics", gen.Request.Topic)
	}
	if gen.Request.TargetWordCount != defaultWordCount {
		t.Errorf("TargetWordCount = %d, want default", gen.Request.TargetWordCount)
	}
}

func TestModel_InvalidWordCount(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	typeString(m, "topic")
	for i := 0; i < 3; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	typeString(m, "abc")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.errorMsg, "Word count") {
		t.Errorf("errorMsg = %q, want word count validation", m.errorMsg)
	}
}

func TestModel_GenerationCompletedClearsForm(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)
	typeString(m, "some topic")

	m.Update(services.GenerationEvent{
		Running: false,
		Article: &models.Article{ID: "a1", Title: "Some Topic", WordCount: 900},
	})

	if m.topicInput.Value() != "" {
		t.Error("form should clear after a successful generation")
	}
	if m.lastArticle == nil || m.lastArticle.ID != "a1" {
		t.Error("lastArticle should be recorded")
	}

	view := m.View()
	if !strings.Contains(view, "Some Topic") {
		t.Error("View should show the last generated article")
	}
}

func TestModel_GenerationFailure(t *testing.T) {
	m := New(app.NewState())
	m.SetSize(80, 24)

	m.Update(services.GenerationEvent{Running: false, Err: errTest("limit reached")})
	if m.errorMsg != "limit reached" {
		t.Errorf("errorMsg = %q, want limit reached", m.errorMsg)
	}
}

func TestModel_IgnoresKeysWhileGenerating(t *testing.T) {
	state := app.NewState()
	state.SetGenerating(true)
	m := New(state)
	m.SetSize(80, 24)

	typeString(m, "x")
	if m.topicInput.Value() != "" {
		t.Error("input should be ignored while generating")
	}

	view := m.View()
	if !strings.Contains(view, "Generating") {
		t.Error("View should show the generation spinner")
	}
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestModel_EscapeEmptyFormLeavesTab(t *testing.T) {
	m := New(app.NewState())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc on an empty form should produce a command")
	}
	sw, ok := cmd().(app.TabSwitchMsg)
	if !ok {
		t.Fatalf("esc on an empty form should emit TabSwitchMsg, got %T", cmd())
	}
	if sw.Tab != app.TabDashboard {
		t.Errorf("TabSwitchMsg.Tab = %v, want Dashboard", sw.Tab)
	}
}

func TestModel_EscapeDirtyFormClearsFirst(t *testing.T) {
	m := New(app.NewState())
	typeString(m, "seo basics")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("esc on a dirty form should only clear it")
	}
	if m.topicInput.Value() != "" {
		t.Errorf("topic = %q, want empty after esc", m.topicInput.Value())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("second esc should leave the tab")
	}
	if _, ok := cmd().(app.TabSwitchMsg); !ok {
		t.Error("second esc should emit TabSwitchMsg")
	}
}

func TestModel_InputActive(t *testing.T) {
	state := app.NewState()
	m := New(state)

	if !m.InputActive() {
		t.Error("InputActive should be true while the form is focused")
	}

	state.SetGenerating(true)
	if m.InputActive() {
		t.Error("InputActive should be false while a generation is running")
	}
}

func TestWriterTabIsNotATrap(t *testing.T) {
	state := app.NewState()
	w := New(state)
	root := app.NewModel(nil)
	root.SetTabs([]app.Tab{nil, nil, w, nil})
	root.Update(app.TabSwitchMsg{Tab: app.TabWriter})

	// Digits type into the form rather than switching tabs.
	root.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if root.GetActiveTab() != app.TabWriter {
		t.Fatalf("ActiveTab = %v, want Writer while typing", root.GetActiveTab())
	}
	if w.topicInput.Value() != "1" {
		t.Errorf("topic = %q, want %q", w.topicInput.Value(), "1")
	}

	// First esc clears the form, second one leaves the tab.
	root.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc on an empty form should produce a tab switch")
	}
	msg := cmd()
	if _, ok := msg.(app.TabSwitchMsg); !ok {
		t.Fatalf("expected TabSwitchMsg, got %T", msg)
	}
	root.Update(msg)
	if root.GetActiveTab() != app.TabDashboard {
		t.Errorf("ActiveTab = %v, want Dashboard after leaving the writer", root.GetActiveTab())
	}
}
