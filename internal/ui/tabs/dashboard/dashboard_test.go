package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/app"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
)

func TestNew(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if m.Init() == nil {
		t.Error("Init returned nil")
	}
}

func TestModel_Update(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)

	updated, _ := m.Update(nil)
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_View_Anonymous(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(80, 24)

	view := m.View()
	if view == "" {
		t.Error("View returned empty string")
	}
	if !strings.Contains(view, "demo") {
		t.Logf("View content: %q", view)
		t.Error("View should mention the demo generation")
	}
}

func TestModel_View_SignedIn(t *testing.T) {
	state := app.NewState()
	state.SetSession(true, &models.Profile{Plan: "pro"})
	state.SetUsage(quota.LockState{Count: 3, Limit: 15, Window: quota.WindowDay}, time.Now().Add(time.Hour))

	m := New(state, nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "PRO") {
		t.Logf("View content: %q", view)
		t.Error("View should show the plan badge")
	}
	if !strings.Contains(view, "3/15") {
		t.Logf("View content: %q", view)
		t.Error("View should show the usage bar label")
	}
}

func TestModel_View_WithActivity(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(80, 24)

	m.Update(activityLoadedMsg{
		counts: []models.DailyCount{{Count: 0}, {Count: 2}, {Count: 1}},
		recent: []models.GenerationRecord{
			{Topic: "Go testing tips", Plan: "pro", Status: "ok", Timestamp: time.Now()},
		},
		stats: &models.GenerationStats{TotalGenerations: 3, TotalWords: 3300},
	})

	view := m.View()
	if !strings.Contains(view, "Go testing tips") {
		t.Error("View should list recent generations")
	}
	if !strings.Contains(view, "3 articles") {
		t.Error("View should show totals")
	}
}

func TestModel_View_LoadError(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(80, 24)

	m.Update(activityErrorMsg{err: "disk gone"})

	view := m.View()
	if !strings.Contains(view, "disk gone") {
		t.Error("View should surface load errors")
	}
}

func TestModel_NewArticleKey(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if cmd == nil {
		t.Fatal("key n should return a command")
	}
	msg := cmd()
	switchMsg, ok := msg.(app.TabSwitchMsg)
	if !ok {
		t.Fatalf("expected TabSwitchMsg, got %T", msg)
	}
	if switchMsg.Tab != app.TabWriter {
		t.Errorf("Tab = %v, want Writer", switchMsg.Tab)
	}
}

func TestModel_SetSize(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
