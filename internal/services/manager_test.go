package services

import (
	"testing"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/config"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	return &config.Config{
		APIBaseURL:      "http://127.0.0.1:0",
		StorePath:       tmpDir + "/store.json",
		HistoryDBPath:   tmpDir + "/history.db",
		RequestTimeout:  time.Second,
		GenerateTimeout: time.Second,
		SyncInterval:    time.Minute,
	}
}

func TestNewManager(t *testing.T) {
	mgr, err := NewManager(testConfig(t))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer mgr.Close()

	if mgr.Session() == nil {
		t.Error("Session service should be initialized")
	}
	if mgr.Generator() == nil {
		t.Error("Generator service should be initialized")
	}
	if mgr.Sync() == nil {
		t.Error("Sync service should be initialized")
	}
	if mgr.Cache() == nil {
		t.Error("Cache should be initialized")
	}
	if mgr.Tracker() == nil {
		t.Error("Tracker should be initialized")
	}
	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr, err := NewManager(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	defer mgr.Close()

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr, err := NewManager(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	defer mgr.Close()

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := UsageChangedEvent{Lock: quota.LockState{Count: 1, Limit: 1, Locked: true}}
	mgr.broadcast(event)

	deadline := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if got, ok := e.(UsageChangedEvent); ok {
				if got != event {
					t.Errorf("Got event %v, want %v", got, event)
				}
				return
			}
			// Skip startup events from the session service.
		case <-deadline:
			t.Fatal("Timeout waiting for broadcast")
		}
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ArticlesChangedEvent{}

	cmd := WaitForEvent(ch)
	msg := cmd()
	if msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = SessionChangedEvent{}
	var _ ServiceEvent = ArticlesChangedEvent{}
	var _ ServiceEvent = GenerationEvent{}
	var _ ServiceEvent = UsageChangedEvent{}
	var _ ServiceEvent = ErrorEvent{}
}
