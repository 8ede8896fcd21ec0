// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frank-couchman/seoscribe-tui/internal/api"
	"github.com/frank-couchman/seoscribe-tui/internal/cache"
	"github.com/frank-couchman/seoscribe-tui/internal/config"
	"github.com/frank-couchman/seoscribe-tui/internal/history"
	"github.com/frank-couchman/seoscribe-tui/internal/logger"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
	"github.com/frank-couchman/seoscribe-tui/internal/services/generator"
	"github.com/frank-couchman/seoscribe-tui/internal/services/session"
	syncsvc "github.com/frank-couchman/seoscribe-tui/internal/services/sync"
	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

type (
	// SessionChangedEvent is emitted when sign-in state or the profile changes.
	SessionChangedEvent struct {
		SignedIn bool
		Profile  *models.Profile
	}

	// ArticlesChangedEvent is emitted whenever the cached article list changes.
	ArticlesChangedEvent struct {
		Articles []models.Article
	}

	// GenerationEvent is emitted for generation lifecycle changes.
	GenerationEvent struct {
		Running bool
		Article *models.Article
		Err     error
	}

	// UsageChangedEvent is emitted when the local usage counters change.
	UsageChangedEvent struct {
		Lock quota.LockState
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SessionChangedEvent) isServiceEvent()  {}
func (ArticlesChangedEvent) isServiceEvent() {}
func (GenerationEvent) isServiceEvent()      {}
func (UsageChangedEvent) isServiceEvent()    {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	store       store.Store
	client      *api.Client
	cache       *cache.Cache
	tracker     *quota.Tracker
	demo        *quota.DemoGate
	session     *session.Service
	generator   *generator.Service
	sync        *syncsvc.Service
	database    *history.DB
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	m.store = store.NewFileStore(cfg.StorePath)
	m.client = api.NewClient(cfg, m.store)
	m.cache = cache.New(m.store)
	m.tracker = quota.NewTracker(m.store)
	m.demo = quota.NewDemoGate(m.store)

	var err error
	m.session, err = session.New(m.client, m.store)
	if err != nil {
		return nil, err
	}

	// The history database is optional; the app degrades to no local log.
	m.database, err = history.New(cfg.HistoryDBPath)
	if err != nil {
		logger.Warn("history database unavailable", "error", err)
		m.database = nil
	}

	m.generator = generator.New(m.client, m.cache, m.tracker, m.demo, m.session, m.database)
	m.sync = syncsvc.New(m.client, m.cache, m.session, cfg.SyncInterval)

	go m.routeEvents()
	m.sync.Start()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.session.Events():
			m.handleSessionEvent(event)

		case event := <-m.generator.Events():
			m.handleGeneratorEvent(event)

		case event := <-m.sync.Events():
			m.handleSyncEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleSessionEvent(event session.Event) {
	switch event.Type {
	case session.EventSessionLoaded, session.EventTokensChanged,
		session.EventProfileUpdated, session.EventSignedOut:

		m.broadcast(SessionChangedEvent{
			SignedIn: m.session.SignedIn(),
			Profile:  m.session.Profile(),
		})

	case session.EventStoreChanged:
		// Another process rewrote the data file; everything derived from the
		// store may have moved.
		m.broadcast(ArticlesChangedEvent{Articles: m.cache.List()})
		m.broadcast(UsageChangedEvent{Lock: m.tracker.Locked(m.session.IsPro())})

	case session.EventError:
		m.broadcast(ErrorEvent{Service: "session", Error: event.Error})
	}
}

func (m *Manager) handleGeneratorEvent(event generator.Event) {
	switch event.Type {
	case generator.EventGenerationStarted:
		m.broadcast(GenerationEvent{Running: true})

	case generator.EventGenerationCompleted:
		m.broadcast(GenerationEvent{Article: event.Article})
		m.broadcast(ArticlesChangedEvent{Articles: m.cache.List()})
		m.broadcast(UsageChangedEvent{Lock: m.tracker.Locked(m.session.IsPro())})

	case generator.EventGenerationFailed:
		m.broadcast(GenerationEvent{Err: event.Error})

	case generator.EventQuotaLocked, generator.EventDemoLocked:
		m.broadcast(UsageChangedEvent{Lock: event.Lock})
		m.broadcast(ErrorEvent{Service: "generator", Error: event.Error})
	}
}

func (m *Manager) handleSyncEvent(event syncsvc.Event) {
	switch event.Type {
	case syncsvc.EventSyncCompleted:
		m.broadcast(ArticlesChangedEvent{Articles: m.cache.List()})
		m.broadcast(UsageChangedEvent{Lock: m.tracker.Locked(m.session.IsPro())})

	case syncsvc.EventSyncFailed:
		m.broadcast(ErrorEvent{Service: "sync", Error: event.Error})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Config returns the application configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// RequestContext returns a context bounded by the configured request timeout.
func (m *Manager) RequestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cfg.RequestTimeout)
}

// Session returns the session service.
func (m *Manager) Session() *session.Service {
	return m.session
}

// Generator returns the generator service.
func (m *Manager) Generator() *generator.Service {
	return m.generator
}

// Sync returns the sync service.
func (m *Manager) Sync() *syncsvc.Service {
	return m.sync
}

// Client returns the API client.
func (m *Manager) Client() *api.Client {
	return m.client
}

// Cache returns the article cache.
func (m *Manager) Cache() *cache.Cache {
	return m.cache
}

// Tracker returns the usage tracker.
func (m *Manager) Tracker() *quota.Tracker {
	return m.tracker
}

// Demo returns the demo gate.
func (m *Manager) Demo() *quota.DemoGate {
	return m.demo
}

// Database returns the history database, or nil when unavailable.
func (m *Manager) Database() *history.DB {
	return m.database
}

// Store returns the backing key-value store.
func (m *Manager) Store() store.Store {
	return m.store
}

// RefreshNow triggers an immediate sync pass.
func (m *Manager) RefreshNow(ctx context.Context) error {
	return m.sync.Sync(ctx)
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.sync.Close(); err != nil {
		errs = append(errs, err)
	}

	if err := m.session.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
