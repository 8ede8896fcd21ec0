// Package sync reconciles the local article cache and profile with the
// server on a fixed interval.
package sync

import (
	"context"
	"sync"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/api"
	"github.com/frank-couchman/seoscribe-tui/internal/cache"
	"github.com/frank-couchman/seoscribe-tui/internal/logger"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

// Event represents a sync service event.
type Event struct {
	Type     EventType
	Error    error
	Articles []models.Article
	Profile  *models.Profile
}

// EventType defines the type of sync event.
type EventType int

const (
	EventSyncStarted EventType = iota
	EventSyncCompleted
	EventSyncFailed
)

// ProfileRefresher is the slice of the session service the syncer needs.
type ProfileRefresher interface {
	SignedIn() bool
	RefreshProfile(ctx context.Context) (*models.Profile, error)
}

// Service pulls server state into the local cache on an interval.
type Service struct {
	mu        sync.Mutex
	client    *api.Client
	cache     *cache.Cache
	session   ProfileRefresher
	interval  time.Duration
	eventChan chan Event
	stopChan  chan struct{}
	started   bool
}

// New creates a sync service that runs every interval once started.
func New(client *api.Client, articleCache *cache.Cache, session ProfileRefresher, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &Service{
		client:    client,
		cache:     articleCache,
		session:   session,
		interval:  interval,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}
}

// Events returns the event channel for subscribing to sync progress.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Start begins the periodic sync loop. Safe to call once.
func (s *Service) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go s.loop()
}

func (s *Service) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Initial sync straight away.
	s.runOnce()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	if err := s.Sync(ctx); err != nil {
		logger.Debug("background sync failed", "error", err)
	}
}

// Sync performs one reconciliation pass. Signed-out sessions are a no-op;
// the local cache stays authoritative for anonymous use.
func (s *Service) Sync(ctx context.Context) error {
	if !s.session.SignedIn() {
		return nil
	}

	s.sendEvent(Event{Type: EventSyncStarted})

	articles, err := s.client.Articles(ctx)
	if err != nil {
		s.sendEvent(Event{Type: EventSyncFailed, Error: err})
		return err
	}
	// Server list wins wholesale.
	s.cache.ReplaceAll(articles)

	profile, err := s.session.RefreshProfile(ctx)
	if err != nil {
		s.sendEvent(Event{Type: EventSyncFailed, Error: err})
		return err
	}

	s.sendEvent(Event{Type: EventSyncCompleted, Articles: articles, Profile: profile})
	return nil
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the sync loop.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		close(s.stopChan)
		s.started = false
	}
	return nil
}
