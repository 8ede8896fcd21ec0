// Package session manages auth tokens and the signed-in profile, with file
// watching so external changes to the data file are picked up.
package session

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/frank-couchman/seoscribe-tui/internal/api"
	"github.com/frank-couchman/seoscribe-tui/internal/logger"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

// Event represents a session service event.
type Event struct {
	Type    EventType
	Error   error
	Profile *models.Profile
}

// EventType defines the type of session event.
type EventType int

const (
	EventSessionLoaded EventType = iota
	EventTokensChanged
	EventProfileUpdated
	EventSignedOut
	EventStoreChanged
	EventError
)

// Service manages the auth session and cached profile.
type Service struct {
	mu            sync.RWMutex
	client        *api.Client
	store         store.Store
	profile       *models.Profile
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a session service. When the store is file-backed, external
// writes to the file are watched and folded back in.
func New(client *api.Client, st store.Store) (*Service, error) {
	s := &Service{
		client:    client,
		store:     st,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if fs, ok := st.(*store.FileStore); ok {
		if err := s.startWatcher(fs.Path()); err != nil {
			// Watching is best-effort; the session still works without it.
			logger.Warn("store file watch unavailable", "error", err)
		}
	}

	s.sendEvent(Event{Type: EventSessionLoaded})

	return s, nil
}

// Events returns the event channel for subscribing to session changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// SignedIn reports whether an access token is present.
func (s *Service) SignedIn() bool {
	_, ok := s.store.GetItem(store.KeyAccessToken)
	return ok
}

// SetTokens persists the access and refresh tokens.
func (s *Service) SetTokens(accessToken, refreshToken string) {
	s.store.SetItem(store.KeyAccessToken, accessToken)
	if refreshToken != "" {
		s.store.SetItem(store.KeyRefreshToken, refreshToken)
	}
	s.sendEvent(Event{Type: EventTokensChanged})
}

// SignOut clears both tokens and the cached profile.
func (s *Service) SignOut() {
	s.store.RemoveItem(store.KeyAccessToken)
	s.store.RemoveItem(store.KeyRefreshToken)

	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()

	s.sendEvent(Event{Type: EventSignedOut})
}

// SendMagicLink requests a sign-in email for the given address.
func (s *Service) SendMagicLink(ctx context.Context, email, redirect string) error {
	return s.client.SendMagicLink(ctx, email, redirect)
}

// Profile returns the cached profile, or nil when not loaded.
func (s *Service) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// RefreshProfile fetches the profile from the API and caches it. A 401
// response clears the session.
func (s *Service) RefreshProfile(ctx context.Context) (*models.Profile, error) {
	if !s.SignedIn() {
		return nil, nil
	}

	profile, err := s.client.Profile(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			s.SignOut()
			return nil, err
		}
		s.sendEvent(Event{Type: EventError, Error: err})
		return nil, err
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	s.sendEvent(Event{Type: EventProfileUpdated, Profile: profile})
	return profile, nil
}

// UpdateProfile patches the remote profile and refreshes the cached copy.
func (s *Service) UpdateProfile(ctx context.Context, patch map[string]any) error {
	if err := s.client.UpdateProfile(ctx, patch); err != nil {
		return err
	}
	_, err := s.RefreshProfile(ctx)
	return err
}

// IsPro reports whether the cached profile is on the pro plan. An unknown
// profile counts as free.
func (s *Service) IsPro() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil && s.profile.IsPro()
}

// startWatcher starts the file system watcher on the store file.
func (s *Service) startWatcher(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation/deletion)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop(path)
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop(path string) {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.handleFileChange()
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the store after an external change.
func (s *Service) handleFileChange() {
	wasSignedIn := s.SignedIn()

	if fs, ok := s.store.(*store.FileStore); ok {
		fs.Reload()
	}

	s.sendEvent(Event{Type: EventStoreChanged})

	if wasSignedIn && !s.SignedIn() {
		s.mu.Lock()
		s.profile = nil
		s.mu.Unlock()
		s.sendEvent(Event{Type: EventSignedOut})
	}
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

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
