// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the shared application state read by all tabs.
type State struct {
	mu sync.RWMutex

	articles   []models.Article
	profile    *models.Profile
	signedIn   bool
	lock       quota.LockState
	resetAt    time.Time
	generating bool

	selectedArticle int

	lastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		articles:      make([]models.Article, 0),
		notifications: make([]Notification, 0),
	}
}

// SetArticles replaces the article list.
func (s *State) SetArticles(articles []models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = articles
	s.lastUpdated = time.Now()
	if s.selectedArticle >= len(articles) {
		s.selectedArticle = 0
	}
}

// Articles returns a copy of the article list.
func (s *State) Articles() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	articles := make([]models.Article, len(s.articles))
	copy(articles, s.articles)
	return articles
}

// ArticleCount returns the number of cached articles.
func (s *State) ArticleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// SelectedArticle returns the article at the current selection, or nil.
func (s *State) SelectedArticle() *models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedArticle < 0 || s.selectedArticle >= len(s.articles) {
		return nil
	}
	a := s.articles[s.selectedArticle]
	return &a
}

// SelectedIndex returns the current article selection index.
func (s *State) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedArticle
}

// SetSelectedIndex updates the article selection index, clamped to the list.
func (s *State) SetSelectedIndex(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 {
		idx = 0
	}
	if n := len(s.articles); n > 0 && idx >= n {
		idx = n - 1
	}
	s.selectedArticle = idx
}

// SetSession updates sign-in state and the profile together.
func (s *State) SetSession(signedIn bool, profile *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedIn = signedIn
	s.profile = profile
	s.lastUpdated = time.Now()
}

// SignedIn reports the current sign-in state.
func (s *State) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.signedIn
}

// Profile returns the cached profile, or nil.
func (s *State) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Plan returns the display plan label for the current session.
func (s *State) Plan() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.signedIn {
		return ""
	}
	if s.profile != nil && s.profile.IsPro() {
		return "pro"
	}
	return "free"
}

// SetUsage updates the local usage gate state.
func (s *State) SetUsage(lock quota.LockState, resetAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lock = lock
	s.resetAt = resetAt
}

// Usage returns the local usage gate state.
func (s *State) Usage() (quota.LockState, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lock, s.resetAt
}

// SetGenerating flags an in-flight generation.
func (s *State) SetGenerating(generating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = generating
}

// Generating reports whether a generation is in flight.
func (s *State) Generating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generating
}

// LastUpdated returns the last time the state was updated.
func (s *State) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// Notifications returns a copy of all active notifications.
func (s *State) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}
