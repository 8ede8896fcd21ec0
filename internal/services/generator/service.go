// Package generator orchestrates article generation: gate check, API call,
// cache write, usage accounting, and history logging.
package generator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/frank-couchman/seoscribe-tui/internal/api"
	"github.com/frank-couchman/seoscribe-tui/internal/cache"
	"github.com/frank-couchman/seoscribe-tui/internal/history"
	"github.com/frank-couchman/seoscribe-tui/internal/logger"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/quota"
)

// Event represents a generator service event.
type Event struct {
	Type    EventType
	Error   error
	Article *models.Article
	Lock    quota.LockState
}

// EventType defines the type of generator event.
type EventType int

const (
	EventGenerationStarted EventType = iota
	EventGenerationCompleted
	EventGenerationFailed
	EventQuotaLocked
	EventDemoLocked
)

// ErrQuotaLocked is returned when the local usage gate refuses a generation.
type ErrQuotaLocked struct {
	Lock    quota.LockState
	ResetAt time.Time
}

func (e *ErrQuotaLocked) Error() string {
	return fmt.Sprintf("generation limit reached (%d/%d per %s)", e.Lock.Count, e.Lock.Limit, e.Lock.Window)
}

// ErrDemoUsed is returned when an anonymous caller is inside the demo cooldown.
type ErrDemoUsed struct {
	ResetAt time.Time
}

func (e *ErrDemoUsed) Error() string {
	return fmt.Sprintf("demo already used, available again %s", e.ResetAt.Format("2006-01-02"))
}

// SessionInfo is the slice of session state the generator needs.
type SessionInfo interface {
	SignedIn() bool
	IsPro() bool
}

// Service runs generations through the local gate and records the results.
type Service struct {
	mu        sync.RWMutex
	client    *api.Client
	cache     *cache.Cache
	tracker   *quota.Tracker
	demo      *quota.DemoGate
	session   SessionInfo
	history   *history.DB
	notify    bool
	eventChan chan Event
	now       func() time.Time
}

// New creates a generator service. The history database is optional.
func New(client *api.Client, articleCache *cache.Cache, tracker *quota.Tracker, demo *quota.DemoGate, session SessionInfo, hist *history.DB) *Service {
	return &Service{
		client:    client,
		cache:     articleCache,
		tracker:   tracker,
		demo:      demo,
		session:   session,
		history:   hist,
		notify:    true,
		eventChan: make(chan Event, 100),
		now:       time.Now,
	}
}

// Events returns the event channel for subscribing to generation progress.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// SetNotifications toggles desktop notifications on completion.
func (s *Service) SetNotifications(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = enabled
}

// Gate checks whether a generation is currently allowed without running one.
func (s *Service) Gate() error {
	if !s.session.SignedIn() {
		allowed, resetAt := s.demo.Allowed()
		if !allowed {
			return &ErrDemoUsed{ResetAt: resetAt}
		}
		return nil
	}

	lock := s.tracker.Locked(s.session.IsPro())
	if lock.Locked {
		return &ErrQuotaLocked{Lock: lock, ResetAt: s.tracker.NextResetAt(s.session.IsPro())}
	}
	return nil
}

// Generate runs one full generation. On success the article is already in the
// local cache and the usage counter has been incremented.
func (s *Service) Generate(ctx context.Context, req models.DraftRequest) (*models.Article, error) {
	if err := s.Gate(); err != nil {
		switch err.(type) {
		case *ErrDemoUsed:
			s.sendEvent(Event{Type: EventDemoLocked, Error: err})
		case *ErrQuotaLocked:
			s.sendEvent(Event{Type: EventQuotaLocked, Error: err, Lock: s.tracker.Locked(s.session.IsPro())})
		}
		return nil, err
	}

	s.sendEvent(Event{Type: EventGenerationStarted})
	started := s.now()

	draft, err := s.client.GenerateDraft(ctx, req)
	if err != nil {
		s.recordGeneration(req, nil, started, err)
		s.sendEvent(Event{Type: EventGenerationFailed, Error: err})
		return nil, err
	}

	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	if draft.Topic == "" {
		draft.Topic = req.Topic
	}
	if draft.Keyword == nil && req.Keyword != "" {
		keyword := req.Keyword
		draft.Keyword = &keyword
	}
	if draft.Tone == nil && req.Tone != "" {
		tone := req.Tone
		draft.Tone = &tone
	}

	article := s.cache.Upsert(*draft)

	if s.session.SignedIn() {
		usage := s.tracker.Increment(s.session.IsPro())
		s.snapshotUsage(usage)
	} else {
		s.demo.MarkUsed()
	}

	s.recordGeneration(req, article, started, nil)

	s.mu.RLock()
	notify := s.notify
	s.mu.RUnlock()
	if notify && article != nil {
		title := "Article ready"
		body := article.Title
		if err := beeep.Notify(title, body, ""); err != nil {
			logger.Debug("notification failed", "error", err)
		}
	}

	s.sendEvent(Event{Type: EventGenerationCompleted, Article: article})
	return article, nil
}

// plan returns the plan label for history rows.
func (s *Service) plan() string {
	if !s.session.SignedIn() {
		return "demo"
	}
	if s.session.IsPro() {
		return "pro"
	}
	return "free"
}

// recordGeneration appends a row to the generation log.
func (s *Service) recordGeneration(req models.DraftRequest, article *models.Article, started time.Time, genErr error) {
	if s.history == nil {
		return
	}

	rec := models.GenerationRecord{
		Timestamp:  started,
		Topic:      req.Topic,
		Keyword:    req.Keyword,
		Tone:       req.Tone,
		Plan:       s.plan(),
		DurationMs: s.now().Sub(started).Milliseconds(),
		Status:     "ok",
	}
	if article != nil {
		rec.ArticleID = article.ID
		rec.WordCount = article.WordCount
	}
	if genErr != nil {
		rec.Status = "error"
		rec.Error = genErr.Error()
	}

	if err := s.history.InsertGeneration(&rec); err != nil {
		logger.Warn("failed to record generation", "error", err)
	}
}

// snapshotUsage records the post-increment counter state.
func (s *Service) snapshotUsage(usage quota.Usage) {
	if s.history == nil {
		return
	}

	lock := s.tracker.Locked(s.session.IsPro())

	snapshot := models.UsageSnapshot{
		Timestamp: s.now(),
		Plan:      s.plan(),
		Limit:     lock.Limit,
		Locked:    lock.Locked,
	}
	switch usage.Window {
	case quota.WindowDay:
		snapshot.DayCount = usage.Count
	case quota.WindowMonth:
		snapshot.MonthCount = usage.Count
	}

	if err := s.history.InsertUsageSnapshot(&snapshot); err != nil {
		logger.Warn("failed to record usage snapshot", "error", err)
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
