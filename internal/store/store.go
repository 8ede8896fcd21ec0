// Package store provides a durable string key-value store with best-effort
// semantics: reads fall back, writes never fail loudly. It mirrors the
// browser localStorage contract the SEOScribe web client was built against.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/frank-couchman/seoscribe-tui/internal/logger"
)

// Fixed keys shared with the SEOScribe web client.
const (
	KeyArticles     = "seoscribe_articles_v1"
	KeyUsage        = "seoscribe_usage_v1"
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyDemoUsed     = "seoscribe_demo_used"
)

// Store is a durable string key-value store. Implementations must be safe for
// concurrent use and must never panic on storage failures.
type Store interface {
	// GetItem returns the raw string for key, or ok=false when absent.
	GetItem(key string) (value string, ok bool)
	// SetItem persists the raw string for key. Failures are absorbed.
	SetItem(key, value string)
	// RemoveItem deletes key. Removing an absent key is a no-op.
	RemoveItem(key string)
}

// Read decodes the JSON value stored under key into T. Missing key, decode
// failure, or any storage failure returns fallback.
func Read[T any](s Store, key string, fallback T) T {
	raw, ok := s.GetItem(key)
	if !ok || raw == "" {
		return fallback
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fallback
	}
	return value
}

// Write JSON-encodes value and persists it under key. Encode or storage
// failures are silently dropped; the store is a cache, not a source of truth.
func Write[T any](s Store, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Debug("store write skipped", "key", key, "error", err)
		return
	}
	s.SetItem(key, string(data))
}

// FileStore persists all keys in a single JSON file, written atomically via
// temp file and rename. A load or persist failure degrades the store to
// in-memory operation rather than surfacing an error.
type FileStore struct {
	mu    sync.Mutex
	path  string
	items map[string]string
}

// NewFileStore creates a file-backed store at path. An unreadable or corrupt
// file starts the store empty.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:  path,
		items: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("store file unreadable, starting empty", "path", path, "error", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.items); err != nil {
		logger.Warn("store file corrupt, starting empty", "path", path, "error", err)
		s.items = make(map[string]string)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Reload re-reads the backing file, replacing the in-memory map. Used when
// another process rewrote the file. An unreadable or corrupt file leaves the
// current map untouched.
func (s *FileStore) Reload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	items := make(map[string]string)
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("store file corrupt on reload, keeping current state", "path", s.path, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

// GetItem returns the stored string for key.
func (s *FileStore) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	return value, ok
}

// SetItem stores the string for key and persists the whole map.
func (s *FileStore) SetItem(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	s.persistLocked()
}

// RemoveItem deletes key and persists the whole map.
func (s *FileStore) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return
	}
	delete(s.items, key)
	s.persistLocked()
}

// persistLocked writes the current map to disk (must hold lock).
func (s *FileStore) persistLocked() {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		logger.Debug("store persist skipped", "error", err)
		return
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			logger.Debug("store persist skipped", "error", err)
			return
		}
	}

	// Write to temp file first, then rename
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		logger.Debug("store persist skipped", "error", err)
		return
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Debug("failed to remove temp file", "error", removeErr)
		}
		logger.Debug("store persist skipped", "error", err)
	}
}

// MemStore is an in-memory Store used in tests and as a fallback when no
// writable data directory exists.
type MemStore struct {
	mu    sync.Mutex
	items map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]string)}
}

// GetItem returns the stored string for key.
func (s *MemStore) GetItem(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.items[key]
	return value, ok
}

// SetItem stores the string for key.
func (s *MemStore) SetItem(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// RemoveItem deletes key.
func (s *MemStore) RemoveItem(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}
