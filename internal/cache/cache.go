// Package cache provides the client-local article cache. It mirrors the
// server's article list for instant rendering and offline reads; the server
// remains the source of truth and overwrites the cache on every sync.
package cache

import (
	"math"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/models"
	"github.com/frank-couchman/seoscribe-tui/internal/store"
)

// wordsPerMinute is the reading speed used to derive reading time.
const wordsPerMinute = 220

// Cache is an upsert-keyed article cache persisted through a store.Store.
// List order is insertion order, newest first.
type Cache struct {
	store store.Store
	now   func() time.Time
}

// New creates a cache backed by the given store.
func New(s store.Store) *Cache {
	return &Cache{store: s, now: time.Now}
}

// List returns all cached articles, newest first. An absent or corrupt blob
// yields an empty slice, never an error.
func (c *Cache) List() []models.Article {
	list := store.Read(c.store, store.KeyArticles, []models.Article(nil))
	if list == nil {
		return []models.Article{}
	}
	return list
}

// Get returns the cached article with the given id, or nil.
func (c *Cache) Get(id string) *models.Article {
	for _, a := range c.List() {
		if a.ID == id {
			return &a
		}
	}
	return nil
}

// Upsert normalizes the partial record and inserts or merges it by id.
// A partial without an id cannot be merged or retrieved later, so it is
// dropped without writing. New records are prepended; merges keep position.
// updated_at is refreshed either way.
func (c *Cache) Upsert(in models.ArticleInput) *models.Article {
	if in.ID == "" {
		return nil
	}

	list := c.List()
	idx := -1
	for i := range list {
		if list[i].ID == in.ID {
			idx = i
			break
		}
	}

	var prev *models.Article
	if idx >= 0 {
		prev = &list[idx]
	}

	rec := normalize(in, prev, c.now().Format(time.RFC3339))

	if idx >= 0 {
		list[idx] = rec
	} else {
		list = append([]models.Article{rec}, list...)
	}

	store.Write(c.store, store.KeyArticles, list)
	return &rec
}

// Remove deletes the article with the given id, if present.
func (c *Cache) Remove(id string) {
	list := c.List()
	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			store.Write(c.store, store.KeyArticles, list)
			return
		}
	}
}

// ReplaceAll overwrites the cache with the server's article list.
func (c *Cache) ReplaceAll(list []models.Article) {
	if list == nil {
		list = []models.Article{}
	}
	store.Write(c.store, store.KeyArticles, list)
}

// normalize builds the record to persist: explicit fields win, then nested
// payload equivalents, then the previous record's value, then defaults.
func normalize(in models.ArticleInput, prev *models.Article, now string) models.Article {
	rec := models.Article{
		ID:        in.ID,
		UpdatedAt: now,
	}

	data := in.Data
	content := in.Content
	body := in.Body

	rec.Title = firstString(in.Title, in.Topic, nestedString(data, "title"))
	if rec.Title == "" {
		if prev != nil && prev.Title != "" {
			rec.Title = prev.Title
		} else {
			rec.Title = "Untitled article"
		}
	}

	rec.CreatedAt = firstString(in.CreatedAt, in.CreatedAtCamel)
	if rec.CreatedAt == "" {
		if prev != nil && prev.CreatedAt != "" {
			rec.CreatedAt = prev.CreatedAt
		} else {
			rec.CreatedAt = now
		}
	}

	rec.WordCount = in.WordCount
	if rec.WordCount == 0 {
		rec.WordCount = nestedInt(data, "word_count")
	}
	if rec.WordCount == 0 {
		rec.WordCount = in.TargetWordCount
	}
	if rec.WordCount == 0 && prev != nil {
		rec.WordCount = prev.WordCount
	}

	rec.ReadingTimeMinutes = in.ReadingTimeMinutes
	if rec.ReadingTimeMinutes == 0 {
		rec.ReadingTimeMinutes = readingTime(rec.WordCount)
	}

	rec.SeoScore = in.SeoScore
	if rec.SeoScore == nil && prev != nil {
		rec.SeoScore = prev.SeoScore
	}

	rec.Keyword = firstStringPtr(in.Keyword, nestedStringPtr(data, "keyword"))
	if rec.Keyword == nil && prev != nil {
		rec.Keyword = prev.Keyword
	}

	rec.Tone = firstStringPtr(in.Tone, nestedStringPtr(data, "tone"))
	if rec.Tone == nil && prev != nil {
		rec.Tone = prev.Tone
	}

	meta, _ := nestedValue(data, "meta").(map[string]any)
	rec.MetaTitle = firstStringPtr(in.MetaTitle, nestedStringPtr(meta, "title"))
	if rec.MetaTitle == nil && prev != nil {
		rec.MetaTitle = prev.MetaTitle
	}
	rec.MetaDescription = firstStringPtr(in.MetaDescription, nestedStringPtr(meta, "description"))
	if rec.MetaDescription == nil && prev != nil {
		rec.MetaDescription = prev.MetaDescription
	}

	switch {
	case data != nil:
		rec.Data = data
	case content != nil:
		rec.Data = content
	case body != nil:
		rec.Data = body
	case prev != nil && prev.Data != nil:
		rec.Data = prev.Data
	default:
		rec.Data = map[string]any{}
	}

	rec.HTML = firstStringPtr(in.HTML, nestedStringPtr(content, "html"), nestedStringPtr(body, "html"))
	if rec.HTML == nil && prev != nil {
		rec.HTML = prev.HTML
	}

	rec.Image = in.Image
	if rec.Image == nil {
		rec.Image, _ = nestedValue(data, "image").(map[string]any)
	}
	if rec.Image == nil && prev != nil {
		rec.Image = prev.Image
	}

	rec.Sources = in.Sources
	if rec.Sources == nil {
		rec.Sources, _ = nestedValue(data, "citations").([]any)
	}
	if rec.Sources == nil && prev != nil {
		rec.Sources = prev.Sources
	}
	if rec.Sources == nil {
		rec.Sources = []any{}
	}

	rec.Status = in.Status
	if rec.Status == "" && prev != nil {
		rec.Status = prev.Status
	}
	if rec.Status == "" {
		rec.Status = "draft"
	}

	return rec
}

// readingTime derives minutes from a word count, with a one-minute floor.
func readingTime(wordCount int) int {
	if wordCount < 0 {
		wordCount = 0
	}
	minutes := int(math.Round(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstStringPtr(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func nestedValue(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

func nestedString(m map[string]any, key string) string {
	s, _ := nestedValue(m, key).(string)
	return s
}

func nestedStringPtr(m map[string]any, key string) *string {
	if s, ok := nestedValue(m, key).(string); ok && s != "" {
		return &s
	}
	return nil
}

// nestedInt reads a numeric payload field. JSON numbers decode as float64.
func nestedInt(m map[string]any, key string) int {
	switch v := nestedValue(m, key).(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
