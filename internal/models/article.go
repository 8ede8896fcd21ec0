// Package models defines data structures and domain types.
package models

// Article is the normalized article record kept in the local cache and
// returned by the articles API.
type Article struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
	WordCount          int            `json:"word_count"`
	ReadingTimeMinutes int            `json:"reading_time_minutes"`
	SeoScore           *float64       `json:"seo_score"`
	Keyword            *string        `json:"keyword"`
	Tone               *string        `json:"tone"`
	MetaTitle          *string        `json:"meta_title"`
	MetaDescription    *string        `json:"meta_description"`
	Data               map[string]any `json:"data"`
	HTML               *string        `json:"html"`
	Image              map[string]any `json:"image"`
	Sources            []any          `json:"sources"`
	Status             string         `json:"status"`
}

// ArticleInput is a partial article as produced by the generation endpoint or
// by callers. The server has shipped several shapes over time, so most fields
// have nested or renamed equivalents the cache normalizes from.
type ArticleInput struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Topic              string         `json:"topic"`
	CreatedAt          string         `json:"created_at"`
	CreatedAtCamel     string         `json:"createdAt"`
	WordCount          int            `json:"word_count"`
	TargetWordCount    int            `json:"target_word_count"`
	ReadingTimeMinutes int            `json:"reading_time_minutes"`
	SeoScore           *float64       `json:"seo_score"`
	Keyword            *string        `json:"keyword"`
	Tone               *string        `json:"tone"`
	MetaTitle          *string        `json:"meta_title"`
	MetaDescription    *string        `json:"meta_description"`
	Data               map[string]any `json:"data"`
	Content            map[string]any `json:"content"`
	Body               map[string]any `json:"body"`
	HTML               *string        `json:"html"`
	Image              map[string]any `json:"image"`
	Sources            []any          `json:"sources"`
	Status             string         `json:"status"`
}

// DraftRequest is the payload for the draft generation endpoint.
type DraftRequest struct {
	Topic           string `json:"topic"`
	Keyword         string `json:"keyword,omitempty"`
	Tone            string `json:"tone,omitempty"`
	TargetWordCount int    `json:"target_word_count,omitempty"`
	Region          string `json:"region,omitempty"`
	Research        bool   `json:"research"`
	GenerateSocial  bool   `json:"generate_social"`
}

// Template is a generation template as returned by the templates endpoint.
type Template struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
}
