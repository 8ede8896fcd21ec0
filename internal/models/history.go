package models

import "time"

// GenerationRecord is one logged article generation attempt.
type GenerationRecord struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ArticleID  string    `json:"article_id"`
	Topic      string    `json:"topic"`
	Keyword    string    `json:"keyword"`
	Tone       string    `json:"tone"`
	WordCount  int       `json:"word_count"`
	Plan       string    `json:"plan"`
	DurationMs int64     `json:"duration_ms"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// UsageSnapshot is a point-in-time reading of the local usage counters.
type UsageSnapshot struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Plan         string    `json:"plan"`
	DayCount     int       `json:"day_count"`
	MonthCount   int       `json:"month_count"`
	Limit        int       `json:"limit"`
	Locked       bool      `json:"locked"`
}

// DailyCount is a per-day generation total used for trend charts.
type DailyCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// GenerationStats summarizes the whole generation log.
type GenerationStats struct {
	TotalGenerations int     `json:"total_generations"`
	TotalWords       int     `json:"total_words"`
	AvgDurationMs    float64 `json:"avg_duration_ms"`
	ErrorCount       int     `json:"error_count"`
	UniqueTopics     int     `json:"unique_topics"`
}
