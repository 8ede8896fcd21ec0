package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/frank-couchman/seoscribe-tui/internal/logger"
	"github.com/frank-couchman/seoscribe-tui/internal/models"
)

const timestampFormat = "2006-01-02 15:04:05"

// InsertGeneration logs a generation attempt to the database.
func (db *DB) InsertGeneration(rec *models.GenerationRecord) error {
	query := `
		INSERT INTO generations (
			timestamp, article_id, topic, keyword, tone, word_count,
			plan, duration_ms, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := rec.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.Format(timestampFormat),
		rec.ArticleID,
		rec.Topic,
		nullString(rec.Keyword),
		nullString(rec.Tone),
		rec.WordCount,
		rec.Plan,
		rec.DurationMs,
		rec.Status,
		nullString(rec.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		rec.ID = id
	}

	return nil
}

// RecentGenerations returns the most recent generation records.
func (db *DB) RecentGenerations(limit int) ([]models.GenerationRecord, error) {
	query := `
		SELECT id, timestamp, article_id, topic, keyword, tone, word_count,
			   plan, duration_ms, status, error
		FROM generations
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent generations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var records []models.GenerationRecord
	for rows.Next() {
		var rec models.GenerationRecord
		var keyword, tone, errStr sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.Timestamp,
			&rec.ArticleID,
			&rec.Topic,
			&keyword,
			&tone,
			&rec.WordCount,
			&rec.Plan,
			&rec.DurationMs,
			&rec.Status,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}

		rec.Keyword = keyword.String
		rec.Tone = tone.String
		rec.Error = errStr.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DailyCounts returns per-day generation totals for the last N days,
// oldest first, with zero-count days filled in.
func (db *DB) DailyCounts(days int) ([]models.DailyCount, error) {
	query := `
		SELECT strftime('%Y-%m-%d', timestamp) as day, COUNT(*) as total
		FROM generations
		WHERE timestamp >= datetime('now', ?)
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := db.QueryContext(context.Background(), query, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	byDay := make(map[string]int)
	for rows.Next() {
		var day string
		var total int
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		byDay[day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]models.DailyCount, 0, days)
	start := time.Now().AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		counts = append(counts, models.DailyCount{
			Day:   day,
			Count: byDay[day.Format("2006-01-02")],
		})
	}

	return counts, nil
}

// Stats returns overall aggregated statistics for the generation log.
func (db *DB) Stats() (*models.GenerationStats, error) {
	query := `
		SELECT
			COUNT(*) as total_generations,
			COALESCE(SUM(word_count), 0) as total_words,
			COALESCE(AVG(duration_ms), 0) as avg_duration,
			SUM(CASE WHEN status != 'ok' THEN 1 ELSE 0 END) as error_count,
			COUNT(DISTINCT topic) as unique_topics
		FROM generations
	`

	var stats models.GenerationStats
	err := db.QueryRowContext(context.Background(), query).Scan(
		&stats.TotalGenerations,
		&stats.TotalWords,
		&stats.AvgDurationMs,
		&stats.ErrorCount,
		&stats.UniqueTopics,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation stats: %w", err)
	}

	return &stats, nil
}

// InsertUsageSnapshot records a point-in-time reading of the usage counters.
func (db *DB) InsertUsageSnapshot(snapshot *models.UsageSnapshot) error {
	query := `
		INSERT INTO usage_snapshots (
			timestamp, plan, day_count, month_count, gen_limit, locked
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	timestamp := snapshot.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.Format(timestampFormat),
		snapshot.Plan,
		snapshot.DayCount,
		snapshot.MonthCount,
		snapshot.Limit,
		snapshot.Locked,
	)
	if err != nil {
		return fmt.Errorf("failed to insert usage snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		snapshot.ID = id
	}

	return nil
}

// LatestUsageSnapshot returns the most recent usage snapshot, or nil
// when none has been recorded yet.
func (db *DB) LatestUsageSnapshot() (*models.UsageSnapshot, error) {
	query := `
		SELECT id, timestamp, plan, day_count, month_count, gen_limit, locked
		FROM usage_snapshots
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	var snapshot models.UsageSnapshot
	err := db.QueryRowContext(context.Background(), query).Scan(
		&snapshot.ID,
		&snapshot.Timestamp,
		&snapshot.Plan,
		&snapshot.DayCount,
		&snapshot.MonthCount,
		&snapshot.Limit,
		&snapshot.Locked,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest usage snapshot: %w", err)
	}

	return &snapshot, nil
}

// Prune removes generation records older than the given number of days.
func (db *DB) Prune(days int) (int64, error) {
	result, err := db.ExecContext(context.Background(),
		"DELETE FROM generations WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune generations: %w", err)
	}
	return result.RowsAffected()
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
