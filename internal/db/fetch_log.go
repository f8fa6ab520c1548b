package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

// timeLayout keeps started_at sortable as text.
const timeLayout = "2006-01-02T15:04:05.000Z"

// InsertFetch records a channels request in the fetch log.
func (db *DB) InsertFetch(rec *models.FetchRecord) error {
	query := `
		INSERT INTO fetch_log (
			request_id, started_at, duration_ms, period, "offset", count,
			status, channels, total, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	startedAt := rec.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		rec.RequestID,
		startedAt.UTC().Format(timeLayout),
		rec.DurationMs,
		string(rec.Period),
		rec.Offset,
		rec.Count,
		string(rec.Status),
		rec.Channels,
		rec.Total,
		nullString(rec.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert fetch: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		rec.ID = id
	}

	return nil
}

// RecentFetches returns up to limit fetches, newest first.
func (db *DB) RecentFetches(limit int) ([]models.FetchRecord, error) {
	query := `
		SELECT id, request_id, started_at, duration_ms, period, "offset", count,
			   status, channels, total, error
		FROM fetch_log
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent fetches: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var records []models.FetchRecord
	for rows.Next() {
		var rec models.FetchRecord
		var startedAt, period, status string
		var errStr sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&startedAt,
			&rec.DurationMs,
			&period,
			&rec.Offset,
			&rec.Count,
			&status,
			&rec.Channels,
			&rec.Total,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}

		rec.StartedAt = parseTime(startedAt)
		rec.Period = models.PeriodID(period)
		rec.Status = models.FetchStatus(status)
		rec.Error = errStr.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// FetchStats summarizes completed fetches. Cancelled requests are left out.
func (db *DB) FetchStats() (*models.FetchStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0),
			COALESCE(MAX(started_at), '')
		FROM fetch_log
		WHERE status != ?
	`

	var stats models.FetchStats
	var lastFetch string
	err := db.QueryRowContext(context.Background(), query,
		string(models.FetchFailed),
		string(models.FetchCancelled),
	).Scan(
		&stats.TotalFetches,
		&stats.FailedFetches,
		&stats.AvgDurationMs,
		&lastFetch,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch stats: %w", err)
	}

	stats.LastFetch = parseTime(lastFetch)
	return &stats, nil
}

// PruneFetches deletes all but the newest keep entries.
func (db *DB) PruneFetches(keep int) (int64, error) {
	query := `
		DELETE FROM fetch_log
		WHERE id NOT IN (
			SELECT id FROM fetch_log ORDER BY started_at DESC, id DESC LIMIT ?
		)
	`

	result, err := db.ExecContext(context.Background(), query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune fetch log: %w", err)
	}
	return result.RowsAffected()
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		logger.Warn("invalid timestamp in fetch log", "value", s, "error", err)
		return time.Time{}
	}
	return t
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
