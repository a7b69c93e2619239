package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prismlabs/prism-tui/internal/models"
)

// snapshotRetention caps how many snapshots are kept per period.
const snapshotRetention = 500

// Snapshot is one cached summary with its fetch time.
type Snapshot struct {
	ID        int64
	Summary   models.Summary
	FetchedAt time.Time
}

// SaveSummary records a freshly fetched summary and prunes old snapshots
// for the same period.
func (db *DB) SaveSummary(summary models.Summary) error {
	query := `
		INSERT INTO summary_snapshots (
			period, total_requests, total_input_tokens, total_output_tokens,
			total_cost, avg_latency_ms, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(context.Background(), query,
		string(summary.Period),
		summary.TotalRequests,
		summary.TotalInputTokens,
		summary.TotalOutputTokens,
		summary.TotalCostUSD,
		summary.AvgLatencyMs,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert summary snapshot: %w", err)
	}

	return db.pruneSnapshots(summary.Period)
}

// LatestSummary returns the most recent cached summary for a period, or
// (nil, nil) when none exists.
func (db *DB) LatestSummary(period models.Period) (*Snapshot, error) {
	query := `
		SELECT id, period, total_requests, total_input_tokens, total_output_tokens,
			   total_cost, avg_latency_ms, fetched_at
		FROM summary_snapshots
		WHERE period = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`

	var (
		snap      Snapshot
		periodStr string
		fetchedAt string
	)
	err := db.QueryRowContext(context.Background(), query, string(period)).Scan(
		&snap.ID,
		&periodStr,
		&snap.Summary.TotalRequests,
		&snap.Summary.TotalInputTokens,
		&snap.Summary.TotalOutputTokens,
		&snap.Summary.TotalCostUSD,
		&snap.Summary.AvgLatencyMs,
		&fetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest summary: %w", err)
	}

	snap.Summary.Period = models.Period(periodStr)
	if t, err := time.Parse("2006-01-02 15:04:05", fetchedAt); err == nil {
		snap.FetchedAt = t
	}
	return &snap, nil
}

// SummaryHistory returns cached summaries for a period, newest first.
func (db *DB) SummaryHistory(period models.Period, limit int) ([]Snapshot, error) {
	query := `
		SELECT id, period, total_requests, total_input_tokens, total_output_tokens,
			   total_cost, avg_latency_ms, fetched_at
		FROM summary_snapshots
		WHERE period = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, string(period), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []Snapshot
	for rows.Next() {
		var (
			snap      Snapshot
			periodStr string
			fetchedAt string
		)
		if err := rows.Scan(
			&snap.ID,
			&periodStr,
			&snap.Summary.TotalRequests,
			&snap.Summary.TotalInputTokens,
			&snap.Summary.TotalOutputTokens,
			&snap.Summary.TotalCostUSD,
			&snap.Summary.AvgLatencyMs,
			&fetchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Summary.Period = models.Period(periodStr)
		if t, err := time.Parse("2006-01-02 15:04:05", fetchedAt); err == nil {
			snap.FetchedAt = t
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// pruneSnapshots deletes all but the newest snapshotRetention rows for a period.
func (db *DB) pruneSnapshots(period models.Period) error {
	query := `
		DELETE FROM summary_snapshots
		WHERE period = ? AND id NOT IN (
			SELECT id FROM summary_snapshots
			WHERE period = ?
			ORDER BY fetched_at DESC, id DESC
			LIMIT ?
		)
	`
	if _, err := db.ExecContext(context.Background(), query, string(period), string(period), snapshotRetention); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}
