// file: internal/database/imports.go
// version: 1.0.0
// guid: 4d5e6f7a-8b9c-0d1e-2f3a-4b5c6d7e8f9a

package database

import (
	"context"
	"fmt"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

// SaveImportRun records one completed (or failed) import batch.
func (s *SQLiteStore) SaveImportRun(ctx context.Context, run *models.ImportRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_history
			(id, source, records_added, records_updated, conflicts, error_count, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Source), run.RecordsAdded, run.RecordsUpdated,
		run.Conflicts, run.ErrorCount, run.Status, run.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save import run %s: %w", run.ID, err)
	}
	return nil
}

// ListImportRuns returns the most recent import runs, newest first.
func (s *SQLiteStore) ListImportRuns(ctx context.Context, limit int) ([]models.ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, records_added, records_updated, conflicts,
		       error_count, status, notes, created_at
		FROM import_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ImportRun
	for rows.Next() {
		var r models.ImportRun
		var source string
		if err := rows.Scan(&r.ID, &source, &r.RecordsAdded, &r.RecordsUpdated,
			&r.Conflicts, &r.ErrorCount, &r.Status, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		r.Source = models.ImportSource(source)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ThousandEntries returns the full 1001-albums reference list.
func (s *SQLiteStore) ThousandEntries(ctx context.Context) ([]models.ThousandEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, artist, title, year FROM thousand_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list 1001 entries: %w", err)
	}
	defer rows.Close()

	var entries []models.ThousandEntry
	for rows.Next() {
		var e models.ThousandEntry
		if err := rows.Scan(&e.ID, &e.Artist, &e.Title, &e.Year); err != nil {
			return nil, fmt.Errorf("failed to scan 1001 entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveThousandEntries loads or refreshes the reference list.
func (s *SQLiteStore) SaveThousandEntries(ctx context.Context, entries []models.ThousandEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO thousand_entries (artist, title, year) VALUES (?, ?, ?)
		ON CONFLICT(artist, title) DO UPDATE SET year = excluded.year`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Artist, e.Title, e.Year); err != nil {
			return fmt.Errorf("failed to save 1001 entry %q/%q: %w", e.Artist, e.Title, err)
		}
	}
	return tx.Commit()
}

// SaveThousandReview upserts a match review. Approving a review also flags
// the album, rejecting clears the flag, in the same transaction.
func (s *SQLiteStore) SaveThousandReview(ctx context.Context, review *models.ThousandReview) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO thousand_reviews (album_id, entry_id, status, confidence, notes)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(album_id, entry_id) DO UPDATE SET
			status = excluded.status,
			confidence = excluded.confidence,
			notes = excluded.notes`,
		review.AlbumID, review.EntryID, review.Status, review.Confidence, review.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}

	switch review.Status {
	case "approved":
		_, err = tx.ExecContext(ctx,
			`UPDATE albums SET is_1001 = 1 WHERE id = ?`, review.AlbumID)
	case "rejected":
		_, err = tx.ExecContext(ctx,
			`UPDATE albums SET is_1001 = 0 WHERE id = ?`, review.AlbumID)
	}
	if err != nil {
		return fmt.Errorf("failed to update album flag: %w", err)
	}
	return tx.Commit()
}

// ListThousandReviews returns reviews, optionally filtered by status.
func (s *SQLiteStore) ListThousandReviews(ctx context.Context, status string) ([]models.ThousandReview, error) {
	query := `SELECT album_id, entry_id, status, confidence, notes FROM thousand_reviews`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY confidence DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ThousandReview
	for rows.Next() {
		var r models.ThousandReview
		if err := rows.Scan(&r.AlbumID, &r.EntryID, &r.Status, &r.Confidence, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
