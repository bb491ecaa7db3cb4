// file: internal/database/conflicts.go
// version: 1.0.0
// guid: 3c4d5e6f-7a8b-9c0d-1e2f-3a4b5c6d7e8f

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

// SaveConflicts upserts pending conflicts. Re-importing the same divergence
// refreshes the stored incoming value instead of duplicating the row.
func (s *SQLiteStore) SaveConflicts(ctx context.Context, conflicts []models.FieldConflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO import_conflicts
			(album_id, field_name, current_value, new_value, source,
			 artist, title, format, cat_no, barcode, country, year, labels)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(album_id, field_name, source) DO UPDATE SET
			current_value = excluded.current_value,
			new_value = excluded.new_value,
			created_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare conflict insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range conflicts {
		_, err := stmt.ExecContext(ctx,
			c.AlbumID, c.FieldName, encodeJSON(c.CurrentValue),
			encodeJSON(c.NewValue), string(c.Source),
			c.Artist, c.Title, c.Format, c.CatNo, c.Barcode, c.Country,
			c.Year, encodeJSON(c.Labels),
		)
		if err != nil {
			return fmt.Errorf("failed to save conflict for album %d field %s: %w",
				c.AlbumID, c.FieldName, err)
		}
	}
	return tx.Commit()
}

const conflictColumns = `
	id, album_id, field_name, current_value, new_value, source,
	artist, title, format, cat_no, barcode, country, year, labels
`

func scanConflict(scanner rowScanner, c *models.FieldConflict) error {
	var current, incoming, labels sql.NullString
	var source string
	err := scanner.Scan(
		&c.ID, &c.AlbumID, &c.FieldName, &current, &incoming, &source,
		&c.Artist, &c.Title, &c.Format, &c.CatNo, &c.Barcode, &c.Country,
		&c.Year, &labels,
	)
	if err != nil {
		return err
	}
	c.Source = models.ImportSource(source)
	c.CurrentValue = decodeValue(current)
	c.NewValue = decodeValue(incoming)
	decodeJSON(labels, &c.Labels)
	return nil
}

// decodeValue turns a stored JSON payload back into a Go value; NULL means
// the side was empty.
func decodeValue(src sql.NullString) any {
	if !src.Valid || src.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(src.String), &v); err != nil {
		return src.String
	}
	return v
}

// ListConflicts returns all pending conflicts, oldest first.
func (s *SQLiteStore) ListConflicts(ctx context.Context) ([]models.FieldConflict, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+conflictColumns+` FROM import_conflicts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []models.FieldConflict
	for rows.Next() {
		var c models.FieldConflict
		if err := scanConflict(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan conflict: %w", err)
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, rows.Err()
}

// GetConflict retrieves one pending conflict by ID.
func (s *SQLiteStore) GetConflict(ctx context.Context, id int64) (*models.FieldConflict, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+conflictColumns+` FROM import_conflicts WHERE id = ?`, id)
	var c models.FieldConflict
	if err := scanConflict(row, &c); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conflict %d: %w", id, err)
	}
	return &c, nil
}

// DeleteConflict discards a pending conflict without resolving it.
func (s *SQLiteStore) DeleteConflict(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM import_conflicts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conflict %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// PreviousResolutions returns every settled conflict for a source, used to
// suppress re-raising decisions the user has already made.
func (s *SQLiteStore) PreviousResolutions(ctx context.Context, source models.ImportSource) ([]models.PreviousResolution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT album_id, field_name, source, resolution, kept_value, rejected_value
		FROM import_conflict_resolutions WHERE source = ?`, string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	defer rows.Close()

	var resolutions []models.PreviousResolution
	for rows.Next() {
		var r models.PreviousResolution
		var src, resolution string
		var kept, rejected sql.NullString
		if err := rows.Scan(&r.AlbumID, &r.FieldName, &src, &resolution, &kept, &rejected); err != nil {
			return nil, fmt.Errorf("failed to scan resolution: %w", err)
		}
		r.Source = models.ImportSource(src)
		r.Resolution = models.ResolutionKind(resolution)
		r.KeptValue = decodeValue(kept)
		r.RejectedValue = decodeValue(rejected)
		resolutions = append(resolutions, r)
	}
	return resolutions, rows.Err()
}

// ApplyResolution settles one conflict atomically: the album field write,
// the resolution record, and the pending conflict removal either all happen
// or none do.
func (s *SQLiteStore) ApplyResolution(ctx context.Context, req ResolutionRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if req.Resolution != models.KeepCurrent {
		fields := map[string]any{req.FieldName: req.ResolvedValue}
		if err := updateFieldsTx(ctx, tx, req.AlbumID, fields); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO import_conflict_resolutions
			(album_id, field_name, source, resolution, kept_value, rejected_value)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(album_id, field_name, source) DO UPDATE SET
			resolution = excluded.resolution,
			kept_value = excluded.kept_value,
			rejected_value = excluded.rejected_value,
			resolved_at = CURRENT_TIMESTAMP`,
		req.AlbumID, req.FieldName, string(req.Source),
		string(req.Resolution), encodeJSON(req.KeptValue),
		encodeJSON(req.RejectedValue),
	)
	if err != nil {
		return fmt.Errorf("failed to record resolution: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM import_conflicts
		WHERE album_id = ? AND field_name = ? AND source = ?`,
		req.AlbumID, req.FieldName, string(req.Source))
	if err != nil {
		return fmt.Errorf("failed to clear pending conflict: %w", err)
	}
	return tx.Commit()
}
