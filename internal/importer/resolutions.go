// file: internal/importer/resolutions.go
// version: 1.0.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package importer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/metrics"
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/reconcile"
)

// ErrStaleConflict means the album changed since the conflict was raised;
// the stored "current" side no longer reflects reality and the decision
// cannot be applied safely.
var ErrStaleConflict = errors.New("conflict is stale: album changed since it was detected")

// ErrCannotMerge means the merge resolution was requested for a field whose
// values have no merge semantics.
var ErrCannotMerge = errors.New("field values cannot be merged")

// Resolve settles one pending conflict. The album's live value is
// re-checked against the conflict's recorded current value first, so a
// decision made against a stale snapshot is refused rather than applied.
func (imp *Importer) Resolve(ctx context.Context, conflictID int64, kind models.ResolutionKind) (*models.Resolution, error) {
	conflict, err := imp.store.GetConflict(ctx, conflictID)
	if err != nil {
		return nil, err
	}

	album, err := imp.store.GetAlbum(ctx, conflict.AlbumID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// The album is gone; discard the orphaned conflict.
			_ = imp.store.DeleteConflict(ctx, conflictID)
		}
		return nil, err
	}

	liveValue := album.FieldMap()[conflict.FieldName]
	if !reconcile.Equal(liveValue, conflict.CurrentValue) {
		return nil, fmt.Errorf("%w: field %s on album %d", ErrStaleConflict,
			conflict.FieldName, conflict.AlbumID)
	}

	if kind == models.Merge && !reconcile.CanMerge(conflict.FieldName, conflict.CurrentValue, conflict.NewValue) {
		return nil, fmt.Errorf("%w: field %s", ErrCannotMerge, conflict.FieldName)
	}

	resolved := reconcile.Apply(conflict.CurrentValue, conflict.NewValue, kind)
	rejected := reconcile.Rejected(conflict.CurrentValue, conflict.NewValue, kind)

	err = imp.store.ApplyResolution(ctx, database.ResolutionRequest{
		AlbumID:       conflict.AlbumID,
		FieldName:     conflict.FieldName,
		Source:        conflict.Source,
		Resolution:    kind,
		ResolvedValue: resolved,
		KeptValue:     resolved,
		RejectedValue: rejected,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply resolution: %w", err)
	}

	metrics.IncConflictResolved(string(kind))
	log.Printf("[INFO] resolved conflict %d: album %d field %s -> %s",
		conflictID, conflict.AlbumID, conflict.FieldName, kind)

	return &models.Resolution{
		AlbumID:       conflict.AlbumID,
		FieldName:     conflict.FieldName,
		Resolution:    kind,
		ResolvedValue: resolved,
		CurrentValue:  conflict.CurrentValue,
		NewValue:      conflict.NewValue,
	}, nil
}

// Dismiss drops a pending conflict without recording a resolution; the same
// divergence will be raised again on the next import.
func (imp *Importer) Dismiss(ctx context.Context, conflictID int64) error {
	return imp.store.DeleteConflict(ctx, conflictID)
}
