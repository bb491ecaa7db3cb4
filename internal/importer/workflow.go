// file: internal/importer/workflow.go
// version: 1.0.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

// Package importer orchestrates import batches: matching external records
// against the collection, applying safe updates, and queueing conflicts for
// review.
package importer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/matcher"
	"github.com/cratekeeper/cratekeeper/internal/metrics"
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/reconcile"
)

// DefaultFolder is assigned to imported albums that carry no folder of
// their own.
const DefaultFolder = "All Albums"

// Options tune one import run.
type Options struct {
	Mode models.UpdateMode
	// Progress, when set, is called after each record with (processed, total).
	Progress func(processed, total int)
}

// Importer runs import batches against a Store.
type Importer struct {
	store database.Store
}

// New creates an Importer backed by the given store.
func New(store database.Store) *Importer {
	return &Importer{store: store}
}

// Run processes a batch of external records. The collection is snapshotted
// once up front, so every record in the batch matches against the same
// state. A failing record is recorded and skipped; the batch continues.
func (imp *Importer) Run(ctx context.Context, source models.ImportSource, records []models.Album, opts Options) (*models.ImportResult, error) {
	if opts.Mode == "" {
		opts.Mode = models.UpdateAll
	}
	started := time.Now()
	result := &models.ImportResult{
		RunID: ulid.Make().String(),
	}
	metrics.IncImportStarted(string(source))
	log.Printf("[INFO] import %s: starting %s run with %d records",
		result.RunID, source, len(records))

	existing, err := imp.store.AllAlbums(ctx)
	if err != nil {
		metrics.IncImportFailed(string(source))
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	snapshot := matcher.NewSnapshot(existing)

	resolutions, err := imp.store.PreviousResolutions(ctx, source)
	if err != nil {
		metrics.IncImportFailed(string(source))
		return nil, fmt.Errorf("failed to load previous resolutions: %w", err)
	}
	resolutionsByAlbum := make(map[int64][]models.PreviousResolution)
	for _, r := range resolutions {
		resolutionsByAlbum[r.AlbumID] = append(resolutionsByAlbum[r.AlbumID], r)
	}

	for i := range records {
		record := &records[i]
		if err := imp.processRecord(ctx, source, snapshot, resolutionsByAlbum, record, opts, result); err != nil {
			result.Errors = append(result.Errors, models.ImportError{
				Album: record.Artist + " — " + record.Title,
				Error: err.Error(),
			})
			metrics.IncRecord(string(source), "error")
			log.Printf("[WARN] import %s: record %q/%q failed: %v",
				result.RunID, record.Artist, record.Title, err)
		}
		result.TotalProcessed++
		if opts.Progress != nil {
			opts.Progress(result.TotalProcessed, len(records))
		}
	}

	result.Success = len(result.Errors) == 0
	result.Message = fmt.Sprintf("%d processed: %d new, %d updated, %d conflicts, %d skipped, %d errors",
		result.TotalProcessed, result.NewAlbums, result.UpdatedAlbums,
		result.ConflictsDetected, result.SkippedAlbums, len(result.Errors))

	run := &models.ImportRun{
		ID:             result.RunID,
		Source:         source,
		RecordsAdded:   result.NewAlbums,
		RecordsUpdated: result.UpdatedAlbums,
		Conflicts:      result.ConflictsDetected,
		ErrorCount:     len(result.Errors),
		Status:         runStatus(result),
		Notes:          result.Message,
	}
	if err := imp.store.SaveImportRun(ctx, run); err != nil {
		log.Printf("[ERROR] import %s: failed to record history: %v", result.RunID, err)
	}

	metrics.IncImportCompleted(string(source))
	metrics.ObserveImportDuration(string(source), time.Since(started))
	metrics.SetAlbums(len(existing) + result.NewAlbums)
	log.Printf("[INFO] import %s: %s", result.RunID, result.Message)
	return result, nil
}

func runStatus(result *models.ImportResult) string {
	switch {
	case len(result.Errors) == 0:
		return "completed"
	case result.NewAlbums+result.UpdatedAlbums > 0:
		return "completed_with_errors"
	default:
		return "failed"
	}
}

func (imp *Importer) processRecord(
	ctx context.Context,
	source models.ImportSource,
	snapshot *matcher.Snapshot,
	resolutionsByAlbum map[int64][]models.PreviousResolution,
	record *models.Album,
	opts Options,
	result *models.ImportResult,
) error {
	if record.Artist == "" || record.Title == "" {
		return fmt.Errorf("record is missing artist or title")
	}

	existing := snapshot.Match(record)
	if existing == nil {
		if record.Folder == "" {
			record.Folder = DefaultFolder
		}
		if record.DateAdded == nil {
			now := time.Now().UTC()
			record.DateAdded = &now
		}
		if _, err := imp.store.CreateAlbum(ctx, record); err != nil {
			return fmt.Errorf("failed to create album: %w", err)
		}
		result.NewAlbums++
		metrics.IncRecord(string(source), "new")
		return nil
	}

	updates := reconcile.IdentifyingUpdates(existing, record)

	var conflicts []models.FieldConflict
	if opts.Mode == models.UpdateMissingOnly {
		for field, value := range reconcile.SafeUpdatesOnly(existing, record, source) {
			updates[field] = value
		}
	} else {
		detected := reconcile.Detect(existing, record, source, resolutionsByAlbum[existing.ID])
		for field, value := range detected.SafeUpdates {
			updates[field] = value
		}
		conflicts = detected.Conflicts
	}

	if len(updates) == 0 && len(conflicts) == 0 {
		result.SkippedAlbums++
		metrics.IncRecord(string(source), "skipped")
		return nil
	}

	if len(updates) > 0 {
		if err := imp.store.UpdateAlbumFields(ctx, existing.ID, updates); err != nil {
			return fmt.Errorf("failed to apply safe updates: %w", err)
		}
		result.UpdatedAlbums++
		metrics.IncRecord(string(source), "updated")
	} else {
		result.SkippedAlbums++
		metrics.IncRecord(string(source), "skipped")
	}

	if len(conflicts) > 0 {
		if err := imp.store.SaveConflicts(ctx, conflicts); err != nil {
			return fmt.Errorf("failed to queue conflicts: %w", err)
		}
		result.ConflictsDetected += len(conflicts)
		result.Conflicts = append(result.Conflicts, conflicts...)
		metrics.IncConflictsDetected(string(source), len(conflicts))
	}
	return nil
}
