// file: internal/importer/preview.go
// version: 1.0.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a

package importer

import (
	"context"
	"fmt"
	"sort"

	"github.com/cratekeeper/cratekeeper/internal/matcher"
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/reconcile"
)

// PreviewRecord describes what an import would do to one record.
type PreviewRecord struct {
	Artist         string   `json:"artist"`
	Title          string   `json:"title"`
	Action         string   `json:"action"` // new, update, conflict, skip, error
	SafeFields     []string `json:"safe_fields,omitempty"`
	ConflictFields []string `json:"conflict_fields,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Preview summarizes a dry import run.
type Preview struct {
	Total     int             `json:"total"`
	New       int             `json:"new"`
	Updates   int             `json:"updates"`
	Conflicts int             `json:"conflicts"`
	Skips     int             `json:"skips"`
	Records   []PreviewRecord `json:"records"`
}

// Preview computes what Run would do without writing anything. It uses the
// same snapshot, matching and detection paths as the real run.
func (imp *Importer) Preview(ctx context.Context, source models.ImportSource, records []models.Album, mode models.UpdateMode) (*Preview, error) {
	if mode == "" {
		mode = models.UpdateAll
	}

	existing, err := imp.store.AllAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	snapshot := matcher.NewSnapshot(existing)

	resolutions, err := imp.store.PreviousResolutions(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous resolutions: %w", err)
	}
	resolutionsByAlbum := make(map[int64][]models.PreviousResolution)
	for _, r := range resolutions {
		resolutionsByAlbum[r.AlbumID] = append(resolutionsByAlbum[r.AlbumID], r)
	}

	preview := &Preview{Total: len(records)}
	for i := range records {
		record := &records[i]
		pr := PreviewRecord{Artist: record.Artist, Title: record.Title}

		switch {
		case record.Artist == "" || record.Title == "":
			pr.Action = "error"
			pr.Error = "record is missing artist or title"
		default:
			match := snapshot.Match(record)
			if match == nil {
				pr.Action = "new"
				preview.New++
				break
			}

			updates := reconcile.IdentifyingUpdates(match, record)
			var conflicts []models.FieldConflict
			if mode == models.UpdateMissingOnly {
				for field := range reconcile.SafeUpdatesOnly(match, record, source) {
					updates[field] = nil
				}
			} else {
				detected := reconcile.Detect(match, record, source, resolutionsByAlbum[match.ID])
				for field := range detected.SafeUpdates {
					updates[field] = nil
				}
				conflicts = detected.Conflicts
			}

			for field := range updates {
				pr.SafeFields = append(pr.SafeFields, field)
			}
			sort.Strings(pr.SafeFields)
			for _, c := range conflicts {
				pr.ConflictFields = append(pr.ConflictFields, c.FieldName)
			}

			switch {
			case len(conflicts) > 0:
				pr.Action = "conflict"
				preview.Conflicts++
			case len(pr.SafeFields) > 0:
				pr.Action = "update"
				preview.Updates++
			default:
				pr.Action = "skip"
				preview.Skips++
			}
		}
		preview.Records = append(preview.Records, pr)
	}
	return preview, nil
}
