// file: internal/reconcile/detect.go
// version: 1.1.0
// guid: 8f9a0b1c-2d3e-4f5a-6b7c-8d9e0f1a2b3c

package reconcile

import (
	"github.com/cratekeeper/cratekeeper/internal/models"
)

// Result is the outcome of one detection pass over a matched album pair.
type Result struct {
	// SafeUpdates are fields where the destination was empty and the
	// incoming side supplies a value; they apply without review.
	SafeUpdates map[string]any
	// Conflicts are fields where both sides are populated and disagree.
	Conflicts []models.FieldConflict
}

// IdentifyingUpdates returns the identifying fields an import is allowed to
// set: only those currently empty on the existing album. Identifying fields
// never produce conflicts; a populated value is simply left alone.
func IdentifyingUpdates(existing, incoming *models.Album) map[string]any {
	existingFields := existing.FieldMap()
	incomingFields := incoming.FieldMap()

	updates := make(map[string]any)
	for _, field := range IdentifyingFields {
		if normalizeEmpty(existingFields[field]) != nil {
			continue
		}
		if value := incomingFields[field]; normalizeEmpty(value) != nil {
			updates[field] = value
		}
	}
	return updates
}

// Detect computes per-field dispositions for a matched album pair. For every
// conflictable field: empty destination with a populated source is a safe
// update; both populated and unequal is a conflict unless an identical
// (kept, rejected) pair was already resolved; anything else is a no-op.
// Pure function; the caller persists and queues the results.
func Detect(existing, incoming *models.Album, source models.ImportSource, previous []models.PreviousResolution) Result {
	result := Result{SafeUpdates: make(map[string]any)}

	resolutionsByField := make(map[string]models.PreviousResolution, len(previous))
	for _, res := range previous {
		resolutionsByField[res.FieldName] = res
	}

	existingFields := existing.FieldMap()
	incomingFields := incoming.FieldMap()

	for _, field := range ConflictableFields {
		existingValue := existingFields[field]
		newValue := incomingFields[field]
		normExisting := normalizeEmpty(existingValue)
		normNew := normalizeEmpty(newValue)

		switch {
		case normExisting == nil && normNew == nil:
			continue
		case normExisting == nil:
			result.SafeUpdates[field] = newValue
			continue
		case normNew == nil:
			continue
		}

		var differ bool
		switch {
		case field == "tracks":
			differ = !tracksEqual(existingValue, newValue)
		case field == "disc_metadata":
			differ = !discMetadataEqual(existingValue, newValue)
		case tagLikeFields[field]:
			differ = !tagLikeEqual(existingValue, newValue)
		default:
			differ = !Equal(existingValue, newValue)
		}
		if !differ {
			continue
		}

		// An identical conflict already settled by a human is not raised
		// again; a changed value on either side is a fresh conflict.
		if res, ok := resolutionsByField[field]; ok {
			if Equal(res.KeptValue, existingValue) && Equal(res.RejectedValue, newValue) {
				continue
			}
		}

		result.Conflicts = append(result.Conflicts, models.FieldConflict{
			AlbumID:      existing.ID,
			FieldName:    field,
			CurrentValue: existingValue,
			NewValue:     newValue,
			Source:       source,
			Artist:       existing.Artist,
			Title:        existing.Title,
			Format:       existing.Format,
			CatNo:        existing.CatNo,
			Barcode:      existing.Barcode,
			Country:      existing.Country,
			Year:         existing.Year,
			Labels:       existing.Labels,
		})
	}
	return result
}

// SafeUpdatesOnly runs detection with conflicts discarded, for the
// fill-missing-only import mode.
func SafeUpdatesOnly(existing, incoming *models.Album, source models.ImportSource) map[string]any {
	return Detect(existing, incoming, source, nil).SafeUpdates
}
