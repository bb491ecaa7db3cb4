// file: internal/reconcile/detect_test.go
// version: 1.1.0
// guid: 1c2d3e4f-5a6b-7c8d-9e0f-1a2b3c4d5e6f

package reconcile

import (
	"testing"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

func baseAlbum() *models.Album {
	return &models.Album{
		ID:     42,
		Artist: "Miles Davis",
		Title:  "Kind of Blue",
		Format: "Vinyl",
		Year:   "1959",
	}
}

func conflictFields(result Result) []string {
	fields := make([]string, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		fields = append(fields, c.FieldName)
	}
	return fields
}

func TestDetectSafeUpdateWhenDestinationEmpty(t *testing.T) {
	existing := baseAlbum()
	incoming := baseAlbum()
	incoming.Notes = "Columbia six-eye pressing"
	incoming.Tracks = []models.Track{{Position: "A1", Title: "So What"}}

	result := Detect(existing, incoming, models.SourceCLZ, nil)
	if len(result.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", conflictFields(result))
	}
	if _, ok := result.SafeUpdates["notes"]; !ok {
		t.Error("expected safe update for notes")
	}
	if _, ok := result.SafeUpdates["tracks"]; !ok {
		t.Error("expected safe update for tracks")
	}
	if len(result.SafeUpdates) != 2 {
		t.Errorf("expected exactly 2 safe updates, got %d: %v", len(result.SafeUpdates), result.SafeUpdates)
	}
}

func TestDetectConflictWhenBothPopulated(t *testing.T) {
	existing := baseAlbum()
	existing.Notes = "first pressing"
	incoming := baseAlbum()
	incoming.Notes = "reissue"

	result := Detect(existing, incoming, models.SourceCLZ, nil)
	if len(result.SafeUpdates) != 0 {
		t.Errorf("expected no safe updates, got %v", result.SafeUpdates)
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].FieldName != "notes" {
		t.Fatalf("expected one notes conflict, got %v", conflictFields(result))
	}
	c := result.Conflicts[0]
	if c.AlbumID != 42 || c.Artist != "Miles Davis" || c.CurrentValue != "first pressing" || c.NewValue != "reissue" {
		t.Errorf("conflict context not populated: %+v", c)
	}
}

func TestDetectNoOpWhenIncomingEmptyOrEqual(t *testing.T) {
	existing := baseAlbum()
	existing.Notes = "keep me"
	existing.Packaging = "Gatefold"
	incoming := baseAlbum()
	incoming.Packaging = "Gatefold"

	result := Detect(existing, incoming, models.SourceCLZ, nil)
	if len(result.SafeUpdates) != 0 || len(result.Conflicts) != 0 {
		t.Errorf("expected no action, got updates=%v conflicts=%v", result.SafeUpdates, conflictFields(result))
	}
}

func TestDetectPreviousResolutionSuppression(t *testing.T) {
	existing := baseAlbum()
	existing.Notes = "kept notes"
	incoming := baseAlbum()
	incoming.Notes = "rejected notes"

	previous := []models.PreviousResolution{{
		AlbumID:       42,
		FieldName:     "notes",
		KeptValue:     "kept notes",
		RejectedValue: "rejected notes",
		Resolution:    models.KeepCurrent,
		Source:        models.SourceCLZ,
	}}

	result := Detect(existing, incoming, models.SourceCLZ, previous)
	if len(result.Conflicts) != 0 {
		t.Errorf("identical resolved conflict should be suppressed, got %v", conflictFields(result))
	}

	// A different incoming value is a fresh conflict, same field or not.
	incoming.Notes = "brand new notes"
	result = Detect(existing, incoming, models.SourceCLZ, previous)
	if len(result.Conflicts) != 1 {
		t.Errorf("changed value must re-raise the conflict, got %v", conflictFields(result))
	}
}

func TestDetectTagLikeFieldsCompareLoosely(t *testing.T) {
	existing := baseAlbum()
	existing.DiscogsGenres = []string{"Jazz", "Blues"}
	incoming := baseAlbum()
	incoming.DiscogsGenres = []string{"blues", "jazz"}

	result := Detect(existing, incoming, models.SourceDiscogs, nil)
	if len(result.Conflicts) != 0 {
		t.Errorf("case/order differences in genres should not conflict, got %v", conflictFields(result))
	}
}

func TestDetectTracksDurationBackfill(t *testing.T) {
	existing := baseAlbum()
	existing.Tracks = []models.Track{{Position: "A1", Title: "So What", Duration: "9:22"}}
	incoming := baseAlbum()
	incoming.Tracks = []models.Track{{Position: "A1", Title: "So What"}}

	result := Detect(existing, incoming, models.SourceCLZ, nil)
	if len(result.Conflicts) != 0 {
		t.Errorf("missing incoming duration should not conflict, got %v", conflictFields(result))
	}

	incoming.Tracks[0].Title = "So What (Remaster)"
	result = Detect(existing, incoming, models.SourceCLZ, nil)
	if len(result.Conflicts) != 1 || result.Conflicts[0].FieldName != "tracks" {
		t.Errorf("changed title must conflict, got %v", conflictFields(result))
	}
}

func TestDetectZeroRatingIsUnset(t *testing.T) {
	existing := baseAlbum()
	incoming := baseAlbum()
	incoming.MyRating = 4

	result := Detect(existing, incoming, models.SourceCLZ, nil)
	if _, ok := result.SafeUpdates["my_rating"]; !ok {
		t.Error("rating 0 on the existing side should count as empty")
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("expected no conflicts, got %v", conflictFields(result))
	}
}

func TestIdentifyingUpdatesWriteOnce(t *testing.T) {
	existing := baseAlbum()
	existing.CatNo = "CL 1355"
	incoming := baseAlbum()
	incoming.CatNo = "CS 8163"
	incoming.Barcode = "5099706493518"
	incoming.Country = "US"

	updates := IdentifyingUpdates(existing, incoming)
	if _, ok := updates["cat_no"]; ok {
		t.Error("populated identifying field must never be overwritten")
	}
	if updates["barcode"] != "5099706493518" {
		t.Errorf("empty barcode should be filled, got %v", updates["barcode"])
	}
	if updates["country"] != "US" {
		t.Errorf("empty country should be filled, got %v", updates["country"])
	}
}

func TestDetectIdempotenceAfterAbsorbingSafeUpdates(t *testing.T) {
	existing := baseAlbum()
	incoming := baseAlbum()
	incoming.Notes = "liner notes"
	incoming.DiscogsStyles = []string{"Modal"}
	incoming.Tracks = []models.Track{{Position: "1", Title: "So What", Duration: "9:22"}}

	first := Detect(existing, incoming, models.SourceCLZ, nil)
	if len(first.SafeUpdates) == 0 || len(first.Conflicts) != 0 {
		t.Fatalf("unexpected first pass: updates=%v conflicts=%v", first.SafeUpdates, conflictFields(first))
	}

	// Simulate the store absorbing the safe updates.
	absorbed := *existing
	absorbed.Notes = incoming.Notes
	absorbed.DiscogsStyles = incoming.DiscogsStyles
	absorbed.Tracks = incoming.Tracks

	second := Detect(&absorbed, incoming, models.SourceCLZ, nil)
	if len(second.SafeUpdates) != 0 || len(second.Conflicts) != 0 {
		t.Errorf("second pass must be a no-op, got updates=%v conflicts=%v",
			second.SafeUpdates, conflictFields(second))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		field string
		want  Class
	}{
		{"cat_no", Identifying},
		{"barcode", Identifying},
		{"tracks", Conflictable},
		{"notes", Conflictable},
		{"collection_status", Unclassified},
		{"made_up_field", Unclassified},
	}
	for _, tt := range tests {
		if got := Classify(tt.field); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}
