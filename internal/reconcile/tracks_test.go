// file: internal/reconcile/tracks_test.go
// version: 1.0.0
// guid: 2d3e4f5a-6b7c-8d9e-0f1a-2b3c4d5e6f7a

package reconcile

import (
	"testing"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

func TestDiffTracksUnionOfPositions(t *testing.T) {
	current := []models.Track{{Position: "1", Title: "Intro"}}
	incoming := []models.Track{
		{Position: "1", Title: "Intro"},
		{Position: "2", Title: "Outro"},
	}

	diffs := DiffTracks(current, incoming)
	if len(diffs) != 2 {
		t.Fatalf("expected one entry per union position, got %d", len(diffs))
	}
	if diffs[0].Position != "1" || diffs[0].Status != TrackSame {
		t.Errorf("position 1 should be same, got %+v", diffs[0])
	}
	if diffs[1].Position != "2" || diffs[1].Status != TrackAdded {
		t.Errorf("position 2 should be added, got %+v", diffs[1])
	}
}

func TestDiffTracksChangedAndRemoved(t *testing.T) {
	current := []models.Track{
		{Position: "A1", Title: "So What", Duration: "9:22"},
		{Position: "A2", Title: "Freddie Freeloader"},
	}
	incoming := []models.Track{
		{Position: "A1", Title: "So What (Remaster)", Duration: "9:05"},
	}

	diffs := DiffTracks(current, incoming)
	if len(diffs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(diffs))
	}
	if diffs[0].Status != TrackChanged {
		t.Fatalf("A1 should be changed, got %s", diffs[0].Status)
	}
	wantChanges := map[string]bool{"title": true, "duration": true}
	for _, ch := range diffs[0].Changes {
		if !wantChanges[ch] {
			t.Errorf("unexpected change %q", ch)
		}
		delete(wantChanges, ch)
	}
	if len(wantChanges) != 0 {
		t.Errorf("missing changes: %v", wantChanges)
	}
	if diffs[1].Status != TrackRemoved {
		t.Errorf("A2 should be removed, got %s", diffs[1].Status)
	}
}

func TestDiffTracksNumericOrdering(t *testing.T) {
	current := []models.Track{{Position: "10", Title: "Ten"}, {Position: "2", Title: "Two"}}
	diffs := DiffTracks(current, nil)
	if diffs[0].Position != "2" || diffs[1].Position != "10" {
		t.Errorf("all-numeric positions must sort numerically, got %s then %s",
			diffs[0].Position, diffs[1].Position)
	}
}

func TestMergeTracksPreservesEnrichment(t *testing.T) {
	current := []models.Track{{Position: "A1", Title: "X", LyricsURL: "https://genius.example/x"}}
	incoming := []models.Track{{Position: "A1", Title: "X (Remaster)"}}

	merged := MergeTracks(current, incoming)
	if len(merged) != 1 {
		t.Fatalf("expected 1 track, got %d", len(merged))
	}
	if merged[0].Title != "X (Remaster)" {
		t.Errorf("structural fields must come from incoming, got %q", merged[0].Title)
	}
	if merged[0].LyricsURL != "https://genius.example/x" {
		t.Errorf("lyrics enrichment must survive the merge, got %q", merged[0].LyricsURL)
	}
}

func TestMergeTracksRetainsOrphanedCurrent(t *testing.T) {
	current := []models.Track{{Position: "A1", Title: "One"}, {Position: "A2", Title: "Two"}}
	incoming := []models.Track{{Position: "A1", Title: "One"}}

	merged := MergeTracks(current, incoming)
	if len(merged) != 2 {
		t.Fatalf("current-only positions must be retained, got %d tracks", len(merged))
	}
	if merged[0].Position != "A1" || merged[1].Position != "A2" {
		t.Errorf("expected A1 then A2, got %s then %s", merged[0].Position, merged[1].Position)
	}
}

func TestMergeTracksDurationAndIDCarryOver(t *testing.T) {
	current := []models.Track{{Position: "1", Title: "Song", Duration: "3:45", ID: "trk_1"}}
	incoming := []models.Track{{Position: "1", Title: "Song", Artist: "Guest"}}

	merged := MergeTracks(current, incoming)
	if merged[0].Duration != "3:45" {
		t.Errorf("duration should carry over when incoming omits it, got %q", merged[0].Duration)
	}
	if merged[0].ID != "trk_1" {
		t.Errorf("track ID should carry over, got %q", merged[0].ID)
	}
	if merged[0].Artist != "Guest" {
		t.Errorf("incoming artist should win, got %q", merged[0].Artist)
	}
}

func TestMergeTracksSortedByPositionRule(t *testing.T) {
	current := []models.Track{{Position: "3", Title: "Three"}}
	incoming := []models.Track{{Position: "10", Title: "Ten"}, {Position: "2", Title: "Two"}}

	merged := MergeTracks(current, incoming)
	got := []string{merged[0].Position, merged[1].Position, merged[2].Position}
	want := []string{"2", "3", "10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
