// file: internal/matcher/matcher_test.go
// version: 2.0.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package matcher

import (
	"testing"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

func TestMatchByDiscogsID(t *testing.T) {
	snapshot := NewSnapshot([]models.Album{
		{ID: 1, Artist: "Miles Davis", Title: "Kind of Blue", DiscogsReleaseID: "12345"},
		{ID: 2, Artist: "Miles Davis", Title: "Kind of Blue", DiscogsReleaseID: "67890"},
	})

	got := snapshot.Match(&models.Album{
		Artist: "Totally Different Name", Title: "Whatever", DiscogsReleaseID: "67890",
	})
	if got == nil || got.ID != 2 {
		t.Fatalf("external ID must win over name matching, got %+v", got)
	}
}

func TestMatchByNormalizedKey(t *testing.T) {
	snapshot := NewSnapshot([]models.Album{
		{ID: 1, Artist: "The Beatles", Title: "Abbey Road"},
	})

	got := snapshot.Match(&models.Album{Artist: "Beatles", Title: "abbey road!"})
	if got == nil || got.ID != 1 {
		t.Fatalf("normalized key should bridge article and punctuation, got %+v", got)
	}
}

func TestMatchDisambiguatesPressings(t *testing.T) {
	snapshot := NewSnapshot([]models.Album{
		{ID: 1, Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl", CatNo: "CL 1355"},
		{ID: 2, Artist: "Miles Davis", Title: "Kind of Blue", Format: "CD", CatNo: "CK 64935"},
	})

	got := snapshot.Match(&models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Format: "CD", CatNo: "CK 64935",
	})
	if got == nil || got.ID != 2 {
		t.Fatalf("comparison key should pick the CD pressing, got %+v", got)
	}

	got = snapshot.Match(&models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Format: "Cassette",
	})
	if got != nil {
		t.Fatalf("a third pressing must come back NEW, got %+v", got)
	}
}

func TestMatchEmptyComponentsAreUnknown(t *testing.T) {
	snapshot := NewSnapshot([]models.Album{
		{ID: 1, Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl"},
	})

	got := snapshot.Match(&models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl",
		Barcode: "5099706493518", Year: "1959",
	})
	if got == nil || got.ID != 1 {
		t.Fatalf("fields the existing album lacks must not block the match, got %+v", got)
	}

	got = snapshot.Match(&models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Format: "CD",
		Barcode: "5099706493518",
	})
	if got != nil {
		t.Fatalf("populated-but-different format must still mismatch, got %+v", got)
	}
}

func TestMatchPrefersMostAgreements(t *testing.T) {
	snapshot := NewSnapshot([]models.Album{
		{ID: 1, Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl"},
		{ID: 2, Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl", Barcode: "5099706493518"},
	})

	got := snapshot.Match(&models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl",
		Barcode: "5099706493518",
	})
	if got == nil || got.ID != 2 {
		t.Fatalf("candidate agreeing on barcode must beat one that merely lacks it, got %+v", got)
	}
}

func TestMatchReturnsNilForUnknown(t *testing.T) {
	snapshot := NewSnapshot(nil)
	if got := snapshot.Match(&models.Album{Artist: "Nobody", Title: "Nothing"}); got != nil {
		t.Fatalf("empty snapshot must not match, got %+v", got)
	}
}

func TestSnapshotUnaffectedByLaterWrites(t *testing.T) {
	albums := []models.Album{{ID: 1, Artist: "Portishead", Title: "Dummy"}}
	snapshot := NewSnapshot(albums)
	albums[0].Artist = "changed after snapshot"

	got := snapshot.Match(&models.Album{Artist: "Portishead", Title: "Dummy"})
	if got == nil || got.Artist != "Portishead" {
		t.Fatalf("snapshot must hold the state at index time, got %+v", got)
	}
}
