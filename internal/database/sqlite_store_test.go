// file: internal/database/sqlite_store_test.go
// version: 2.0.0
// guid: 6f7a8b9c-0d1e-2f3a-4b5c-6d7e8f9a0b1c

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testAlbum() *models.Album {
	added := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	return &models.Album{
		Artist:  "Miles Davis",
		Title:   "Kind of Blue",
		Year:    "1959",
		Format:  "Vinyl",
		Labels:  []string{"Columbia"},
		CatNo:   "CL 1355",
		Country: "US",
		Tracks: []models.Track{
			{Position: "A1", Title: "So What", Duration: "9:22"},
			{Position: "A2", Title: "Freddie Freeloader", Duration: "9:46"},
		},
		DiscMetadata:  []models.DiscInfo{{DiscNumber: 1, TrackCount: 2}},
		Discs:         1,
		Musicians:     []models.Credit{{Name: "Bill Evans"}},
		DiscogsGenres: []string{"Jazz"},
		MyRating:      5,
		DateAdded:     &added,
		ClzAlbumID:    "MUS-001",
	}
}

func TestCreateAndGetAlbum(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateAlbum(ctx, testAlbum())
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := store.GetAlbum(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Miles Davis", got.Artist)
	assert.Equal(t, []string{"Columbia"}, got.Labels)
	require.Len(t, got.Tracks, 2)
	assert.Equal(t, "So What", got.Tracks[0].Title)
	assert.Equal(t, []models.Credit{{Name: "Bill Evans"}}, got.Musicians)
	assert.Equal(t, 5, got.MyRating)
	require.NotNil(t, got.DateAdded)
	assert.Equal(t, int64(1700000000), got.DateAdded.Unix())

	_, err = store.GetAlbum(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAlbumFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, testAlbum())
	require.NoError(t, err)

	err = store.UpdateAlbumFields(ctx, id, map[string]any{
		"notes":          "six-eye pressing",
		"discogs_styles": []string{"Modal"},
		"tracks": []models.Track{
			{Position: "A1", Title: "So What", Duration: "9:22", Lyrics: "..."},
		},
	})
	require.NoError(t, err)

	got, err := store.GetAlbum(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "six-eye pressing", got.Notes)
	assert.Equal(t, []string{"Modal"}, got.DiscogsStyles)
	require.Len(t, got.Tracks, 1)
	assert.Equal(t, "...", got.Tracks[0].Lyrics)
	assert.NotNil(t, got.ModifiedDate)

	err = store.UpdateAlbumFields(ctx, id, map[string]any{"no_such_column": 1})
	assert.Error(t, err)

	err = store.UpdateAlbumFields(ctx, 9999, map[string]any{"notes": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAlbumsFilteringAndPaging(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	albums := []*models.Album{
		{Artist: "Miles Davis", Title: "Kind of Blue", Format: "Vinyl"},
		{Artist: "Miles Davis", Title: "Bitches Brew", Format: "CD"},
		{Artist: "Herbie Hancock", Title: "Head Hunters", Format: "Vinyl"},
	}
	for _, a := range albums {
		_, err := store.CreateAlbum(ctx, a)
		require.NoError(t, err)
	}

	resp, err := store.ListAlbums(ctx, models.AlbumListRequest{Format: "Vinyl"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = store.ListAlbums(ctx, models.AlbumListRequest{Search: "bitches"})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Bitches Brew", resp.Albums[0].Title)

	resp, err = store.ListAlbums(ctx, models.AlbumListRequest{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Pages)
	assert.Len(t, resp.Albums, 1)
}

func TestSaveConflictsUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, testAlbum())
	require.NoError(t, err)

	conflict := models.FieldConflict{
		AlbumID:      id,
		FieldName:    "notes",
		CurrentValue: "old",
		NewValue:     "new",
		Source:       models.SourceCLZ,
		Artist:       "Miles Davis",
		Title:        "Kind of Blue",
	}
	require.NoError(t, store.SaveConflicts(ctx, []models.FieldConflict{conflict}))

	// Same album+field+source again must refresh, not duplicate.
	conflict.NewValue = "newer"
	require.NoError(t, store.SaveConflicts(ctx, []models.FieldConflict{conflict}))

	conflicts, err := store.ListConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "newer", conflicts[0].NewValue)
	assert.Equal(t, "old", conflicts[0].CurrentValue)
}

func TestApplyResolutionUseNew(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, testAlbum())
	require.NoError(t, err)

	require.NoError(t, store.SaveConflicts(ctx, []models.FieldConflict{{
		AlbumID: id, FieldName: "notes",
		CurrentValue: "", NewValue: "reissue", Source: models.SourceCLZ,
	}}))

	err = store.ApplyResolution(ctx, ResolutionRequest{
		AlbumID:       id,
		FieldName:     "notes",
		Source:        models.SourceCLZ,
		Resolution:    models.UseNew,
		ResolvedValue: "reissue",
		KeptValue:     "reissue",
		RejectedValue: "",
	})
	require.NoError(t, err)

	got, err := store.GetAlbum(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "reissue", got.Notes)

	conflicts, err := store.ListConflicts(ctx)
	require.NoError(t, err)
	assert.Empty(t, conflicts, "resolved conflict must leave the pending queue")

	resolutions, err := store.PreviousResolutions(ctx, models.SourceCLZ)
	require.NoError(t, err)
	require.Len(t, resolutions, 1)
	assert.Equal(t, models.UseNew, resolutions[0].Resolution)
	assert.Equal(t, "reissue", resolutions[0].KeptValue)
}

func TestApplyResolutionKeepCurrentLeavesAlbum(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	album := testAlbum()
	album.Notes = "original"
	id, err := store.CreateAlbum(ctx, album)
	require.NoError(t, err)

	err = store.ApplyResolution(ctx, ResolutionRequest{
		AlbumID:       id,
		FieldName:     "notes",
		Source:        models.SourceCLZ,
		Resolution:    models.KeepCurrent,
		KeptValue:     "original",
		RejectedValue: "imported",
	})
	require.NoError(t, err)

	got, err := store.GetAlbum(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Notes)
}

func TestImportRunHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := &models.ImportRun{
		ID:           "01HF0000000000000000000000",
		Source:       models.SourceCLZ,
		RecordsAdded: 3, RecordsUpdated: 2, Conflicts: 1,
		Status: "completed",
	}
	require.NoError(t, store.SaveImportRun(ctx, run))

	runs, err := store.ListImportRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.SourceCLZ, runs[0].Source)
	assert.Equal(t, 3, runs[0].RecordsAdded)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestThousandReviewFlagsAlbum(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, testAlbum())
	require.NoError(t, err)

	require.NoError(t, store.SaveThousandEntries(ctx, []models.ThousandEntry{
		{Artist: "Miles Davis", Title: "Kind of Blue", Year: 1959},
	}))
	entries, err := store.ThousandEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	review := &models.ThousandReview{
		AlbumID: id, EntryID: entries[0].ID, Status: "approved", Confidence: 95,
	}
	require.NoError(t, store.SaveThousandReview(ctx, review))

	got, err := store.GetAlbum(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Is1001)

	review.Status = "rejected"
	require.NoError(t, store.SaveThousandReview(ctx, review))
	got, err = store.GetAlbum(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Is1001)
}
