// file: internal/importer/resolutions_test.go
// version: 1.0.0
// guid: 2f3a4b5c-6d7e-8f9a-0b1c-2d3e4f5a6b7c

package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

func seedConflict(t *testing.T, store *database.MockStore, c models.FieldConflict) int64 {
	t.Helper()
	require.NoError(t, store.SaveConflicts(context.Background(), []models.FieldConflict{c}))
	conflicts, err := store.ListConflicts(context.Background())
	require.NoError(t, err)
	return conflicts[len(conflicts)-1].ID
}

func TestResolveUseNew(t *testing.T) {
	store := database.NewMockStore()
	albumID := seedAlbum(t, store, models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Notes: "first pressing",
	})
	conflictID := seedConflict(t, store, models.FieldConflict{
		AlbumID: albumID, FieldName: "notes",
		CurrentValue: "first pressing", NewValue: "reissue",
		Source: models.SourceCLZ,
	})
	imp := New(store)

	resolution, err := imp.Resolve(context.Background(), conflictID, models.UseNew)
	require.NoError(t, err)

	assert.Equal(t, "reissue", resolution.ResolvedValue)
	assert.Equal(t, "reissue", store.Albums[albumID].Notes)
	assert.Empty(t, store.Conflicts, "resolved conflict leaves the queue")
	require.Len(t, store.Resolutions, 1)
	assert.Equal(t, models.UseNew, store.Resolutions[0].Resolution)
	assert.Equal(t, "reissue", store.Resolutions[0].KeptValue)
	assert.Equal(t, "first pressing", store.Resolutions[0].RejectedValue)
}

func TestResolveKeepCurrent(t *testing.T) {
	store := database.NewMockStore()
	albumID := seedAlbum(t, store, models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Notes: "first pressing",
	})
	conflictID := seedConflict(t, store, models.FieldConflict{
		AlbumID: albumID, FieldName: "notes",
		CurrentValue: "first pressing", NewValue: "reissue",
		Source: models.SourceCLZ,
	})
	imp := New(store)

	_, err := imp.Resolve(context.Background(), conflictID, models.KeepCurrent)
	require.NoError(t, err)

	assert.Equal(t, "first pressing", store.Albums[albumID].Notes)
	require.Len(t, store.Resolutions, 1)
	assert.Equal(t, "reissue", store.Resolutions[0].RejectedValue,
		"rejected value is recorded so the conflict is never re-raised")
}

func TestResolveMergeGenres(t *testing.T) {
	store := database.NewMockStore()
	albumID := seedAlbum(t, store, models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue",
		DiscogsGenres: []string{"Jazz", "Bop"},
	})
	conflictID := seedConflict(t, store, models.FieldConflict{
		AlbumID: albumID, FieldName: "discogs_genres",
		CurrentValue: []any{"Jazz", "Bop"}, NewValue: []any{"Jazz", "Modal"},
		Source: models.SourceDiscogs,
	})
	imp := New(store)

	resolution, err := imp.Resolve(context.Background(), conflictID, models.Merge)
	require.NoError(t, err)

	assert.Equal(t, []string{"Jazz", "Modal", "Bop"}, resolution.ResolvedValue)
	assert.Equal(t, []string{"Jazz", "Modal", "Bop"}, store.Albums[albumID].DiscogsGenres)
}

func TestResolveMergeRefusedForScalars(t *testing.T) {
	store := database.NewMockStore()
	albumID := seedAlbum(t, store, models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Notes: "a",
	})
	conflictID := seedConflict(t, store, models.FieldConflict{
		AlbumID: albumID, FieldName: "notes",
		CurrentValue: "a", NewValue: "b", Source: models.SourceCLZ,
	})
	imp := New(store)

	_, err := imp.Resolve(context.Background(), conflictID, models.Merge)
	assert.ErrorIs(t, err, ErrCannotMerge)
}

func TestResolveRefusesStaleConflict(t *testing.T) {
	store := database.NewMockStore()
	albumID := seedAlbum(t, store, models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue", Notes: "edited by hand",
	})
	conflictID := seedConflict(t, store, models.FieldConflict{
		AlbumID: albumID, FieldName: "notes",
		CurrentValue: "first pressing", NewValue: "reissue",
		Source: models.SourceCLZ,
	})
	imp := New(store)

	_, err := imp.Resolve(context.Background(), conflictID, models.UseNew)
	assert.ErrorIs(t, err, ErrStaleConflict)
	assert.Equal(t, "edited by hand", store.Albums[albumID].Notes,
		"stale decision must not clobber the live value")
}

func TestResolveUnknownConflict(t *testing.T) {
	store := database.NewMockStore()
	imp := New(store)
	_, err := imp.Resolve(context.Background(), 404, models.UseNew)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
