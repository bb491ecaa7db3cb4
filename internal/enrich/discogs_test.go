// file: internal/enrich/discogs_test.go
// version: 1.0.0
// guid: 9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d

package enrich

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/discogs"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

type fakeReleaseSource struct {
	release  *discogs.Release
	searchID string
}

func (f *fakeReleaseSource) FetchRelease(_ context.Context, _ string) (*discogs.Release, error) {
	return f.release, nil
}

func (f *fakeReleaseSource) SearchRelease(_ context.Context, _, _, _ string) (string, error) {
	return f.searchID, nil
}

func releaseFromJSON(t *testing.T, raw string) *discogs.Release {
	t.Helper()
	var r discogs.Release
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return &r
}

func TestEnrichFromDiscogsFillsEmptyFields(t *testing.T) {
	store := database.NewMockStore()
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, &models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue",
		DiscogsReleaseID: "101",
	})
	require.NoError(t, err)

	source := &fakeReleaseSource{release: releaseFromJSON(t, `{
		"id": 101, "country": "US",
		"genres": ["Jazz"], "styles": ["Modal"],
		"tracklist": [{"position": "A1", "type_": "track", "title": "So What", "duration": "9:22"}]
	}`)}

	service := NewService(store, 0)
	result, err := service.EnrichFromDiscogs(ctx, source, id)
	require.NoError(t, err)

	assert.Contains(t, result.UpdatedFields, "discogs_genres")
	assert.Contains(t, result.UpdatedFields, "tracks")
	assert.Contains(t, result.UpdatedFields, "country")
	assert.Empty(t, result.ConflictFields)

	album := store.Albums[id]
	assert.Equal(t, []string{"Jazz"}, album.DiscogsGenres)
	require.Len(t, album.Tracks, 1)
	assert.Equal(t, "So What", album.Tracks[0].Title)
}

func TestEnrichFromDiscogsConflictsOnDivergence(t *testing.T) {
	store := database.NewMockStore()
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, &models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue",
		DiscogsReleaseID: "101",
		DiscogsGenres:    []string{"Rock"},
	})
	require.NoError(t, err)

	source := &fakeReleaseSource{release: releaseFromJSON(t, `{
		"id": 101, "genres": ["Jazz"]
	}`)}

	service := NewService(store, 0)
	result, err := service.EnrichFromDiscogs(ctx, source, id)
	require.NoError(t, err)

	assert.Contains(t, result.ConflictFields, "discogs_genres")
	assert.Equal(t, []string{"Rock"}, store.Albums[id].DiscogsGenres,
		"divergent value needs review, not overwrite")
	require.Len(t, store.Conflicts, 1)
}

func TestEnrichFromDiscogsSearchesWhenNoReleaseID(t *testing.T) {
	store := database.NewMockStore()
	ctx := context.Background()
	id, err := store.CreateAlbum(ctx, &models.Album{
		Artist: "Miles Davis", Title: "Kind of Blue",
	})
	require.NoError(t, err)

	source := &fakeReleaseSource{
		searchID: "101",
		release:  releaseFromJSON(t, `{"id": 101, "genres": ["Jazz"]}`),
	}

	service := NewService(store, 0)
	result, err := service.EnrichFromDiscogs(ctx, source, id)
	require.NoError(t, err)
	assert.Equal(t, "101", result.ReleaseID)
	assert.Contains(t, result.UpdatedFields, "discogs_release_id")
}
