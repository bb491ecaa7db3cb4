// file: internal/discogs/client_test.go
// version: 1.0.0
// guid: 5c6d7e8f-9a0b-1c2d-3e4f-5a6b7c8d9e0f

package discogs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-token",
		WithBaseURL(server.URL),
		WithLimiter(rate.NewLimiter(rate.Inf, 1)),
	)
}

func TestFetchCollectionPagination(t *testing.T) {
	pagesServed := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Discogs token=test-token", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/users/crate_digger/collection/folders/0/releases")

		pagesServed++
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			fmt.Fprint(w, `{
				"pagination": {"page": 1, "pages": 2, "items": 3},
				"releases": [
					{"id": 101, "rating": 4, "date_added": "2020-05-01T10:00:00Z",
					 "basic_information": {
						"id": 101, "master_id": 5001, "title": "Kind of Blue", "year": 1959,
						"artists": [{"name": "Miles Davis"}],
						"labels": [{"name": "Columbia", "catno": "CL 1355"}],
						"formats": [{"name": "Vinyl", "descriptions": ["LP", "Album"]}],
						"genres": ["Jazz"], "styles": ["Modal"],
						"cover_image": "https://img.discogs.example/kob.jpg"}},
					{"id": 102,
					 "basic_information": {
						"id": 102, "title": "Dummy", "year": 1994,
						"artists": [{"name": "Portishead"}],
						"formats": [{"name": "CD"}]}}
				]}`)
		case "2":
			fmt.Fprint(w, `{
				"pagination": {"page": 2, "pages": 2, "items": 3},
				"releases": [
					{"id": 103,
					 "basic_information": {
						"id": 103, "title": "Head Hunters",
						"artists": [{"name": "Herbie Hancock (2)"}]}}
				]}`)
		default:
			t.Errorf("unexpected page %s", page)
		}
	}))

	albums, err := client.FetchCollection(context.Background(), "crate_digger")
	require.NoError(t, err)
	require.Len(t, albums, 3)
	assert.Equal(t, 2, pagesServed)

	first := albums[0]
	assert.Equal(t, "Miles Davis", first.Artist)
	assert.Equal(t, "Kind of Blue", first.Title)
	assert.Equal(t, "1959", first.Year)
	assert.Equal(t, "Vinyl", first.Format)
	assert.Equal(t, []string{"Columbia"}, first.Labels)
	assert.Equal(t, "CL 1355", first.CatNo)
	assert.Equal(t, "101", first.DiscogsReleaseID)
	assert.Equal(t, "5001", first.DiscogsMasterID)
	assert.Equal(t, []string{"Jazz"}, first.DiscogsGenres)
	assert.Equal(t, 4, first.MyRating)
	require.NotNil(t, first.DateAdded)

	assert.Equal(t, "Herbie Hancock", albums[2].Artist,
		"the (2) disambiguation suffix must be stripped")
}

func TestFetchReleaseTracks(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/releases/101", r.URL.Path)
		fmt.Fprint(w, `{
			"id": 101, "title": "Kind of Blue", "country": "US",
			"genres": ["Jazz"], "styles": ["Modal"],
			"images": [
				{"type": "secondary", "uri": "https://img.example/back.jpg"},
				{"type": "primary", "uri": "https://img.example/front.jpg"}
			],
			"tracklist": [
				{"position": "", "type_": "heading", "title": "Side A"},
				{"position": "A1", "type_": "track", "title": "So What", "duration": "9:22"},
				{"position": "A2", "type_": "track", "title": "Freddie Freeloader", "duration": ""}
			]}`)
	}))

	release, err := client.FetchRelease(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "US", release.Country)
	assert.Equal(t, "https://img.example/front.jpg", release.PrimaryImage())

	tracks := release.Tracks()
	require.Len(t, tracks, 3)
	assert.Equal(t, "heading", tracks[0].Type)
	assert.Equal(t, "9:22", tracks[1].Duration)
	assert.Equal(t, "", tracks[2].Duration)
}

func TestSearchRelease(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/database/search", r.URL.Path)
		assert.Equal(t, "Miles Davis", r.URL.Query().Get("artist"))
		assert.Equal(t, "1959", r.URL.Query().Get("year"))
		fmt.Fprint(w, `{"results": [{"id": 101}]}`)
	}))

	id, err := client.SearchRelease(context.Background(), "Miles Davis", "Kind of Blue", "1959")
	require.NoError(t, err)
	assert.Equal(t, "101", id)
}

func TestSearchReleaseNoResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": []}`)
	}))
	id, err := client.SearchRelease(context.Background(), "Nobody", "Nothing", "")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestAPIErrorSurfaced(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	_, err := client.FetchRelease(context.Background(), "101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
