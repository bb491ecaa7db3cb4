// file: internal/discogs/client.go
// version: 1.0.0
// guid: 4b5c6d7e-8f9a-0b1c-2d3e-4f5a6b7c8d9e

// Package discogs is a minimal client for the parts of the Discogs API the
// import and enrichment pipelines use: collection pages, full releases and
// release search.
package discogs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/normalize"
)

// discogsSuffixRe matches the "(2)", "(3)" suffixes Discogs appends to
// disambiguate artists sharing a name.
var discogsSuffixRe = regexp.MustCompile(`\s*\(\d+\)$`)

const (
	defaultBaseURL = "https://api.discogs.com"
	userAgent      = "cratekeeper/1.0"
	perPage        = 100
)

// Client talks to the Discogs API. All requests go through a shared rate
// limiter; Discogs allows 60 authenticated requests per minute.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithLimiter replaces the default 60-per-minute rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a Discogs client authenticated with a personal token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/60), 1),
		baseURL:    defaultBaseURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discogs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discogs API returned %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode discogs response: %w", err)
	}
	return nil
}

// FetchCollection pages through a user's entire collection folder and maps
// every release into an album record.
func (c *Client) FetchCollection(ctx context.Context, username string) ([]models.Album, error) {
	var albums []models.Album
	for page := 1; ; page++ {
		query := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(perPage)},
		}
		var resp collectionPage
		path := fmt.Sprintf("/users/%s/collection/folders/0/releases", url.PathEscape(username))
		if err := c.get(ctx, path, query, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch collection page %d: %w", page, err)
		}

		for i := range resp.Releases {
			albums = append(albums, convertCollectionRelease(&resp.Releases[i]))
		}
		log.Printf("[INFO] discogs: fetched collection page %d/%d (%d releases)",
			page, resp.Pagination.Pages, len(resp.Releases))

		if page >= resp.Pagination.Pages || len(resp.Releases) == 0 {
			break
		}
	}
	return albums, nil
}

func convertCollectionRelease(r *collectionRelease) models.Album {
	info := &r.BasicInformation

	artists := make([]string, 0, len(info.Artists))
	for _, a := range info.Artists {
		// Discogs disambiguates duplicate artist names with "(2)" suffixes.
		name := strings.TrimSpace(discogsSuffixRe.ReplaceAllString(a.Name, ""))
		if name != "" {
			artists = append(artists, name)
		}
	}

	var labels []string
	var catNo string
	seen := make(map[string]bool)
	for _, l := range info.Labels {
		if l.Name != "" && !seen[l.Name] {
			seen[l.Name] = true
			labels = append(labels, l.Name)
		}
		if catNo == "" && l.CatNo != "" && l.CatNo != "none" {
			catNo = l.CatNo
		}
	}

	album := models.Album{
		Artist:           strings.Join(artists, ", "),
		Title:            info.Title,
		Format:           formatName(info.Formats),
		Labels:           labels,
		CatNo:            catNo,
		DiscogsReleaseID: strconv.FormatInt(info.ID, 10),
		DiscogsGenres:    info.Genres,
		DiscogsStyles:    info.Styles,
		ImageURL:         info.CoverImage,
		MyRating:         r.Rating,
	}
	if info.Year > 0 {
		album.Year = strconv.Itoa(info.Year)
	}
	if info.MasterID > 0 {
		album.DiscogsMasterID = strconv.FormatInt(info.MasterID, 10)
	}
	if t, err := time.Parse(time.RFC3339, r.DateAdded); err == nil {
		utc := t.UTC()
		album.DateAdded = &utc
	}
	return album
}

func formatName(formats []struct {
	Name         string   `json:"name"`
	Descriptions []string `json:"descriptions"`
}) string {
	if len(formats) == 0 {
		return ""
	}
	return formats[0].Name
}

// FetchRelease retrieves a full release for enrichment.
func (c *Client) FetchRelease(ctx context.Context, releaseID string) (*Release, error) {
	var release Release
	path := "/releases/" + url.PathEscape(releaseID)
	if err := c.get(ctx, path, nil, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// SearchRelease finds the best-matching release ID for an artist and title,
// or "" when nothing matches.
func (c *Client) SearchRelease(ctx context.Context, artist, title, year string) (string, error) {
	query := url.Values{
		"artist":        {artist},
		"release_title": {title},
		"type":          {"release"},
		"per_page":      {"1"},
	}
	if year != "" {
		query.Set("year", year)
	}
	var resp searchResponse
	if err := c.get(ctx, "/database/search", query, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", nil
	}
	return strconv.FormatInt(resp.Results[0].ID, 10), nil
}

// Tracks converts the release tracklist into the internal track shape,
// keeping side headers tagged so comparisons can skip them.
func (r *Release) Tracks() []models.Track {
	tracks := make([]models.Track, 0, len(r.Tracklist))
	for _, t := range r.Tracklist {
		track := models.Track{
			Position: t.Position,
			Title:    t.Title,
			Duration: t.Duration,
			Type:     t.Type,
		}
		names := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			name := strings.TrimSpace(discogsSuffixRe.ReplaceAllString(a.Name, ""))
			if name != "" {
				names = append(names, name)
			}
		}
		track.Artist = strings.Join(names, ", ")
		if normalize.ParseDuration(track.Duration) == 0 {
			track.Duration = ""
		}
		tracks = append(tracks, track)
	}
	return tracks
}

// PrimaryImage returns the primary image URI, falling back to the first.
func (r *Release) PrimaryImage() string {
	for _, img := range r.Images {
		if img.Type == "primary" {
			return img.URI
		}
	}
	if len(r.Images) > 0 {
		return r.Images[0].URI
	}
	return ""
}
