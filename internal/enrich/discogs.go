// file: internal/enrich/discogs.go
// version: 1.0.0
// guid: 7e8f9a0b-1c2d-3e4f-5a6b-7c8d9e0f1a2b

package enrich

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/cratekeeper/cratekeeper/internal/discogs"
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/reconcile"
)

// ErrNoRelease is returned when neither the album nor a Discogs search
// yields a release to enrich from.
var ErrNoRelease = errors.New("no matching discogs release found")

// ReleaseSource is the part of the Discogs client enrichment needs.
type ReleaseSource interface {
	FetchRelease(ctx context.Context, releaseID string) (*discogs.Release, error)
	SearchRelease(ctx context.Context, artist, title, year string) (string, error)
}

// DiscogsResult reports what one enrichment pass changed.
type DiscogsResult struct {
	AlbumID        int64    `json:"album_id"`
	ReleaseID      string   `json:"release_id"`
	UpdatedFields  []string `json:"updated_fields,omitempty"`
	ConflictFields []string `json:"conflict_fields,omitempty"`
}

// EnrichFromDiscogs fills one album from its Discogs release, going through
// the same safe-update/conflict arbitration as an import. When the album has
// no release ID yet, a search by artist, title and year supplies one.
func (s *Service) EnrichFromDiscogs(ctx context.Context, source ReleaseSource, albumID int64) (*DiscogsResult, error) {
	album, err := s.store.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	releaseID := album.DiscogsReleaseID
	if releaseID == "" {
		releaseID, err = source.SearchRelease(ctx, album.Artist, album.Title, album.Year)
		if err != nil {
			return nil, fmt.Errorf("discogs search failed: %w", err)
		}
		if releaseID == "" {
			return nil, fmt.Errorf("%w for %q / %q", ErrNoRelease, album.Artist, album.Title)
		}
	}

	release, err := source.FetchRelease(ctx, releaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release %s: %w", releaseID, err)
	}

	incoming := *album
	incoming.DiscogsReleaseID = releaseID
	incoming.DiscogsGenres = release.Genres
	incoming.DiscogsStyles = release.Styles
	incoming.Tracks = release.Tracks()
	incoming.ImageURL = release.PrimaryImage()
	if release.Country != "" {
		incoming.Country = release.Country
	}
	if release.Year > 0 && album.Year == "" {
		incoming.Year = strconv.Itoa(release.Year)
	}
	if release.Notes != "" {
		incoming.Notes = release.Notes
	}

	updates := reconcile.IdentifyingUpdates(album, &incoming)
	if album.DiscogsReleaseID == "" {
		updates["discogs_release_id"] = releaseID
	}

	resolutions, err := s.store.PreviousResolutions(ctx, models.SourceDiscogs)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous resolutions: %w", err)
	}
	var albumResolutions []models.PreviousResolution
	for _, r := range resolutions {
		if r.AlbumID == albumID {
			albumResolutions = append(albumResolutions, r)
		}
	}

	detected := reconcile.Detect(album, &incoming, models.SourceDiscogs, albumResolutions)
	for field, value := range detected.SafeUpdates {
		updates[field] = value
	}

	result := &DiscogsResult{AlbumID: albumID, ReleaseID: releaseID}
	if len(updates) > 0 {
		if err := s.store.UpdateAlbumFields(ctx, albumID, updates); err != nil {
			return nil, fmt.Errorf("failed to apply enrichment: %w", err)
		}
		for field := range updates {
			result.UpdatedFields = append(result.UpdatedFields, field)
		}
	}
	if len(detected.Conflicts) > 0 {
		if err := s.store.SaveConflicts(ctx, detected.Conflicts); err != nil {
			return nil, fmt.Errorf("failed to queue conflicts: %w", err)
		}
		for _, c := range detected.Conflicts {
			result.ConflictFields = append(result.ConflictFields, c.FieldName)
		}
	}

	log.Printf("[INFO] discogs enrichment: album %d release %s, %d updates, %d conflicts",
		albumID, releaseID, len(result.UpdatedFields), len(result.ConflictFields))
	return result, nil
}
