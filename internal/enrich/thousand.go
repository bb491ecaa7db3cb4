// file: internal/enrich/thousand.go
// version: 1.0.0
// guid: 6d7e8f9a-0b1c-2d3e-4f5a-6b7c8d9e0f1a

// Package enrich augments the collection from reference sources: the
// 1001-albums list and full Discogs releases.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cratekeeper/cratekeeper/internal/database"
	"github.com/cratekeeper/cratekeeper/internal/matcher"
	"github.com/cratekeeper/cratekeeper/internal/models"
)

// ErrNoThousandList is returned when matching runs before the reference
// list has been loaded.
var ErrNoThousandList = errors.New("the 1001-albums list is empty; load it first")

// Service runs enrichment against the store.
type Service struct {
	store     database.Store
	threshold float64
}

// NewService creates an enrichment service. A threshold of 0 uses the
// default matcher threshold.
func NewService(store database.Store, threshold float64) *Service {
	if threshold <= 0 {
		threshold = matcher.ScoreThreshold
	}
	return &Service{store: store, threshold: threshold}
}

// ThousandMatchResult summarizes one matching pass.
type ThousandMatchResult struct {
	Scanned int                  `json:"scanned"`
	Matched int                  `json:"matched"`
	Reviews []models.ThousandReview `json:"reviews"`
}

// MatchThousand scores every album against the 1001-albums list and queues
// a pending review for each candidate pairing above the threshold. Albums
// already flagged are skipped; existing reviews are refreshed with the new
// confidence.
func (s *Service) MatchThousand(ctx context.Context) (*ThousandMatchResult, error) {
	entries, err := s.store.ThousandEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load 1001 list: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoThousandList
	}

	albums, err := s.store.AllAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	result := &ThousandMatchResult{}
	for i := range albums {
		album := &albums[i]
		result.Scanned++
		if album.Is1001 {
			continue
		}

		bestScore := 0.0
		var bestEntry *models.ThousandEntry
		for j := range entries {
			if score := matcher.ScoreCandidate(&entries[j], album); score > bestScore {
				bestScore = score
				bestEntry = &entries[j]
			}
		}
		if bestEntry == nil || bestScore < s.threshold {
			continue
		}

		review := models.ThousandReview{
			AlbumID:    album.ID,
			EntryID:    bestEntry.ID,
			Status:     "pending",
			Confidence: int(bestScore * 100),
		}
		if err := s.store.SaveThousandReview(ctx, &review); err != nil {
			return nil, fmt.Errorf("failed to queue review for album %d: %w", album.ID, err)
		}
		result.Matched++
		result.Reviews = append(result.Reviews, review)
	}

	log.Printf("[INFO] 1001 matching: scanned %d albums, queued %d reviews",
		result.Scanned, result.Matched)
	return result, nil
}

// LoadThousandList replaces or extends the reference list.
func (s *Service) LoadThousandList(ctx context.Context, entries []models.ThousandEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no entries to load")
	}
	return s.store.SaveThousandEntries(ctx, entries)
}
