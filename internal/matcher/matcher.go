// file: internal/matcher/matcher.go
// version: 2.0.0
// guid: 5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

// Package matcher pairs incoming external records with existing albums.
// Exact matching works over a snapshot of the collection taken at the start
// of an import batch; fuzzy scoring serves the 1001-albums enrichment.
package matcher

import (
	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/normalize"
)

// Snapshot is an immutable index over the collection as it stood when the
// batch began. Matching never mutates either side, so records written
// mid-batch do not affect later lookups.
type Snapshot struct {
	byDiscogsID map[string]*models.Album
	byClzID     map[string]*models.Album
	byKey       map[string][]*models.Album
}

// NewSnapshot indexes the given albums by external IDs and normalized
// artist+title key. The slice is copied element-wise; mutating the input
// afterwards does not leak into the snapshot.
func NewSnapshot(albums []models.Album) *Snapshot {
	s := &Snapshot{
		byDiscogsID: make(map[string]*models.Album),
		byClzID:     make(map[string]*models.Album),
		byKey:       make(map[string][]*models.Album, len(albums)),
	}
	for i := range albums {
		album := albums[i]
		a := &album
		if a.DiscogsReleaseID != "" {
			s.byDiscogsID[a.DiscogsReleaseID] = a
		}
		if a.ClzAlbumID != "" {
			s.byClzID[a.ClzAlbumID] = a
		}
		key := normalize.Key(a.Artist, a.Title)
		s.byKey[key] = append(s.byKey[key], a)
	}
	return s
}

// Len returns the number of distinct normalized keys in the snapshot.
func (s *Snapshot) Len() int { return len(s.byKey) }

// comparisonFields builds the tuple used to tell apart multiple pressings
// that share an artist+title: format, catalog number, conditions, country,
// year and barcode, all normalized.
func comparisonFields(a *models.Album) []string {
	return []string{
		normalize.Text(a.Format),
		normalize.Text(a.CatNo),
		normalize.Text(a.MediaCondition),
		normalize.Text(a.SleeveCondition),
		normalize.Text(a.Country),
		normalize.Text(a.Year),
		normalize.Text(a.Barcode),
	}
}

// compatible compares two comparison tuples component-wise. A component
// empty on either side is unknown, not different: an existing album without
// a barcode still matches an incoming record that has one, which is what
// lets imports fill write-once fields that are currently null. Any component
// populated on both sides but unequal disqualifies the pair, so distinct
// pressings never collapse into one. The returned count is the number of
// components populated and equal on both sides.
func compatible(a, b []string) (int, bool) {
	agreements := 0
	for i := range a {
		switch {
		case a[i] == "" || b[i] == "":
		case a[i] == b[i]:
			agreements++
		default:
			return 0, false
		}
	}
	return agreements, true
}

// Match finds the existing album corresponding to the external record: by
// exact external ID first, then by normalized artist+title key with
// comparison-tuple disambiguation. Returns nil when the record is new.
//
// Among compatible same-key candidates the one agreeing on the most
// populated components wins, so a fully specified pressing is preferred over
// one that merely has nothing to disagree about; ties go to the first
// candidate. When every distinguishing field is empty on both sides the
// first candidate wins.
func (s *Snapshot) Match(external *models.Album) *models.Album {
	if external.DiscogsReleaseID != "" {
		if found, ok := s.byDiscogsID[external.DiscogsReleaseID]; ok {
			return found
		}
	}
	if external.ClzAlbumID != "" {
		if found, ok := s.byClzID[external.ClzAlbumID]; ok {
			return found
		}
	}

	candidates := s.byKey[normalize.Key(external.Artist, external.Title)]
	if len(candidates) == 0 {
		return nil
	}
	want := comparisonFields(external)
	var best *models.Album
	bestScore := -1
	for _, candidate := range candidates {
		score, ok := compatible(comparisonFields(candidate), want)
		if ok && score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}
