// file: internal/reconcile/tracks.go
// version: 1.1.0
// guid: 9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d

package reconcile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

// DiffStatus classifies one position in a track-list diff.
type DiffStatus string

const (
	TrackSame    DiffStatus = "same"
	TrackChanged DiffStatus = "changed"
	TrackAdded   DiffStatus = "added"
	TrackRemoved DiffStatus = "removed"
)

// TrackDiff is one entry of a position-indexed track-list diff.
type TrackDiff struct {
	Position string        `json:"position"`
	Status   DiffStatus    `json:"status"`
	Current  *models.Track `json:"current,omitempty"`
	New      *models.Track `json:"new,omitempty"`
	// Changes lists the structural sub-fields that differ when Status is
	// TrackChanged.
	Changes []string `json:"changes,omitempty"`
}

// sortPositions orders track positions numerically when every position
// parses as an integer ("1", "2", "10"), lexicographically otherwise
// ("A1", "A2", "B1").
func sortPositions(positions []string) {
	numeric := make(map[string]int, len(positions))
	allNumeric := true
	for _, p := range positions {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			allNumeric = false
			break
		}
		numeric[p] = n
	}
	if allNumeric {
		sort.Slice(positions, func(i, j int) bool { return numeric[positions[i]] < numeric[positions[j]] })
		return
	}
	sort.Strings(positions)
}

func byPosition(tracks []models.Track) (map[string]models.Track, []string) {
	m := make(map[string]models.Track, len(tracks))
	order := make([]string, 0, len(tracks))
	for _, t := range tracks {
		if _, seen := m[t.Position]; !seen {
			order = append(order, t.Position)
		}
		m[t.Position] = t
	}
	return m, order
}

// DiffTracks computes a structural diff of two track lists, one entry per
// distinct position appearing in either list. Tracks are paired strictly by
// position; there is no fuzzy matching within a list.
func DiffTracks(current, incoming []models.Track) []TrackDiff {
	currentByPos, currentOrder := byPosition(current)
	incomingByPos, incomingOrder := byPosition(incoming)

	positions := make([]string, 0, len(currentOrder)+len(incomingOrder))
	positions = append(positions, currentOrder...)
	for _, p := range incomingOrder {
		if _, ok := currentByPos[p]; !ok {
			positions = append(positions, p)
		}
	}
	sortPositions(positions)

	diffs := make([]TrackDiff, 0, len(positions))
	for _, pos := range positions {
		cur, hasCur := currentByPos[pos]
		inc, hasInc := incomingByPos[pos]
		switch {
		case hasCur && !hasInc:
			c := cur
			diffs = append(diffs, TrackDiff{Position: pos, Status: TrackRemoved, Current: &c})
		case !hasCur && hasInc:
			n := inc
			diffs = append(diffs, TrackDiff{Position: pos, Status: TrackAdded, New: &n})
		default:
			c, n := cur, inc
			changes := trackChanges(cur, inc)
			status := TrackSame
			if len(changes) > 0 {
				status = TrackChanged
			}
			diffs = append(diffs, TrackDiff{Position: pos, Status: status, Current: &c, New: &n, Changes: changes})
		}
	}
	return diffs
}

func trackChanges(current, incoming models.Track) []string {
	var changes []string
	if strings.TrimSpace(current.Title) != strings.TrimSpace(incoming.Title) {
		changes = append(changes, "title")
	}
	if incoming.Artist != "" && strings.TrimSpace(current.Artist) != strings.TrimSpace(incoming.Artist) {
		changes = append(changes, "artist")
	}
	curDur := strings.TrimSpace(current.Duration)
	incDur := strings.TrimSpace(incoming.Duration)
	if curDur != "" && incDur != "" && curDur != incDur {
		changes = append(changes, "duration")
	}
	return changes
}

// MergeTracks merges an incoming track list over the current one. Structural
// fields (title, artist, duration) come from the incoming side; enrichment
// fields (ID, lyrics, lyrics URL and source) are preserved from the current
// side whenever the incoming track lacks them. Positions present only in the
// current list are appended rather than dropped, so a re-import from a source
// without lyrics never deletes previously fetched annotations.
func MergeTracks(current, incoming []models.Track) []models.Track {
	currentByPos, currentOrder := byPosition(current)

	merged := make([]models.Track, 0, len(incoming)+len(current))
	seen := make(map[string]bool, len(incoming))
	for _, inc := range incoming {
		seen[inc.Position] = true
		cur, exists := currentByPos[inc.Position]
		if !exists {
			merged = append(merged, inc)
			continue
		}
		out := inc
		if out.Duration == "" {
			out.Duration = cur.Duration
		}
		if out.Artist == "" {
			out.Artist = cur.Artist
		}
		if out.ID == "" {
			out.ID = cur.ID
		}
		if out.Lyrics == "" {
			out.Lyrics = cur.Lyrics
		}
		if out.LyricsURL == "" {
			out.LyricsURL = cur.LyricsURL
		}
		if out.LyricsSource == "" {
			out.LyricsSource = cur.LyricsSource
		}
		if out.Side == "" {
			out.Side = cur.Side
		}
		if out.DiscNumber == 0 {
			out.DiscNumber = cur.DiscNumber
		}
		merged = append(merged, out)
	}
	for _, pos := range currentOrder {
		if !seen[pos] {
			merged = append(merged, currentByPos[pos])
		}
	}

	positions := make([]string, 0, len(merged))
	for _, t := range merged {
		positions = append(positions, t.Position)
	}
	sortPositions(positions)
	rank := make(map[string]int, len(positions))
	for i, p := range positions {
		rank[p] = i
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return rank[merged[i].Position] < rank[merged[j].Position]
	})
	return merged
}
