// file: internal/matcher/fuzzy.go
// version: 2.0.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

package matcher

import (
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/normalize"
)

// ScoreThreshold is the minimum combined score for a fuzzy candidate to be
// treated as a match.
const ScoreThreshold = 0.70

// Candidate is a scored pairing between a reference entry and a collection
// album, produced by the 1001-albums enrichment.
type Candidate struct {
	Album *models.Album `json:"album"`
	Score float64       `json:"score"`
}

// ScoreCandidate scores how well a collection album matches a reference
// entry. Artist and title similarity each carry 40% of the score; a close
// release year adds up to 0.3 on top.
func ScoreCandidate(entry *models.ThousandEntry, album *models.Album) float64 {
	score := Similarity(entry.Artist, album.Artist)*0.4 +
		Similarity(entry.Title, album.Title)*0.4

	if entry.Year > 0 {
		if albumYear, err := strconv.Atoi(album.Year); err == nil && albumYear > 0 {
			diff := entry.Year - albumYear
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff == 0:
				score += 0.3
			case diff <= 1:
				score += 0.2
			case diff <= 2:
				score += 0.1
			}
		}
	}
	return score
}

// Similarity returns a 0..1 score between two names, combining several
// heuristics over their normalized forms. Exact match scores 1.0, a
// substring or subsequence match scores high, otherwise edit distance
// decides.
func Similarity(a, b string) float64 {
	na, nb := normalize.Text(a), normalize.Text(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	best := 0.0
	if containsWhole(na, nb) || containsWhole(nb, na) {
		best = 0.85
	} else if fuzzy.MatchNormalizedFold(na, nb) || fuzzy.MatchNormalizedFold(nb, na) {
		// One name is a subsequence of the other ("kndblue" in
		// "kind of blue"), common with abbreviated listings.
		best = 0.75
	}

	if lev := levenshteinSimilarity(na, nb); lev > best {
		best = lev
	}
	return best
}

func containsWhole(haystack, needle string) bool {
	if len(needle) < 3 {
		return false
	}
	return len(haystack) > len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

// levenshteinSimilarity converts edit distance to a 0..1 ratio against the
// longer string.
func levenshteinSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
