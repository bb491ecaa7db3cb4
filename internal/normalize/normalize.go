// file: internal/normalize/normalize.go
// version: 1.1.0
// guid: 4b5c6d7e-8f9a-0b1c-2d3e-4f5a6b7c8d9e

// Package normalize produces the comparison keys used to match albums across
// data sources: case-, punctuation- and whitespace-insensitive text forms.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keySeparator keeps concatenated artist+title keys collision-free:
// "beatles"+"revolver" must never equal "beatlesrev"+"olver".
const keySeparator = "\x1f"

var (
	disambiguationRe = regexp.MustCompile(`\(\d+\)`) // Discogs "(2)", "(3)" suffixes
	leadingArticleRe = regexp.MustCompile(`^(?i:the|a)\s+`)
	releaseURLRe     = regexp.MustCompile(`/release/(\d+)`)

	// stripMarks removes combining marks left over after NFKD decomposition,
	// so "Björk" and "Bjork" normalize identically.
	stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Text normalizes free text for matching: folds accents, lower-cases, drops
// Discogs disambiguation suffixes and leading articles, strips everything but
// word characters and spaces, and collapses whitespace. Total over all inputs.
func Text(s string) string {
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = disambiguationRe.ReplaceAllString(s, "")
	s = leadingArticleRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Key builds the delimited composite artist+title key used for exact matching.
func Key(artist, title string) string {
	return Text(artist) + keySeparator + Text(title)
}

// SortName moves a leading article to the end: "The Beatles" -> "Beatles, The".
func SortName(name string) string {
	switch {
	case strings.HasPrefix(name, "The "):
		return name[4:] + ", The"
	case strings.HasPrefix(name, "A "):
		return name[2:] + ", A"
	default:
		return name
	}
}

// FormatDuration renders seconds as "MM:SS" or "H:MM:SS".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ParseDuration parses "MM:SS" or "H:MM:SS" into seconds. Returns 0 for
// anything unparseable.
func ParseDuration(duration string) int {
	parts := strings.Split(duration, ":")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		nums = append(nums, n)
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	default:
		return 0
	}
}

// ExtractDiscogsID pulls a release ID out of a bare number or a release URL.
func ExtractDiscogsID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if _, err := strconv.Atoi(input); err == nil {
		return input
	}
	if m := releaseURLRe.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}
