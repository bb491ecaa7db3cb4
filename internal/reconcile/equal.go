// file: internal/reconcile/equal.go
// version: 1.2.0
// guid: 6d7e8f9a-0b1c-2d3e-4f5a-6b7c8d9e0f1a

package reconcile

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// canonical converts any value into the JSON shape (nil, bool, float64,
// string, []any, map[string]any) so that a typed Track slice and the same
// data decoded from a stored JSON column compare as equal.
func canonical(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// Equal reports deep equality between two values of arbitrary shape:
// element-wise and order-sensitive for arrays, same key set with recursively
// equal values for objects, exact equality for primitives.
func Equal(a, b any) bool {
	return deepEqual(canonical(a), canonical(b))
}

func deepEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, present := bv[k]
			if !present || !deepEqual(v, bval) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// normalizeEmpty maps the various representations of "no value" to nil:
// nil itself, blank or "0:00" strings, and empty arrays.
func normalizeEmpty(v any) any {
	c := canonical(v)
	switch cv := c.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(cv) == "" || cv == "0:00" {
			return nil
		}
	case []any:
		if len(cv) == 0 {
			return nil
		}
	}
	return c
}

// tagLikeEqual compares list-valued fields (genres, styles, tags, labels,
// credit lists) case-insensitively and order-insensitively. Credit entries
// compare by name.
func tagLikeEqual(a, b any) bool {
	as, aok := tagTokens(a)
	bs, bok := tagTokens(b)
	if !aok || !bok {
		return Equal(a, b)
	}
	if len(as) != len(bs) {
		return false
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func tagTokens(v any) ([]string, bool) {
	list, ok := canonical(v).([]any)
	if !ok {
		return nil, false
	}
	tokens := make([]string, 0, len(list))
	for _, item := range list {
		switch iv := item.(type) {
		case string:
			tokens = append(tokens, strings.ToLower(iv))
		case map[string]any:
			if name, ok := iv["name"].(string); ok {
				tokens = append(tokens, strings.ToLower(name))
				continue
			}
			tokens = append(tokens, strings.ToLower(fmt.Sprint(iv)))
		default:
			tokens = append(tokens, strings.ToLower(fmt.Sprint(iv)))
		}
	}
	return tokens, true
}

// normalizedTrack is the shape tracks are reduced to for equality checks:
// structural fields only, with empty durations dropped.
type normalizedTrack struct {
	title    string
	artist   string
	duration string
	skip     bool
}

func normalizeTrackValue(v any) normalizedTrack {
	m, ok := v.(map[string]any)
	if !ok {
		return normalizedTrack{}
	}
	var t normalizedTrack
	if typ, ok := m["type"].(string); ok && typ != "" && typ != "track" {
		t.skip = true
		return t
	}
	if title, ok := m["title"].(string); ok {
		t.title = strings.TrimSpace(title)
	}
	if artist, ok := m["artist"].(string); ok {
		t.artist = strings.TrimSpace(artist)
	}
	if dur, ok := m["duration"].(string); ok {
		dur = strings.TrimSpace(dur)
		if dur != "" && dur != "0:00" {
			t.duration = dur
		}
	}
	return t
}

// tracksEqual compares two track lists structurally: same playable tracks
// with equal titles and artists. A duration present on only one side is
// backfilled rather than treated as a difference, since sources routinely
// omit timings.
func tracksEqual(a, b any) bool {
	al, aok := canonical(a).([]any)
	bl, bok := canonical(b).([]any)
	if !aok || !bok {
		return Equal(a, b)
	}

	filter := func(list []any) []normalizedTrack {
		out := make([]normalizedTrack, 0, len(list))
		for _, item := range list {
			t := normalizeTrackValue(item)
			if !t.skip {
				out = append(out, t)
			}
		}
		return out
	}
	at := filter(al)
	bt := filter(bl)
	if len(at) != len(bt) {
		return false
	}
	for i := range at {
		x, y := at[i], bt[i]
		if x.duration == "" && y.duration != "" {
			x.duration = y.duration
		} else if y.duration == "" && x.duration != "" {
			y.duration = x.duration
		}
		if x != y {
			return false
		}
	}
	return true
}

// discMetadataEqual compares disc summaries by (disc_number, track_count),
// tolerating sources that call the number field "index".
func discMetadataEqual(a, b any) bool {
	al, aok := canonical(a).([]any)
	bl, bok := canonical(b).([]any)
	if !aok || !bok {
		return Equal(a, b)
	}
	if len(al) != len(bl) {
		return false
	}
	key := func(v any) [2]float64 {
		m, ok := v.(map[string]any)
		if !ok {
			return [2]float64{}
		}
		var out [2]float64
		if n, ok := m["disc_number"].(float64); ok {
			out[0] = n
		} else if n, ok := m["index"].(float64); ok {
			out[0] = n
		}
		if n, ok := m["track_count"].(float64); ok {
			out[1] = n
		}
		return out
	}
	for i := range al {
		if key(al[i]) != key(bl[i]) {
			return false
		}
	}
	return true
}
