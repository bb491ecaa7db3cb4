// file: internal/reconcile/resolve.go
// version: 1.1.0
// guid: 0b1c2d3e-4f5a-6b7c-8d9e-0f1a2b3c4d5e

package reconcile

import (
	"encoding/json"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

// Apply produces the final field value for a review decision.
//
// merge semantics: string arrays get a stable de-duplicating union with the
// incoming order first and unseen current items appended (order is display
// order, not a set); track lists delegate to MergeTracks; any other shape
// falls back to the incoming value.
func Apply(current, incoming any, kind models.ResolutionKind) any {
	switch kind {
	case models.KeepCurrent:
		return current
	case models.UseNew:
		return incoming
	case models.Merge:
		if cs, ok := asStringSlice(current); ok {
			if ns, ok := asStringSlice(incoming); ok {
				return mergeStringSlices(cs, ns)
			}
		}
		if ct, ok := asTracks(current); ok {
			if nt, ok := asTracks(incoming); ok {
				return MergeTracks(ct, nt)
			}
		}
		return incoming
	default:
		return incoming
	}
}

// Rejected returns the value that was NOT kept, recorded alongside the kept
// value so the same conflict is never raised twice. Merge keeps parts of
// both sides, so it has no rejected value.
func Rejected(current, incoming any, kind models.ResolutionKind) any {
	switch kind {
	case models.KeepCurrent:
		return incoming
	case models.UseNew:
		return current
	default:
		return nil
	}
}

// CanMerge reports whether the merge option applies to this pair: string
// arrays and track lists merge, everything else is a binary choice.
func CanMerge(field string, current, incoming any) bool {
	if field == "tracks" {
		return true
	}
	if _, ok := asStringSlice(current); !ok {
		return false
	}
	_, ok := asStringSlice(incoming)
	return ok
}

// mergeStringSlices unions two string slices keeping incoming order first,
// then appends current items not already present.
func mergeStringSlices(current, incoming []string) []string {
	out := make([]string, 0, len(current)+len(incoming))
	seen := make(map[string]bool, len(current)+len(incoming))
	for _, s := range incoming {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range current {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func asStringSlice(v any) ([]string, bool) {
	list, ok := canonical(v).([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// asTracks accepts either a typed []models.Track or the same data decoded
// from JSON, requiring every element to carry a position.
func asTracks(v any) ([]models.Track, bool) {
	list, ok := canonical(v).([]any)
	if !ok {
		return nil, false
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		if _, ok := m["position"]; !ok {
			return nil, false
		}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, false
	}
	var tracks []models.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return nil, false
	}
	return tracks, true
}
