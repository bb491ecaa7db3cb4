// file: internal/reconcile/fields.go
// version: 1.0.0
// guid: 7e8f9a0b-1c2d-3e4f-5a6b-7c8d9e0f1a2b

// Package reconcile implements the import reconciliation engine: it classifies
// album fields, detects which incoming values can be applied safely and which
// need human arbitration, diffs and merges track lists, and applies review
// decisions.
package reconcile

// Class partitions album fields for import handling.
type Class int

const (
	// Unclassified fields are excluded from import-driven mutation entirely.
	Unclassified Class = iota
	// Identifying fields characterize a specific pressing and are write-once.
	Identifying
	// Conflictable fields may legitimately differ between sources and are
	// arbitrated when both sides disagree.
	Conflictable
)

// IdentifyingFields are locked once set; an import may only fill them when
// they are currently empty.
var IdentifyingFields = []string{
	"artist",
	"title",
	"format",
	"labels",
	"cat_no",
	"barcode",
	"country",
	"year",
	"folder",
	"discogs_release_id",
	"discogs_master_id",
	"date_added",
}

// ConflictableFields go through the conflict detector.
var ConflictableFields = []string{
	"tracks",
	"disc_metadata",
	"discs",
	"musicians",
	"producers",
	"engineers",
	"songwriters",
	"packaging",
	"sound",
	"spars_code",
	"rpm",
	"vinyl_color",
	"vinyl_weight",
	"matrix_numbers",
	"image_url",
	"back_image_url",
	"discogs_genres",
	"discogs_styles",
	"notes",
	"studio",
	"my_rating",
	"media_condition",
	"sleeve_condition",
	"composer",
	"conductor",
	"orchestra",
	"chorus",
	"length_seconds",
	"is_live",
}

// tagLikeFields are list-valued fields compared order- and case-insensitively.
var tagLikeFields = map[string]bool{
	"genres":         true,
	"styles":         true,
	"tags":           true,
	"discogs_genres": true,
	"discogs_styles": true,
	"custom_tags":    true,
	"labels":         true,
	"matrix_numbers": true,
	"musicians":      true,
	"producers":      true,
	"engineers":      true,
	"songwriters":    true,
}

var fieldClasses = buildFieldClasses()

func buildFieldClasses() map[string]Class {
	m := make(map[string]Class, len(IdentifyingFields)+len(ConflictableFields))
	for _, f := range IdentifyingFields {
		m[f] = Identifying
	}
	for _, f := range ConflictableFields {
		m[f] = Conflictable
	}
	return m
}

// Classify returns the import class of a field name. Unknown fields are
// Unclassified and left untouched by imports.
func Classify(field string) Class {
	return fieldClasses[field]
}

// fieldDisplayNames maps field names to review-facing labels.
var fieldDisplayNames = map[string]string{
	"tracks":           "Track List",
	"disc_metadata":    "Disc Layout",
	"discs":            "Disc Count",
	"musicians":        "Musicians",
	"producers":        "Producers",
	"engineers":        "Engineers",
	"songwriters":      "Songwriters",
	"packaging":        "Packaging",
	"sound":            "Sound",
	"spars_code":       "SPARS Code",
	"rpm":              "RPM",
	"vinyl_color":      "Vinyl Color",
	"vinyl_weight":     "Vinyl Weight",
	"matrix_numbers":   "Matrix Numbers",
	"image_url":        "Cover Image",
	"back_image_url":   "Back Cover Image",
	"discogs_genres":   "Genres",
	"discogs_styles":   "Styles",
	"notes":            "Notes",
	"studio":           "Studio",
	"my_rating":        "Rating",
	"media_condition":  "Media Condition",
	"sleeve_condition": "Sleeve Condition",
	"composer":         "Composer",
	"conductor":        "Conductor",
	"orchestra":        "Orchestra",
	"chorus":           "Chorus",
	"length_seconds":   "Total Length",
	"is_live":          "Live Recording",
}

// DisplayName returns the review-facing label for a field.
func DisplayName(field string) string {
	if name, ok := fieldDisplayNames[field]; ok {
		return name
	}
	return field
}
