// file: internal/models/album.go
// version: 1.3.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package models

import "time"

// ResolutionKind is a human (or previously recorded) decision on a conflict.
type ResolutionKind string

const (
	KeepCurrent ResolutionKind = "keep_current"
	UseNew      ResolutionKind = "use_new"
	Merge       ResolutionKind = "merge"
)

// ImportSource identifies where imported data came from.
type ImportSource string

const (
	SourceCLZ     ImportSource = "clz"
	SourceDiscogs ImportSource = "discogs"
)

// UpdateMode controls how an import treats albums that already exist.
type UpdateMode string

const (
	// UpdateMissingOnly fills empty fields only and never raises conflicts.
	UpdateMissingOnly UpdateMode = "update_missing_only"
	// UpdateAll fills empty fields and raises conflicts for divergent ones.
	UpdateAll UpdateMode = "update_all"
)

// Track is one track on an album. Tracks are matched across lists strictly
// by Position; lyrics fields are enrichment that imports must not clobber.
type Track struct {
	ID           string `json:"id,omitempty"`
	Position     string `json:"position"`
	Title        string `json:"title"`
	Artist       string `json:"artist,omitempty"`
	Duration     string `json:"duration,omitempty"` // "MM:SS" or "H:MM:SS"
	DiscNumber   int    `json:"disc_number,omitempty"`
	Side         string `json:"side,omitempty"`
	Type         string `json:"type,omitempty"` // non-"track" entries are headers
	Lyrics       string `json:"lyrics,omitempty"`
	LyricsURL    string `json:"lyrics_url,omitempty"`
	LyricsSource string `json:"lyrics_source,omitempty"`
}

// Credit is one named credit (musician, producer, engineer, songwriter).
type Credit struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// DiscInfo summarizes one disc of a multi-disc release.
type DiscInfo struct {
	DiscNumber int `json:"disc_number"`
	TrackCount int `json:"track_count"`
}

// Album is the authoritative persisted album entity. The same shape doubles
// as the external record during imports (ID zero, CLZ/Discogs identifiers set).
type Album struct {
	ID int64 `json:"id" db:"id"`

	// Identifying fields: write-once, never overwritten by imports.
	Artist           string     `json:"artist" db:"artist"`
	Title            string     `json:"title" db:"title"`
	Year             string     `json:"year,omitempty" db:"year"`
	Format           string     `json:"format" db:"format"`
	Labels           []string   `json:"labels,omitempty" db:"labels"`
	CatNo            string     `json:"cat_no,omitempty" db:"cat_no"`
	Barcode          string     `json:"barcode,omitempty" db:"barcode"`
	Country          string     `json:"country,omitempty" db:"country"`
	Folder           string     `json:"folder,omitempty" db:"folder"`
	DiscogsReleaseID string     `json:"discogs_release_id,omitempty" db:"discogs_release_id"`
	DiscogsMasterID  string     `json:"discogs_master_id,omitempty" db:"discogs_master_id"`
	DateAdded        *time.Time `json:"date_added,omitempty" db:"date_added"`

	// Conflictable fields: arbitrated when both sides disagree.
	Tracks          []Track    `json:"tracks,omitempty" db:"tracks"`
	DiscMetadata    []DiscInfo `json:"disc_metadata,omitempty" db:"disc_metadata"`
	Discs           int        `json:"discs,omitempty" db:"discs"`
	Musicians       []Credit   `json:"musicians,omitempty" db:"musicians"`
	Producers       []Credit   `json:"producers,omitempty" db:"producers"`
	Engineers       []Credit   `json:"engineers,omitempty" db:"engineers"`
	Songwriters     []Credit   `json:"songwriters,omitempty" db:"songwriters"`
	Packaging       string     `json:"packaging,omitempty" db:"packaging"`
	Sound           string     `json:"sound,omitempty" db:"sound"`
	SparsCode       string     `json:"spars_code,omitempty" db:"spars_code"`
	RPM             string     `json:"rpm,omitempty" db:"rpm"`
	VinylColor      string     `json:"vinyl_color,omitempty" db:"vinyl_color"`
	VinylWeight     string     `json:"vinyl_weight,omitempty" db:"vinyl_weight"`
	MatrixNumbers   []string   `json:"matrix_numbers,omitempty" db:"matrix_numbers"`
	ImageURL        string     `json:"image_url,omitempty" db:"image_url"`
	BackImageURL    string     `json:"back_image_url,omitempty" db:"back_image_url"`
	DiscogsGenres   []string   `json:"discogs_genres,omitempty" db:"discogs_genres"`
	DiscogsStyles   []string   `json:"discogs_styles,omitempty" db:"discogs_styles"`
	Notes           string     `json:"notes,omitempty" db:"notes"`
	Studio          string     `json:"studio,omitempty" db:"studio"`
	MyRating        int        `json:"my_rating,omitempty" db:"my_rating"`
	MediaCondition  string     `json:"media_condition,omitempty" db:"media_condition"`
	SleeveCondition string     `json:"sleeve_condition,omitempty" db:"sleeve_condition"`
	Composer        string     `json:"composer,omitempty" db:"composer"`
	Conductor       string     `json:"conductor,omitempty" db:"conductor"`
	Orchestra       string     `json:"orchestra,omitempty" db:"orchestra"`
	Chorus          string     `json:"chorus,omitempty" db:"chorus"`
	LengthSeconds   int        `json:"length_seconds,omitempty" db:"length_seconds"`
	IsLive          bool       `json:"is_live" db:"is_live"`

	// Collection management (outside import arbitration).
	CollectionStatus string     `json:"collection_status,omitempty" db:"collection_status"`
	Location         string     `json:"location,omitempty" db:"location"`
	IndexNumber      int        `json:"index_number,omitempty" db:"index_number"`
	CustomTags       []string   `json:"custom_tags,omitempty" db:"custom_tags"`
	Is1001           bool       `json:"is_1001" db:"is_1001"`
	SalePrice        float64    `json:"sale_price,omitempty" db:"sale_price"`
	ModifiedDate     *time.Time `json:"modified_date,omitempty" db:"modified_date"`

	// Source-specific identifiers carried through imports.
	ClzAlbumID string   `json:"clz_album_id,omitempty" db:"clz_album_id"`
	ClzHash    string   `json:"clz_hash,omitempty" db:"clz_hash"`
	ClzGenres  []string `json:"clz_genres,omitempty" db:"clz_genres"`
}

// FieldMap flattens the album into the field-name keyed form the conflict
// detector operates on. Zero-valued optional scalars are emitted as nil so
// they behave as "unset" rather than as a present value of 0.
func (a *Album) FieldMap() map[string]any {
	m := map[string]any{
		"artist":             a.Artist,
		"title":              a.Title,
		"year":               a.Year,
		"format":             a.Format,
		"labels":             a.Labels,
		"cat_no":             a.CatNo,
		"barcode":            a.Barcode,
		"country":            a.Country,
		"folder":             a.Folder,
		"discogs_release_id": a.DiscogsReleaseID,
		"discogs_master_id":  a.DiscogsMasterID,
		"tracks":             a.Tracks,
		"disc_metadata":      a.DiscMetadata,
		"musicians":          a.Musicians,
		"producers":          a.Producers,
		"engineers":          a.Engineers,
		"songwriters":        a.Songwriters,
		"packaging":          a.Packaging,
		"sound":              a.Sound,
		"spars_code":         a.SparsCode,
		"rpm":                a.RPM,
		"vinyl_color":        a.VinylColor,
		"vinyl_weight":       a.VinylWeight,
		"matrix_numbers":     a.MatrixNumbers,
		"image_url":          a.ImageURL,
		"back_image_url":     a.BackImageURL,
		"discogs_genres":     a.DiscogsGenres,
		"discogs_styles":     a.DiscogsStyles,
		"notes":              a.Notes,
		"studio":             a.Studio,
		"media_condition":    a.MediaCondition,
		"sleeve_condition":   a.SleeveCondition,
		"composer":           a.Composer,
		"conductor":          a.Conductor,
		"orchestra":          a.Orchestra,
		"chorus":             a.Chorus,
		"is_live":            a.IsLive,
	}
	if a.DateAdded != nil {
		m["date_added"] = a.DateAdded.UTC().Format(time.RFC3339)
	} else {
		m["date_added"] = nil
	}
	if a.Discs > 0 {
		m["discs"] = a.Discs
	} else {
		m["discs"] = nil
	}
	if a.MyRating > 0 {
		m["my_rating"] = a.MyRating
	} else {
		m["my_rating"] = nil
	}
	if a.LengthSeconds > 0 {
		m["length_seconds"] = a.LengthSeconds
	} else {
		m["length_seconds"] = nil
	}
	return m
}

// FieldConflict is one field that needs a human decision: both sides are
// populated and disagree. The display context fields let a reviewer identify
// the pressing without another lookup.
type FieldConflict struct {
	ID           int64        `json:"id,omitempty" db:"id"`
	AlbumID      int64        `json:"album_id" db:"album_id"`
	FieldName    string       `json:"field_name" db:"field_name"`
	CurrentValue any          `json:"current_value"`
	NewValue     any          `json:"new_value"`
	Source       ImportSource `json:"source" db:"source"`

	Artist  string   `json:"artist" db:"artist"`
	Title   string   `json:"title" db:"title"`
	Format  string   `json:"format" db:"format"`
	CatNo   string   `json:"cat_no,omitempty" db:"cat_no"`
	Barcode string   `json:"barcode,omitempty" db:"barcode"`
	Country string   `json:"country,omitempty" db:"country"`
	Year    string   `json:"year,omitempty" db:"year"`
	Labels  []string `json:"labels,omitempty" db:"labels"`
}

// PreviousResolution is the persisted record of a settled conflict. It
// suppresses re-raising only when the exact same (kept, rejected) pair recurs.
type PreviousResolution struct {
	AlbumID       int64          `json:"album_id" db:"album_id"`
	FieldName     string         `json:"field_name" db:"field_name"`
	KeptValue     any            `json:"kept_value"`
	RejectedValue any            `json:"rejected_value"`
	Resolution    ResolutionKind `json:"resolution" db:"resolution"`
	Source        ImportSource   `json:"source" db:"source"`
}

// Resolution is one decision coming back from review.
type Resolution struct {
	AlbumID       int64          `json:"album_id"`
	FieldName     string         `json:"field_name"`
	Resolution    ResolutionKind `json:"resolution"`
	ResolvedValue any            `json:"resolved_value"`
	CurrentValue  any            `json:"current_value"`
	NewValue      any            `json:"new_value"`
}

// ImportError records a single failed record inside an otherwise-continuing batch.
type ImportError struct {
	Album string `json:"album"` // "artist — title"
	Error string `json:"error"`
}

// ImportResult summarizes one import run.
type ImportResult struct {
	RunID             string          `json:"run_id"`
	Success           bool            `json:"success"`
	TotalProcessed    int             `json:"total_processed"`
	NewAlbums         int             `json:"new_albums"`
	UpdatedAlbums     int             `json:"updated_albums"`
	ConflictsDetected int             `json:"conflicts_detected"`
	SkippedAlbums     int             `json:"skipped_albums"`
	Conflicts         []FieldConflict `json:"conflicts,omitempty"`
	Errors            []ImportError   `json:"errors,omitempty"`
	Message           string          `json:"message"`
}

// ImportRun is a persisted import_history row.
type ImportRun struct {
	ID             string       `json:"id" db:"id"`
	Source         ImportSource `json:"source" db:"source"`
	RecordsAdded   int          `json:"records_added" db:"records_added"`
	RecordsUpdated int          `json:"records_updated" db:"records_updated"`
	Conflicts      int          `json:"conflicts" db:"conflicts"`
	ErrorCount     int          `json:"error_count" db:"error_count"`
	Status         string       `json:"status" db:"status"`
	Notes          string       `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// ThousandEntry is one album from the "1001 Albums You Must Hear" list.
type ThousandEntry struct {
	ID     int64  `json:"id" db:"id"`
	Artist string `json:"artist" db:"artist"`
	Title  string `json:"title" db:"title"`
	Year   int    `json:"year,omitempty" db:"year"`
}

// ThousandReview links a collection album to a list entry with a confidence score.
type ThousandReview struct {
	AlbumID    int64  `json:"album_id" db:"album_id"`
	EntryID    int64  `json:"entry_id" db:"entry_id"`
	Status     string `json:"status" db:"status"` // approved, pending, rejected
	Confidence int    `json:"confidence" db:"confidence"`
	Notes      string `json:"notes,omitempty" db:"notes"`
}

// AlbumListRequest carries pagination and filtering for album lists.
type AlbumListRequest struct {
	Page    int    `json:"page" form:"page"`
	Limit   int    `json:"limit" form:"limit"`
	Search  string `json:"search" form:"search"`
	Format  string `json:"format" form:"format"`
	Folder  string `json:"folder" form:"folder"`
	Status  string `json:"status" form:"status"`
	SortBy  string `json:"sort_by" form:"sort_by"`
	SortDir string `json:"sort_dir" form:"sort_dir"`
}

// AlbumListResponse is a paginated album list.
type AlbumListResponse struct {
	Albums []Album `json:"albums"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Pages  int     `json:"pages"`
}
