// file: internal/database/sqlite_store.go
// version: 2.1.0
// guid: 2b3c4d5e-6f7a-8b9c-0d1e-2f3a4b5c6d7e

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cratekeeper/cratekeeper/internal/models"
	"github.com/cratekeeper/cratekeeper/internal/normalize"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// SQLiteStore implements the Store interface using SQLite3.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the SQLite database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS albums (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist TEXT NOT NULL,
		title TEXT NOT NULL,
		year TEXT NOT NULL DEFAULT '',
		format TEXT NOT NULL DEFAULT '',
		labels TEXT,
		cat_no TEXT NOT NULL DEFAULT '',
		barcode TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		folder TEXT NOT NULL DEFAULT '',
		discogs_release_id TEXT NOT NULL DEFAULT '',
		discogs_master_id TEXT NOT NULL DEFAULT '',
		date_added TEXT,
		tracks TEXT,
		disc_metadata TEXT,
		discs INTEGER NOT NULL DEFAULT 0,
		musicians TEXT,
		producers TEXT,
		engineers TEXT,
		songwriters TEXT,
		packaging TEXT NOT NULL DEFAULT '',
		sound TEXT NOT NULL DEFAULT '',
		spars_code TEXT NOT NULL DEFAULT '',
		rpm TEXT NOT NULL DEFAULT '',
		vinyl_color TEXT NOT NULL DEFAULT '',
		vinyl_weight TEXT NOT NULL DEFAULT '',
		matrix_numbers TEXT,
		image_url TEXT NOT NULL DEFAULT '',
		back_image_url TEXT NOT NULL DEFAULT '',
		discogs_genres TEXT,
		discogs_styles TEXT,
		notes TEXT NOT NULL DEFAULT '',
		studio TEXT NOT NULL DEFAULT '',
		my_rating INTEGER NOT NULL DEFAULT 0,
		media_condition TEXT NOT NULL DEFAULT '',
		sleeve_condition TEXT NOT NULL DEFAULT '',
		composer TEXT NOT NULL DEFAULT '',
		conductor TEXT NOT NULL DEFAULT '',
		orchestra TEXT NOT NULL DEFAULT '',
		chorus TEXT NOT NULL DEFAULT '',
		length_seconds INTEGER NOT NULL DEFAULT 0,
		is_live BOOLEAN NOT NULL DEFAULT 0,
		collection_status TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		index_number INTEGER NOT NULL DEFAULT 0,
		custom_tags TEXT,
		is_1001 BOOLEAN NOT NULL DEFAULT 0,
		sale_price REAL NOT NULL DEFAULT 0,
		modified_date TEXT,
		clz_album_id TEXT NOT NULL DEFAULT '',
		clz_hash TEXT NOT NULL DEFAULT '',
		clz_genres TEXT,
		artist_album_norm TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_albums_norm ON albums(artist_album_norm);
	CREATE INDEX IF NOT EXISTS idx_albums_discogs ON albums(discogs_release_id);
	CREATE INDEX IF NOT EXISTS idx_albums_clz ON albums(clz_album_id);
	CREATE INDEX IF NOT EXISTS idx_albums_artist ON albums(artist);

	CREATE TABLE IF NOT EXISTS import_conflicts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		album_id INTEGER NOT NULL,
		field_name TEXT NOT NULL,
		current_value TEXT,
		new_value TEXT,
		source TEXT NOT NULL,
		artist TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		format TEXT NOT NULL DEFAULT '',
		cat_no TEXT NOT NULL DEFAULT '',
		barcode TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		year TEXT NOT NULL DEFAULT '',
		labels TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (album_id) REFERENCES albums(id) ON DELETE CASCADE,
		UNIQUE(album_id, field_name, source)
	);

	CREATE TABLE IF NOT EXISTS import_conflict_resolutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		album_id INTEGER NOT NULL,
		field_name TEXT NOT NULL,
		source TEXT NOT NULL,
		resolution TEXT NOT NULL,
		kept_value TEXT,
		rejected_value TEXT,
		resolved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (album_id) REFERENCES albums(id) ON DELETE CASCADE,
		UNIQUE(album_id, field_name, source)
	);

	CREATE TABLE IF NOT EXISTS import_history (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		records_added INTEGER NOT NULL DEFAULT 0,
		records_updated INTEGER NOT NULL DEFAULT 0,
		conflicts INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS thousand_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		artist TEXT NOT NULL,
		title TEXT NOT NULL,
		year INTEGER NOT NULL DEFAULT 0,
		UNIQUE(artist, title)
	);

	CREATE TABLE IF NOT EXISTS thousand_reviews (
		album_id INTEGER NOT NULL,
		entry_id INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		confidence INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (album_id, entry_id),
		FOREIGN KEY (album_id) REFERENCES albums(id) ON DELETE CASCADE,
		FOREIGN KEY (entry_id) REFERENCES thousand_entries(id) ON DELETE CASCADE
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const albumColumns = `
	id, artist, title, year, format, labels, cat_no, barcode, country, folder,
	discogs_release_id, discogs_master_id, date_added,
	tracks, disc_metadata, discs, musicians, producers, engineers, songwriters,
	packaging, sound, spars_code, rpm, vinyl_color, vinyl_weight, matrix_numbers,
	image_url, back_image_url, discogs_genres, discogs_styles, notes, studio,
	my_rating, media_condition, sleeve_condition, composer, conductor, orchestra,
	chorus, length_seconds, is_live,
	collection_status, location, index_number, custom_tags, is_1001, sale_price,
	modified_date, clz_album_id, clz_hash, clz_genres
`

func scanAlbum(scanner rowScanner, a *models.Album) error {
	var labels, tracks, discMeta, musicians, producers, engineers, songwriters sql.NullString
	var matrixNumbers, genres, styles, customTags, clzGenres sql.NullString
	var dateAdded, modifiedDate sql.NullString

	err := scanner.Scan(
		&a.ID, &a.Artist, &a.Title, &a.Year, &a.Format, &labels, &a.CatNo,
		&a.Barcode, &a.Country, &a.Folder, &a.DiscogsReleaseID,
		&a.DiscogsMasterID, &dateAdded,
		&tracks, &discMeta, &a.Discs, &musicians, &producers, &engineers,
		&songwriters, &a.Packaging, &a.Sound, &a.SparsCode, &a.RPM,
		&a.VinylColor, &a.VinylWeight, &matrixNumbers, &a.ImageURL,
		&a.BackImageURL, &genres, &styles, &a.Notes, &a.Studio, &a.MyRating,
		&a.MediaCondition, &a.SleeveCondition, &a.Composer, &a.Conductor,
		&a.Orchestra, &a.Chorus, &a.LengthSeconds, &a.IsLive,
		&a.CollectionStatus, &a.Location, &a.IndexNumber, &customTags,
		&a.Is1001, &a.SalePrice, &modifiedDate, &a.ClzAlbumID, &a.ClzHash,
		&clzGenres,
	)
	if err != nil {
		return err
	}

	decodeJSON(labels, &a.Labels)
	decodeJSON(tracks, &a.Tracks)
	decodeJSON(discMeta, &a.DiscMetadata)
	decodeJSON(musicians, &a.Musicians)
	decodeJSON(producers, &a.Producers)
	decodeJSON(engineers, &a.Engineers)
	decodeJSON(songwriters, &a.Songwriters)
	decodeJSON(matrixNumbers, &a.MatrixNumbers)
	decodeJSON(genres, &a.DiscogsGenres)
	decodeJSON(styles, &a.DiscogsStyles)
	decodeJSON(customTags, &a.CustomTags)
	decodeJSON(clzGenres, &a.ClzGenres)
	a.DateAdded = parseTime(dateAdded)
	a.ModifiedDate = parseTime(modifiedDate)
	return nil
}

func decodeJSON[T any](src sql.NullString, dst *T) {
	if !src.Valid || src.String == "" {
		return
	}
	_ = json.Unmarshal([]byte(src.String), dst)
}

func encodeJSON(v any) any {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if string(data) == "null" {
		return nil
	}
	return string(data)
}

func parseTime(src sql.NullString) *time.Time {
	if !src.Valid || src.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, src.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

const albumInsertColumns = `
	artist, title, year, format, labels, cat_no, barcode, country, folder,
	discogs_release_id, discogs_master_id, date_added,
	tracks, disc_metadata, discs, musicians, producers, engineers, songwriters,
	packaging, sound, spars_code, rpm, vinyl_color, vinyl_weight, matrix_numbers,
	image_url, back_image_url, discogs_genres, discogs_styles, notes, studio,
	my_rating, media_condition, sleeve_condition, composer, conductor, orchestra,
	chorus, length_seconds, is_live,
	collection_status, location, index_number, custom_tags, is_1001, sale_price,
	modified_date, clz_album_id, clz_hash, clz_genres, artist_album_norm
`

// CreateAlbum inserts a new album and returns its ID.
func (s *SQLiteStore) CreateAlbum(ctx context.Context, a *models.Album) (int64, error) {
	query := `INSERT INTO albums (` + albumInsertColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		a.Artist, a.Title, a.Year, a.Format, encodeJSON(a.Labels), a.CatNo,
		a.Barcode, a.Country, a.Folder, a.DiscogsReleaseID, a.DiscogsMasterID,
		formatTime(a.DateAdded),
		encodeJSON(a.Tracks), encodeJSON(a.DiscMetadata), a.Discs,
		encodeJSON(a.Musicians), encodeJSON(a.Producers),
		encodeJSON(a.Engineers), encodeJSON(a.Songwriters),
		a.Packaging, a.Sound, a.SparsCode, a.RPM, a.VinylColor, a.VinylWeight,
		encodeJSON(a.MatrixNumbers), a.ImageURL, a.BackImageURL,
		encodeJSON(a.DiscogsGenres), encodeJSON(a.DiscogsStyles), a.Notes,
		a.Studio, a.MyRating, a.MediaCondition, a.SleeveCondition, a.Composer,
		a.Conductor, a.Orchestra, a.Chorus, a.LengthSeconds, a.IsLive,
		a.CollectionStatus, a.Location, a.IndexNumber,
		encodeJSON(a.CustomTags), a.Is1001, a.SalePrice,
		formatTime(a.ModifiedDate), a.ClzAlbumID, a.ClzHash,
		encodeJSON(a.ClzGenres),
		normalize.Key(a.Artist, a.Title),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert album: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get album ID: %w", err)
	}
	a.ID = id
	return id, nil
}

// GetAlbum retrieves one album by ID.
func (s *SQLiteStore) GetAlbum(ctx context.Context, id int64) (*models.Album, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+albumColumns+` FROM albums WHERE id = ?`, id)
	var a models.Album
	if err := scanAlbum(row, &a); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get album %d: %w", id, err)
	}
	return &a, nil
}

// AllAlbums returns the whole collection, used to build import snapshots.
func (s *SQLiteStore) AllAlbums(ctx context.Context) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+albumColumns+` FROM albums ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		var a models.Album
		if err := scanAlbum(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, a)
	}
	return albums, rows.Err()
}

var sortColumns = map[string]string{
	"artist":     "artist",
	"title":      "title",
	"year":       "year",
	"format":     "format",
	"date_added": "date_added",
	"my_rating":  "my_rating",
	"id":         "id",
}

// ListAlbums returns a filtered, paginated page of the collection.
func (s *SQLiteStore) ListAlbums(ctx context.Context, req models.AlbumListRequest) (*models.AlbumListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 500 {
		req.Limit = 50
	}

	var where []string
	var args []any
	if req.Search != "" {
		like := "%" + req.Search + "%"
		where = append(where, `(artist LIKE ? OR title LIKE ? OR cat_no LIKE ? OR barcode LIKE ?)`)
		args = append(args, like, like, like, like)
	}
	if req.Format != "" {
		where = append(where, `format = ?`)
		args = append(args, req.Format)
	}
	if req.Folder != "" {
		where = append(where, `folder = ?`)
		args = append(args, req.Folder)
	}
	if req.Status != "" {
		where = append(where, `collection_status = ?`)
		args = append(args, req.Status)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM albums`+clause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count albums: %w", err)
	}

	sortCol, ok := sortColumns[req.SortBy]
	if !ok {
		sortCol = "artist"
	}
	dir := "ASC"
	if strings.EqualFold(req.SortDir, "desc") {
		dir = "DESC"
	}

	query := `SELECT ` + albumColumns + ` FROM albums` + clause +
		` ORDER BY ` + sortCol + ` ` + dir + `, id ASC LIMIT ? OFFSET ?`
	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]models.Album, 0, req.Limit)
	for rows.Next() {
		var a models.Album
		if err := scanAlbum(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pages := (total + req.Limit - 1) / req.Limit
	return &models.AlbumListResponse{
		Albums: albums,
		Total:  total,
		Page:   req.Page,
		Limit:  req.Limit,
		Pages:  pages,
	}, nil
}

// fieldColumns whitelists the columns UpdateAlbumFields may touch and maps
// field names to their storage encoding.
var fieldColumns = map[string]bool{
	"artist": true, "title": true, "year": true, "format": true,
	"labels": true, "cat_no": true, "barcode": true, "country": true,
	"folder": true, "discogs_release_id": true, "discogs_master_id": true,
	"date_added": true, "tracks": true, "disc_metadata": true, "discs": true,
	"musicians": true, "producers": true, "engineers": true,
	"songwriters": true, "packaging": true, "sound": true, "spars_code": true,
	"rpm": true, "vinyl_color": true, "vinyl_weight": true,
	"matrix_numbers": true, "image_url": true, "back_image_url": true,
	"discogs_genres": true, "discogs_styles": true, "notes": true,
	"studio": true, "my_rating": true, "media_condition": true,
	"sleeve_condition": true, "composer": true, "conductor": true,
	"orchestra": true, "chorus": true, "length_seconds": true,
	"is_live": true, "collection_status": true, "location": true,
	"index_number": true, "custom_tags": true, "is_1001": true,
	"sale_price": true, "modified_date": true, "clz_album_id": true,
	"clz_hash": true, "clz_genres": true,
}

// jsonFields are stored as JSON TEXT columns.
var jsonFields = map[string]bool{
	"labels": true, "tracks": true, "disc_metadata": true, "musicians": true,
	"producers": true, "engineers": true, "songwriters": true,
	"matrix_numbers": true, "discogs_genres": true, "discogs_styles": true,
	"custom_tags": true, "clz_genres": true,
}

func encodeFieldValue(field string, value any) (any, error) {
	if value == nil {
		if jsonFields[field] {
			return nil, nil
		}
		return "", nil
	}
	if jsonFields[field] {
		return encodeJSON(value), nil
	}
	switch v := value.(type) {
	case string, int, int64, float64, bool:
		return v, nil
	case *time.Time:
		return formatTime(v), nil
	case time.Time:
		return v.UTC().Format(time.RFC3339), nil
	default:
		// Values coming back from JSON-decoded conflict payloads.
		return encodeJSON(v), nil
	}
}

func updateFieldsTx(ctx context.Context, tx *sql.Tx, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	set := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)
	for field, value := range fields {
		if !fieldColumns[field] {
			return fmt.Errorf("unknown album field %q", field)
		}
		encoded, err := encodeFieldValue(field, value)
		if err != nil {
			return err
		}
		set = append(set, field+" = ?")
		args = append(args, encoded)
	}
	set = append(set, "modified_date = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339))
	args = append(args, id)

	result, err := tx.ExecContext(ctx,
		`UPDATE albums SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update album %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}

	// Artist or title changes invalidate the cached match key.
	if _, ok := fields["artist"]; ok {
		if err := refreshNormKeyTx(ctx, tx, id); err != nil {
			return err
		}
	} else if _, ok := fields["title"]; ok {
		if err := refreshNormKeyTx(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}

func refreshNormKeyTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var artist, title string
	if err := tx.QueryRowContext(ctx,
		`SELECT artist, title FROM albums WHERE id = ?`, id).Scan(&artist, &title); err != nil {
		return fmt.Errorf("failed to re-read album %d: %w", id, err)
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE albums SET artist_album_norm = ? WHERE id = ?`,
		normalize.Key(artist, title), id)
	return err
}

// UpdateAlbumFields writes a set of named fields on one album.
func (s *SQLiteStore) UpdateAlbumFields(ctx context.Context, id int64, fields map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	if err := updateFieldsTx(ctx, tx, id, fields); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateAlbum replaces every mutable column of an album.
func (s *SQLiteStore) UpdateAlbum(ctx context.Context, a *models.Album) error {
	result, err := s.db.ExecContext(ctx, `UPDATE albums SET
		artist = ?, title = ?, year = ?, format = ?, labels = ?, cat_no = ?,
		barcode = ?, country = ?, folder = ?, discogs_release_id = ?,
		discogs_master_id = ?, date_added = ?, tracks = ?, disc_metadata = ?,
		discs = ?, musicians = ?, producers = ?, engineers = ?,
		songwriters = ?, packaging = ?, sound = ?, spars_code = ?, rpm = ?,
		vinyl_color = ?, vinyl_weight = ?, matrix_numbers = ?, image_url = ?,
		back_image_url = ?, discogs_genres = ?, discogs_styles = ?, notes = ?,
		studio = ?, my_rating = ?, media_condition = ?, sleeve_condition = ?,
		composer = ?, conductor = ?, orchestra = ?, chorus = ?,
		length_seconds = ?, is_live = ?, collection_status = ?, location = ?,
		index_number = ?, custom_tags = ?, is_1001 = ?, sale_price = ?,
		modified_date = ?, clz_album_id = ?, clz_hash = ?, clz_genres = ?,
		artist_album_norm = ?
		WHERE id = ?`,
		a.Artist, a.Title, a.Year, a.Format, encodeJSON(a.Labels), a.CatNo,
		a.Barcode, a.Country, a.Folder, a.DiscogsReleaseID, a.DiscogsMasterID,
		formatTime(a.DateAdded), encodeJSON(a.Tracks),
		encodeJSON(a.DiscMetadata), a.Discs, encodeJSON(a.Musicians),
		encodeJSON(a.Producers), encodeJSON(a.Engineers),
		encodeJSON(a.Songwriters), a.Packaging, a.Sound, a.SparsCode, a.RPM,
		a.VinylColor, a.VinylWeight, encodeJSON(a.MatrixNumbers), a.ImageURL,
		a.BackImageURL, encodeJSON(a.DiscogsGenres),
		encodeJSON(a.DiscogsStyles), a.Notes, a.Studio, a.MyRating,
		a.MediaCondition, a.SleeveCondition, a.Composer, a.Conductor,
		a.Orchestra, a.Chorus, a.LengthSeconds, a.IsLive, a.CollectionStatus,
		a.Location, a.IndexNumber, encodeJSON(a.CustomTags), a.Is1001,
		a.SalePrice, time.Now().UTC().Format(time.RFC3339), a.ClzAlbumID,
		a.ClzHash, encodeJSON(a.ClzGenres),
		normalize.Key(a.Artist, a.Title),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update album %d: %w", a.ID, err)
	}
	n, err := result.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAlbum removes an album; conflicts and reviews cascade.
func (s *SQLiteStore) DeleteAlbum(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete album %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
