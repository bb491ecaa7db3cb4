// file: internal/database/store.go
// version: 2.0.0
// guid: 1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d

// Package database persists the album collection and everything the import
// pipeline produces: pending conflicts, settled resolutions, run history and
// the 1001-albums review state.
package database

import (
	"context"
	"errors"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ResolutionRequest carries everything needed to settle one conflict
// atomically: the field write, the resolution record, and the removal of the
// pending conflict happen in a single transaction.
type ResolutionRequest struct {
	AlbumID       int64
	FieldName     string
	Source        models.ImportSource
	Resolution    models.ResolutionKind
	ResolvedValue any
	KeptValue     any
	RejectedValue any
}

// Store is the persistence interface. SQLiteStore is the real
// implementation; MockStore serves tests.
type Store interface {
	// Albums
	CreateAlbum(ctx context.Context, album *models.Album) (int64, error)
	GetAlbum(ctx context.Context, id int64) (*models.Album, error)
	ListAlbums(ctx context.Context, req models.AlbumListRequest) (*models.AlbumListResponse, error)
	AllAlbums(ctx context.Context) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, album *models.Album) error
	UpdateAlbumFields(ctx context.Context, id int64, fields map[string]any) error
	DeleteAlbum(ctx context.Context, id int64) error

	// Conflicts and resolutions
	SaveConflicts(ctx context.Context, conflicts []models.FieldConflict) error
	ListConflicts(ctx context.Context) ([]models.FieldConflict, error)
	GetConflict(ctx context.Context, id int64) (*models.FieldConflict, error)
	DeleteConflict(ctx context.Context, id int64) error
	PreviousResolutions(ctx context.Context, source models.ImportSource) ([]models.PreviousResolution, error)
	ApplyResolution(ctx context.Context, req ResolutionRequest) error

	// Import history
	SaveImportRun(ctx context.Context, run *models.ImportRun) error
	ListImportRuns(ctx context.Context, limit int) ([]models.ImportRun, error)

	// 1001-albums list
	ThousandEntries(ctx context.Context) ([]models.ThousandEntry, error)
	SaveThousandEntries(ctx context.Context, entries []models.ThousandEntry) error
	SaveThousandReview(ctx context.Context, review *models.ThousandReview) error
	ListThousandReviews(ctx context.Context, status string) ([]models.ThousandReview, error)

	Close() error
}
