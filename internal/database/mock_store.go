// file: internal/database/mock_store.go
// version: 1.0.0
// guid: 5e6f7a8b-9c0d-1e2f-3a4b-5c6d7e8f9a0b

package database

import (
	"context"
	"sort"
	"sync"

	"github.com/cratekeeper/cratekeeper/internal/models"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu sync.Mutex

	nextAlbumID    int64
	nextConflictID int64

	Albums      map[int64]*models.Album
	Conflicts   map[int64]*models.FieldConflict
	Resolutions []models.PreviousResolution
	Runs        []models.ImportRun
	Entries     []models.ThousandEntry
	Reviews     map[[2]int64]*models.ThousandReview

	// FailWith, when set, is returned by every mutating call.
	FailWith error
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{
		Albums:    make(map[int64]*models.Album),
		Conflicts: make(map[int64]*models.FieldConflict),
		Reviews:   make(map[[2]int64]*models.ThousandReview),
	}
}

func (m *MockStore) Close() error { return nil }

func (m *MockStore) CreateAlbum(_ context.Context, album *models.Album) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.nextAlbumID++
	album.ID = m.nextAlbumID
	stored := *album
	m.Albums[album.ID] = &stored
	return album.ID, nil
}

func (m *MockStore) GetAlbum(_ context.Context, id int64) (*models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	album, ok := m.Albums[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *album
	return &copied, nil
}

func (m *MockStore) AllAlbums(_ context.Context) ([]models.Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.Albums))
	for id := range m.Albums {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	albums := make([]models.Album, 0, len(ids))
	for _, id := range ids {
		albums = append(albums, *m.Albums[id])
	}
	return albums, nil
}

func (m *MockStore) ListAlbums(ctx context.Context, req models.AlbumListRequest) (*models.AlbumListResponse, error) {
	albums, err := m.AllAlbums(ctx)
	if err != nil {
		return nil, err
	}
	return &models.AlbumListResponse{
		Albums: albums,
		Total:  len(albums),
		Page:   1,
		Limit:  len(albums),
		Pages:  1,
	}, nil
}

func (m *MockStore) UpdateAlbum(_ context.Context, album *models.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Albums[album.ID]; !ok {
		return ErrNotFound
	}
	stored := *album
	m.Albums[album.ID] = &stored
	return nil
}

// UpdateAlbumFields applies the subset of field names the import pipeline
// writes; fields it does not model are recorded but ignored.
func (m *MockStore) UpdateAlbumFields(_ context.Context, id int64, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	album, ok := m.Albums[id]
	if !ok {
		return ErrNotFound
	}
	for field, value := range fields {
		applyMockField(album, field, value)
	}
	return nil
}

func applyMockField(a *models.Album, field string, value any) {
	switch field {
	case "artist":
		a.Artist, _ = value.(string)
	case "title":
		a.Title, _ = value.(string)
	case "year":
		a.Year, _ = value.(string)
	case "format":
		a.Format, _ = value.(string)
	case "cat_no":
		a.CatNo, _ = value.(string)
	case "barcode":
		a.Barcode, _ = value.(string)
	case "country":
		a.Country, _ = value.(string)
	case "folder":
		a.Folder, _ = value.(string)
	case "notes":
		a.Notes, _ = value.(string)
	case "packaging":
		a.Packaging, _ = value.(string)
	case "studio":
		a.Studio, _ = value.(string)
	case "labels":
		a.Labels = toStrings(value)
	case "discogs_genres":
		a.DiscogsGenres = toStrings(value)
	case "discogs_styles":
		a.DiscogsStyles = toStrings(value)
	case "tracks":
		if tracks, ok := value.([]models.Track); ok {
			a.Tracks = tracks
		}
	case "disc_metadata":
		if meta, ok := value.([]models.DiscInfo); ok {
			a.DiscMetadata = meta
		}
	case "my_rating":
		switch v := value.(type) {
		case int:
			a.MyRating = v
		case float64:
			a.MyRating = int(v)
		}
	case "is_1001":
		a.Is1001, _ = value.(bool)
	}
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (m *MockStore) DeleteAlbum(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Albums[id]; !ok {
		return ErrNotFound
	}
	delete(m.Albums, id)
	return nil
}

func (m *MockStore) SaveConflicts(_ context.Context, conflicts []models.FieldConflict) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	for _, c := range conflicts {
		m.nextConflictID++
		c.ID = m.nextConflictID
		stored := c
		m.Conflicts[c.ID] = &stored
	}
	return nil
}

func (m *MockStore) ListConflicts(_ context.Context) ([]models.FieldConflict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.Conflicts))
	for id := range m.Conflicts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.FieldConflict, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.Conflicts[id])
	}
	return out, nil
}

func (m *MockStore) GetConflict(_ context.Context, id int64) (*models.FieldConflict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Conflicts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *MockStore) DeleteConflict(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Conflicts[id]; !ok {
		return ErrNotFound
	}
	delete(m.Conflicts, id)
	return nil
}

func (m *MockStore) PreviousResolutions(_ context.Context, source models.ImportSource) ([]models.PreviousResolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.PreviousResolution
	for _, r := range m.Resolutions {
		if r.Source == source {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockStore) ApplyResolution(ctx context.Context, req ResolutionRequest) error {
	if req.Resolution != models.KeepCurrent {
		if err := m.UpdateAlbumFields(ctx, req.AlbumID, map[string]any{req.FieldName: req.ResolvedValue}); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resolutions = append(m.Resolutions, models.PreviousResolution{
		AlbumID:       req.AlbumID,
		FieldName:     req.FieldName,
		KeptValue:     req.KeptValue,
		RejectedValue: req.RejectedValue,
		Resolution:    req.Resolution,
		Source:        req.Source,
	})
	for id, c := range m.Conflicts {
		if c.AlbumID == req.AlbumID && c.FieldName == req.FieldName && c.Source == req.Source {
			delete(m.Conflicts, id)
		}
	}
	return nil
}

func (m *MockStore) SaveImportRun(_ context.Context, run *models.ImportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Runs = append(m.Runs, *run)
	return nil
}

func (m *MockStore) ListImportRuns(_ context.Context, limit int) ([]models.ImportRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]models.ImportRun, len(m.Runs))
	copy(runs, m.Runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	return runs, nil
}

func (m *MockStore) ThousandEntries(_ context.Context) ([]models.ThousandEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]models.ThousandEntry, len(m.Entries))
	copy(entries, m.Entries)
	return entries, nil
}

func (m *MockStore) SaveThousandEntries(_ context.Context, entries []models.ThousandEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range entries {
		if entries[i].ID == 0 {
			entries[i].ID = int64(len(m.Entries) + 1)
		}
		m.Entries = append(m.Entries, entries[i])
	}
	return nil
}

func (m *MockStore) SaveThousandReview(_ context.Context, review *models.ThousandReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *review
	m.Reviews[[2]int64{review.AlbumID, review.EntryID}] = &stored
	if album, ok := m.Albums[review.AlbumID]; ok {
		switch review.Status {
		case "approved":
			album.Is1001 = true
		case "rejected":
			album.Is1001 = false
		}
	}
	return nil
}

func (m *MockStore) ListThousandReviews(_ context.Context, status string) ([]models.ThousandReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ThousandReview
	for _, r := range m.Reviews {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out, nil
}
