// file: internal/backup/backup_test.go
// version: 2.0.0
// guid: 0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d

package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDatabase(t *testing.T, dir string, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cratekeeper.db")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCreateAndRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := writeDatabase(t, dir, "album data")
	cfg := Config{BackupDir: filepath.Join(dir, "backups"), MaxBackups: 10}

	info, err := Create(dbPath, cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, info.Checksum)
	assert.FileExists(t, info.Path)

	restored := filepath.Join(dir, "restored.db")
	require.NoError(t, Restore(info.Path, restored))

	data, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, "album data", string(data))
}

func TestRestoreRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := writeDatabase(t, dir, "original")
	cfg := Config{BackupDir: filepath.Join(dir, "backups"), MaxBackups: 10}

	info, err := Create(dbPath, cfg)
	require.NoError(t, err)

	err = Restore(info.Path, dbPath)
	assert.Error(t, err)
}

func TestListSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(backupDir, 0755))

	old := filepath.Join(backupDir, "cratekeeper_20240101_000000.db.gz")
	recent := filepath.Join(backupDir, "cratekeeper_20250101_000000.db.gz")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0644))
	require.NoError(t, os.WriteFile(recent, []byte("new"), 0644))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	backups, err := List(backupDir)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, filepath.Base(recent), backups[0].Filename)
}

func TestListIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	backups, err := List(dir)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestCreatePrunesOldBackups(t *testing.T) {
	dir := t.TempDir()
	dbPath := writeDatabase(t, dir, "data")
	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(backupDir, 0755))

	for i := 0; i < 3; i++ {
		stale := filepath.Join(backupDir,
			"cratekeeper_2024010"+string(rune('1'+i))+"_000000.db.gz")
		require.NoError(t, os.WriteFile(stale, []byte("stale"), 0644))
		past := time.Now().Add(-time.Duration(72-i) * time.Hour)
		require.NoError(t, os.Chtimes(stale, past, past))
	}

	_, err := Create(dbPath, Config{BackupDir: backupDir, MaxBackups: 2})
	require.NoError(t, err)

	backups, err := List(backupDir)
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestListMissingDirectory(t *testing.T) {
	backups, err := List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, backups)
}
