// file: internal/backup/backup.go
// version: 2.0.0
// guid: 9f0a1b2c-3d4e-5f6a-7b8c-9d0e1f2a3b4c

// Package backup creates and restores compressed snapshots of the SQLite
// database. Backups are plain gzip files with a SHA256 checksum recorded
// alongside them.
package backup

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Info describes one backup on disk.
type Info struct {
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds backup settings.
type Config struct {
	BackupDir  string
	MaxBackups int
}

// DefaultConfig returns the default backup settings.
func DefaultConfig() Config {
	return Config{
		BackupDir:  "backups",
		MaxBackups: 10,
	}
}

const suffix = ".db.gz"

// Create writes a gzip snapshot of the database file and prunes old
// backups beyond MaxBackups. The caller should ensure no write is in
// flight; WAL checkpointing is the store's concern.
func Create(databasePath string, cfg Config) (*Info, error) {
	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	src, err := os.Open(databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer src.Close()

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("cratekeeper_%s%s", timestamp, suffix)
	path := filepath.Join(cfg.BackupDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup file: %w", err)
	}

	gz := gzip.NewWriter(dst)
	gz.Name = filepath.Base(databasePath)
	if _, err := io.Copy(gz, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := gz.Close(); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to finish backup: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to close backup file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}
	checksum, err := fileChecksum(path)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum backup: %w", err)
	}

	if err := pruneOld(cfg.BackupDir, cfg.MaxBackups); err != nil {
		log.Printf("[WARN] backup: failed to prune old backups: %v", err)
	}

	return &Info{
		Filename:  filename,
		Path:      path,
		Size:      stat.Size(),
		Checksum:  checksum,
		CreatedAt: stat.ModTime(),
	}, nil
}

// Restore decompresses a backup into targetPath. It refuses to overwrite
// an existing database.
func Restore(backupPath, targetPath string) error {
	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("target %s already exists; move it aside first", targetPath)
	}

	src, err := os.Open(backupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup: %w", err)
	}
	defer src.Close()

	gz, err := gzip.NewReader(src)
	if err != nil {
		return fmt.Errorf("not a valid backup file: %w", err)
	}
	defer gz.Close()

	if dir := filepath.Dir(targetPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create target directory: %w", err)
		}
	}

	dst, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("failed to create database file: %w", err)
	}

	if _, err := io.Copy(dst, gz); err != nil {
		dst.Close()
		os.Remove(targetPath)
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return dst.Close()
}

// List returns all backups in the directory, newest first.
func List(backupDir string) ([]Info, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		stat, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(backupDir, entry.Name())
		checksum, _ := fileChecksum(path)
		backups = append(backups, Info{
			Filename:  entry.Name(),
			Path:      path,
			Size:      stat.Size(),
			Checksum:  checksum,
			CreatedAt: stat.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

func pruneOld(backupDir string, maxBackups int) error {
	if maxBackups < 1 {
		return nil
	}
	backups, err := List(backupDir)
	if err != nil {
		return err
	}
	for i := maxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			log.Printf("[WARN] backup: failed to delete %s: %v", backups[i].Filename, err)
		}
	}
	return nil
}
