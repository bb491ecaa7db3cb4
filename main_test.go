// file: main_test.go
// version: 2.0.0
// guid: 4e5f6a7b-8c9d-0e1f-2a3b-4c5d6e7f8a9b

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMainHelp(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "db", "test.db")

	origArgs := os.Args
	defer func() {
		os.Args = origArgs
	}()

	os.Args = []string{
		"cratekeeper",
		"--db",
		dbPath,
		"--help",
	}

	main()
}
