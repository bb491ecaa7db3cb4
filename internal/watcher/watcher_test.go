// file: internal/watcher/watcher_test.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestIsImportFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"collection.xml", true},
		{"collection.XML", true},
		{"collection.csv", false},
		{"collection.txt", false},
		{"collection", false},
		{".xml", true},
	}
	for _, tt := range tests {
		if got := IsImportFile(tt.name); got != tt.want {
			t.Errorf("IsImportFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

type callRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *callRecorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *callRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func TestSettledFileTriggersCallback(t *testing.T) {
	dir := t.TempDir()
	rec := &callRecorder{}
	w := New(rec.record, 100*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	f := filepath.Join(dir, "export.xml")
	if err := os.WriteFile(f, []byte("<collectorz/>"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(400 * time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("expected 1 callback, got %d", rec.count())
	}
	rec.mu.Lock()
	got := rec.paths[0]
	rec.mu.Unlock()
	if got != f {
		t.Errorf("callback path = %q, want %q", got, f)
	}
}

func TestRepeatedWritesDebounceToOneCallback(t *testing.T) {
	dir := t.TempDir()
	rec := &callRecorder{}
	w := New(rec.record, 200*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	f := filepath.Join(dir, "export.xml")
	for i := 0; i < 4; i++ {
		if err := os.WriteFile(f, []byte("<collectorz/>"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)

	if rec.count() != 1 {
		t.Errorf("expected a single callback after writes settle, got %d", rec.count())
	}
}

func TestNonImportFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	rec := &callRecorder{}
	w := New(rec.record, 100*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)

	if rec.count() != 0 {
		t.Errorf("expected no callbacks for non-import files, got %d", rec.count())
	}
}

func TestRemovedFileCancelsPendingImport(t *testing.T) {
	dir := t.TempDir()
	rec := &callRecorder{}
	w := New(rec.record, 300*time.Millisecond)

	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	f := filepath.Join(dir, "export.xml")
	if err := os.WriteFile(f, []byte("<collectorz/>"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := os.Remove(f); err != nil {
		t.Fatal(err)
	}

	time.Sleep(600 * time.Millisecond)

	if rec.count() != 0 {
		t.Errorf("expected no callback for a removed file, got %d", rec.count())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := New(func(string) {}, 100*time.Millisecond)
	if err := w.Start(dir); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}
