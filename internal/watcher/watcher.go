// file: internal/watcher/watcher.go
// version: 2.1.0
// guid: b2c3d4e5-f6a7-8901-bcde-f23456789012

// Package watcher monitors an import drop directory. Dropping a CLZ export
// into the directory triggers an import once writes settle.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// importExtensions are the file types accepted in the drop directory.
var importExtensions = map[string]bool{
	".xml": true,
}

// DefaultDebounce is how long a file must stay quiet before it is imported.
// Exports can take a while to finish writing.
const DefaultDebounce = 5 * time.Second

// Callback is invoked once per settled file.
type Callback func(path string)

// Watcher monitors a drop directory for export files and invokes a callback
// for each file after its writes settle for the debounce duration.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dropDir   string
	debounce  time.Duration
	callback  Callback
	stop      chan struct{}
	stopped   chan struct{}

	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
}

// New creates a Watcher. Pass 0 for debounce to use DefaultDebounce.
func New(callback Callback, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		debounce: debounce,
		callback: callback,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}
}

// Start begins watching dropDir. It is safe to call only once.
func (w *Watcher) Start(dropDir string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsw
	w.dropDir = dropDir

	if err := fsw.Add(dropDir); err != nil {
		fsw.Close()
		return err
	}

	log.Printf("[INFO] watcher: watching %s for import drops", dropDir)
	go w.eventLoop()
	return nil
}

// Stop gracefully shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}
	<-w.stopped

	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ERROR] watcher: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		// A removed or renamed-away file has nothing to import.
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			w.cancel(event.Name)
		}
		return
	}
	if !IsImportFile(event.Name) {
		return
	}
	w.schedule(event.Name)
}

// schedule (re)starts the settle timer for one file. Each write resets it,
// so the callback fires only after the export finishes.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}
		log.Printf("[INFO] watcher: import file settled: %s", path)
		if w.callback != nil {
			w.callback(path)
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Stop()
		delete(w.pending, path)
	}
}

// IsImportFile reports whether name has a recognized import extension.
func IsImportFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return importExtensions[ext]
}
