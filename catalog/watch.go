// ABOUTME: Watches a catalog data file for changes on disk
// ABOUTME: Wraps fsnotify with a small debounce for editors that write in several steps

package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long to wait after a write before reporting it
const debounce = 100 * time.Millisecond

// Watcher reports writes to a single catalog file
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path.
// The parent directory is watched so that rename-over-write saves are seen too.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()

		return nil, fmt.Errorf("failed to watch catalog file: %w", err)
	}

	return &Watcher{path: filepath.Clean(path), watcher: w}, nil
}

// Path returns the watched file path
func (w *Watcher) Path() string {
	return w.path
}

// Wait blocks until the catalog file is written or created.
// It returns false once the watcher has been closed. Watch errors are
// passed to onError and do not stop the wait.
func (w *Watcher) Wait(onError func(error)) bool {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return false
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				time.Sleep(debounce)

				return true
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return false
			}

			if onError != nil {
				onError(err)
			}
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
