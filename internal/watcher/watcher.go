// Package watcher reports changes to a single file on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const tag = "watch"

// DefaultDebounce is used when New is given a non-positive delay.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls onChange once a burst of writes to path has settled.
//
// Only Write and Create events on path count. The parent directory is
// watched rather than the file itself, so a temp file renamed over path
// arrives as a Create and is still seen.
type Watcher struct {
	mu        sync.Mutex
	path      string
	debounce  time.Duration
	onChange  func()
	fs        *fsnotify.Watcher
	debouncer Debouncer
}

// New creates a watcher for path. Call Run to start delivering events.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		fs:       fsw,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Retarget switches the watcher to path, moving the directory watch when
// path lives elsewhere. It is safe to call while Run is active.
func (w *Watcher) Retarget(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if abs == w.path {
		return nil
	}
	oldDir, newDir := filepath.Dir(w.path), filepath.Dir(abs)
	if oldDir != newDir {
		if err := w.fs.Add(newDir); err != nil {
			return fmt.Errorf("watch %s: %w", newDir, err)
		}
		_ = w.fs.Remove(oldDir)
	}
	logger.DebugTagf(tag, "Watcher: Now watching %s", abs)
	w.path = abs
	return nil
}

// Run processes file system events until ctx is done. It always returns
// nil after ctx is cancelled; the underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.debouncer.Stop()
		_ = w.fs.Close()
	}()
	logger.DebugTagf(tag, "Watcher: Watching %s", w.Path())

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.DebugTagf(tag, "Watcher: %s", event)
			w.debouncer.Debounce(w.debounce, w.onChange)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Watcher: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.Path() {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
