// Package watch reports changes to a single file.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher calls back whenever a file settles after a change. The parent
// directory is watched rather than the file itself, so editors that save by
// renaming a temporary file over the original are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   string // resolved symlink target, empty if path is not a link
	debounce time.Duration
	logger   *logrus.Entry
	onChange func(path string)

	mu    sync.Mutex
	timer *time.Timer
}

// NewFileWatcher creates a watcher for path. onChange runs on the watcher's
// goroutine once no further events arrived for the debounce period.
func NewFileWatcher(path string, debounce time.Duration, logger *logrus.Entry, onChange func(string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	// fsnotify doesn't follow symlinks, so watch the target's directory too
	var target string
	if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			target = resolved
			if filepath.Dir(resolved) != filepath.Dir(abs) {
				if err := watcher.Add(filepath.Dir(resolved)); err != nil {
					logger.WithError(err).Warnf("Failed to watch symlink target dir %s", filepath.Dir(resolved))
				}
			}
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		debounce: debounce,
		logger:   logger,
		onChange: onChange,
	}, nil
}

// Start watches for changes. It blocks until the context is cancelled or the
// watcher is closed.
func (w *FileWatcher) Start(ctx context.Context) {
	events := make(chan struct{}, 1)
	defer w.stopTimer()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !w.relevant(event.Name) {
				continue
			}
			w.schedule(events)
		case <-events:
			w.logger.Debugf("File changed: %s", filepath.Base(w.path))
			if w.onChange != nil {
				w.onChange(w.path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

func (w *FileWatcher) relevant(name string) bool {
	name = filepath.Clean(name)
	return name == w.path || (w.target != "" && name == w.target)
}

// schedule restarts the quiet period; the callback fires when it elapses.
func (w *FileWatcher) schedule(events chan<- struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case events <- struct{}{}:
		default:
		}
	})
}

func (w *FileWatcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Close stops the watcher and releases resources.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}
