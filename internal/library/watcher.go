package library

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// defaultPollInterval is how often the watcher checks the metadata file when
// no explicit interval is configured.
const defaultPollInterval = 5 * time.Second

// Watcher monitors the corpus metadata file and triggers a [Library.Reload]
// when its content changes. It uses polling (not fsnotify) to keep
// dependencies minimal; a quick mtime check guards the content hash so
// unchanged files are not re-read on every tick.
type Watcher struct {
	lib      *Library
	interval time.Duration

	done     chan struct{}
	stopOnce sync.Once

	// last known file state for change detection
	mu        sync.Mutex
	lastMtime time.Time
	lastHash  [sha256.Size]byte
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. The default is 5 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher creates a metadata file watcher for lib and starts polling in a
// background goroutine. The file's current state is recorded as the baseline,
// so the corpus is expected to have been loaded already via [Library.Reload];
// only subsequent content changes trigger a reload. Call [Watcher.Stop] to
// end polling.
func NewWatcher(lib *Library, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		lib:      lib,
		interval: defaultPollInterval,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	hash, mtime, err := w.hashFile()
	if err != nil {
		return nil, fmt.Errorf("library: watcher initial stat: %w", err)
	}
	w.lastHash = hash
	w.lastMtime = mtime

	go w.poll()
	return w, nil
}

// Stop ends the background polling. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

// poll runs in a background goroutine, checking the metadata file periodically.
func (w *Watcher) poll() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check compares the file against its last known state and reloads the
// library when the content changed. The recorded state only advances after a
// successful reload, so a file that currently fails to load is retried on
// every following poll until it loads.
func (w *Watcher) check() {
	// Quick mtime check first to avoid hashing unchanged files.
	info, err := os.Stat(w.lib.path)
	if err != nil {
		slog.Warn("library: watcher cannot stat metadata file", "path", w.lib.path, "err", err)
		return
	}

	w.mu.Lock()
	mtime := w.lastMtime
	w.mu.Unlock()

	if info.ModTime().Equal(mtime) {
		return
	}

	// Mtime changed — read and hash.
	hash, newMtime, err := w.hashFile()
	if err != nil {
		slog.Warn("library: watcher cannot read metadata file", "path", w.lib.path, "err", err)
		return
	}

	w.mu.Lock()
	if hash == w.lastHash {
		// File was touched but content is identical.
		w.lastMtime = newMtime
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	if err := w.lib.Reload(context.Background()); err != nil {
		slog.Warn("library: watcher reload failed, keeping previous index", "path", w.lib.path, "err", err)
		return
	}

	w.mu.Lock()
	w.lastHash = hash
	w.lastMtime = newMtime
	w.mu.Unlock()
}

// hashFile returns the SHA-256 of the metadata file's content and its
// modification time.
func (w *Watcher) hashFile() ([sha256.Size]byte, time.Time, error) {
	var hash [sha256.Size]byte

	f, err := os.Open(w.lib.path)
	if err != nil {
		return hash, time.Time{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return hash, time.Time{}, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return hash, time.Time{}, err
	}
	copy(hash[:], h.Sum(nil))
	return hash, info.ModTime(), nil
}
