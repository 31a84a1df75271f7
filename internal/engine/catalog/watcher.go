package catalog

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of write events editors emit when
// saving a file.
const watchDebounce = 200 * time.Millisecond

// WatchLogger is the logging surface the watcher needs.
type WatchLogger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Watcher reloads the catalog when its source file changes on disk. Each
// successful reload bumps the catalog version.
type Watcher struct {
	catalog *Catalog
	path    string
	log     WatchLogger

	fsw     *fsnotify.Watcher
	closeCh chan struct{}

	mu      sync.Mutex
	closed  bool
	reloads int
}

// NewWatcher starts watching path and reloading catalog on change.
func NewWatcher(catalog *Catalog, path string, log WatchLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors replace files by rename, which drops a
	// watch on the file itself.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		catalog: catalog,
		path:    filepath.Clean(path),
		log:     log,
		fsw:     fsw,
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Reloads returns how many reloads have completed successfully.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.closeCh)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("catalog watcher: %v", err)

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := w.catalog.LoadFile(w.path); err != nil {
				// Keep serving the previous definitions.
				w.log.Warnf("catalog reload failed, keeping version %d: %v", w.catalog.Version(), err)
				continue
			}
			w.mu.Lock()
			w.reloads++
			w.mu.Unlock()
			w.log.Infof("catalog reloaded: version %d, %d brushes", w.catalog.Version(), w.catalog.Len())
		}
	}
}
