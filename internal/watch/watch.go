// Package watch re-runs an action when story files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gorewood/folio/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is handled.
const DefaultDebounce = 200 * time.Millisecond

// Handler is called once per settled change with the path as it was given
// to New.
type Handler func(ctx context.Context, path string)

// Watcher observes a fixed set of files. Their parent directories are
// watched so that editors that save by rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]string // absolute path -> caller's path
	debounce time.Duration
	handle   Handler
	log      *logger.Logger

	mu      sync.Mutex
	pending map[string]time.Time
}

// New starts watching files. Call Close when done.
func New(files []string, debounce time.Duration, handle Handler, log *logger.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]string, len(files)),
		debounce: debounce,
		handle:   handle,
		log:      logger.OrNop(log),
		pending:  make(map[string]time.Time),
	}

	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run dispatches settled changes until ctx is canceled or the watcher is
// closed. Handlers run on the calling goroutine, one at a time.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.record(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case now := <-ticker.C:
			for _, path := range w.settled(now) {
				w.handle(ctx, path)
			}
		}
	}
}

func (w *Watcher) record(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if _, ok := w.files[abs]; !ok {
		return
	}

	w.log.Debug("file changed", "path", abs, "op", event.Op.String())
	w.mu.Lock()
	w.pending[abs] = time.Now()
	w.mu.Unlock()
}

// settled removes and returns the pending files that have been quiet for
// the debounce interval, in sorted order.
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for abs, changed := range w.pending {
		if now.Sub(changed) >= w.debounce {
			ready = append(ready, abs)
			delete(w.pending, abs)
		}
	}
	sort.Strings(ready)

	out := make([]string, len(ready))
	for i, abs := range ready {
		out[i] = w.files[abs]
	}
	return out
}
