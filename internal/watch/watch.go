// Package watch rebuilds catalogs when README documents change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// DefaultDebounce groups bursts of editor writes into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// ErrRebuildRequired indicates the watcher was constructed without a rebuild function.
var ErrRebuildRequired = errors.New("watch: rebuild function is required")

// RebuildFunc is invoked with the sorted set of paths changed since the last rebuild.
type RebuildFunc func(ctx context.Context, changed []string) error

// Options configures a Watcher.
type Options struct {
	// Dir is the directory holding README documents.
	Dir string
	// Pattern selects watched files by base name. Defaults to "README*.md".
	Pattern string
	// Recursive also watches every sub-directory present at start.
	Recursive bool
	// Debounce is the quiet period before a rebuild fires.
	Debounce time.Duration
	Logger   interfaces.Logger
}

// Watcher drives rebuilds from filesystem events.
type Watcher struct {
	opts    Options
	rebuild RebuildFunc
	logger  interfaces.Logger
	watcher *fsnotify.Watcher
	// pending is only touched from the Run goroutine.
	pending map[string]struct{}
}

// New starts watching opts.Dir. Call Run to process events and Close to release
// the underlying watcher.
func New(opts Options, rebuild RebuildFunc) (*Watcher, error) {
	if rebuild == nil {
		return nil, ErrRebuildRequired
	}
	if strings.TrimSpace(opts.Dir) == "" {
		opts.Dir = "."
	}
	if strings.TrimSpace(opts.Pattern) == "" {
		opts.Pattern = "README*.md"
	}
	if _, err := filepath.Match(opts.Pattern, "README.md"); err != nil {
		return nil, fmt.Errorf("watch: invalid pattern %q: %w", opts.Pattern, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	w := &Watcher{
		opts:    opts,
		rebuild: rebuild,
		logger:  logger,
		watcher: fw,
		pending: map[string]struct{}{},
	}
	if err := w.addDirs(); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addDirs() error {
	if !w.opts.Recursive {
		if err := w.watcher.Add(w.opts.Dir); err != nil {
			return fmt.Errorf("watch: add %s: %w", w.opts.Dir, err)
		}
		return nil
	}
	return filepath.WalkDir(w.opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.opts.Dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until ctx is cancelled. Rebuild failures are logged
// and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Info("watch.started", "dir", w.opts.Dir, "pattern", w.opts.Pattern)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stopped")
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}
			w.pending[event.Name] = struct{}{}
			w.logger.Debug("watch.event", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.opts.Debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)
		case <-timer.C:
			changed := w.drain()
			if len(changed) == 0 {
				continue
			}
			started := time.Now()
			if err := w.rebuild(ctx, changed); err != nil {
				w.logger.Error("watch.rebuild.failed", "changed", len(changed), "error", err)
				continue
			}
			w.logger.Info("watch.rebuild.completed", "changed", len(changed), "duration", time.Since(started))
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	ok, err := filepath.Match(w.opts.Pattern, filepath.Base(event.Name))
	return err == nil && ok
}

func (w *Watcher) drain() []string {
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = map[string]struct{}{}
	sort.Strings(changed)
	return changed
}
