// Package watch re-tags source files as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tagdoc/internal/discover"
	"tagdoc/internal/tagger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Processor handles one changed file. *tagger.Tagger implements it.
type Processor interface {
	ProcessFile(path string) tagger.Result
}

// Options configures a Watcher.
type Options struct {
	Recursive bool
	Debounce  time.Duration
	// OnResult, if set, receives every result. It runs on a timer goroutine.
	OnResult func(tagger.Result)
}

// Watcher watches directories and feeds changed files to a Processor. The
// rewrite of a tagged file fires one more event; that pass finds every tag
// present and leaves the file alone, so the loop settles.
type Watcher struct {
	fsw       *fsnotify.Watcher
	proc      Processor
	matcher   *discover.Matcher
	recursive bool
	debounce  time.Duration
	onResult  func(tagger.Result)
	logger    *zap.Logger

	mu       sync.Mutex
	roots    []string
	pending  map[string]*time.Timer
	closed   bool
	inflight sync.WaitGroup
}

// New creates a Watcher. A nil logger disables logging.
func New(proc Processor, matcher *discover.Matcher, opts Options, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fsw:       fsw,
		proc:      proc,
		matcher:   matcher,
		recursive: opts.Recursive,
		debounce:  debounce,
		onResult:  opts.OnResult,
		logger:    logger,
		pending:   make(map[string]*time.Timer),
	}, nil
}

// Add starts watching root, and its subdirectories when recursive.
func (w *Watcher) Add(root string) error {
	root = filepath.Clean(root)
	w.mu.Lock()
	w.roots = append(w.roots, root)
	w.mu.Unlock()
	return w.addDir(root, root)
}

func (w *Watcher) addDir(root, dir string) error {
	if !w.recursive {
		return w.fsw.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.matcher.Excluded(w.rel(root, path)) {
			return filepath.SkipDir
		}
		w.logger.Debug("watching directory", zap.String("dir", path))
		return w.fsw.Add(path)
	})
}

// Run dispatches events until ctx is done or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	root, ok := w.rootOf(ev.Name)
	if !ok {
		return
	}
	rel := w.rel(root, ev.Name)

	if ev.Has(fsnotify.Create) && w.recursive && isDir(ev.Name) {
		if !w.matcher.Excluded(rel) {
			if err := w.addDir(root, ev.Name); err != nil {
				w.logger.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
			}
		}
		return
	}
	if !w.matcher.Match(rel) {
		return
	}
	w.schedule(ev.Name)
}

// schedule (re)arms the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		if w.closed {
			w.mu.Unlock()
			return
		}
		w.inflight.Add(1)
		w.mu.Unlock()
		defer w.inflight.Done()

		res := w.proc.ProcessFile(path)
		w.logger.Info("file processed",
			zap.String("path", res.Path),
			zap.String("status", string(res.Status)),
			zap.String("reason", res.Reason))
		if w.onResult != nil {
			w.onResult(res)
		}
	})
}

// Close stops pending timers, waits for files being processed and releases
// the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	w.inflight.Wait()
	return w.fsw.Close()
}

func (w *Watcher) rootOf(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	best := ""
	for _, r := range w.roots {
		if (path == r || strings.HasPrefix(path, r+string(filepath.Separator))) && len(r) > len(best) {
			best = r
		}
	}
	return best, best != ""
}

func (w *Watcher) rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
