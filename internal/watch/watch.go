// Package watch re-runs a reaction when static sources change.
//
// Filesystem events (fsnotify) and periodic resyncs (gocron) only request a
// run; a single worker performs runs one at a time, and requests arriving
// while a run is in flight coalesce into one follow-up run.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/staticfiles/internal/logfields"
)

// RunFunc performs one reaction.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	// Paths are files or directories to watch. Directories are watched
	// recursively; files are watched through their parent directory.
	Paths []string
	// Debounce is the quiet period after the last change before a run.
	Debounce time.Duration
	// Resync re-runs periodically when positive.
	Resync time.Duration
	Logger *slog.Logger
}

// Watcher drives RunFunc from filesystem changes and a periodic resync.
type Watcher struct {
	run  RunFunc
	opts Options
	log  *slog.Logger

	requests chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	files map[string]struct{} // watched single files, by absolute path
	dirs  map[string]struct{} // recursively watched roots
}

// New creates a watcher. It does nothing until Run is called.
func New(run RunFunc, opts Options) *Watcher {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		run:      run,
		opts:     opts,
		log:      log,
		requests: make(chan struct{}, 1),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
}

// Request asks for a run without debouncing. Pending requests coalesce.
func (w *Watcher) Request() {
	select {
	case w.requests <- struct{}{}:
	default:
	}
}

// trigger requests a run once no further change arrives within the debounce
// window.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.Request)
}

// Run performs an initial run, then watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	for _, p := range w.opts.Paths {
		if err := w.add(fsw, p); err != nil {
			return err
		}
	}

	if w.opts.Resync > 0 {
		sched, err := w.startResync()
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
	}

	workerCtx, stop := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx)
	}()
	defer func() {
		w.stopTimer()
		stop()
		wg.Wait()
	}()

	w.Request()
	w.log.Info("Watching static sources",
		logfields.Count(len(w.opts.Paths)),
		slog.Duration("debounce", w.opts.Debounce),
		slog.Duration("resync", w.opts.Resync))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping watcher")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.requests:
			if ctx.Err() != nil {
				return
			}
			start := time.Now()
			if err := w.run(ctx); err != nil {
				w.log.Warn("Static copy failed", logfields.Error(err))
				continue
			}
			w.log.Debug("Static copy finished", logfields.DurationMS(float64(time.Since(start).Milliseconds())))
		}
	}
}

func (w *Watcher) startResync() (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.opts.Resync),
		gocron.NewTask(func() {
			w.log.Debug("Periodic resync")
			w.Request()
		}),
		gocron.WithName("static-resync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create resync job: %w", err)
	}
	s.Start()
	return s, nil
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// add registers path with the fsnotify watcher. Missing paths are an error.
func (w *Watcher) add(fsw *fsnotify.Watcher, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}
	if info.IsDir() {
		w.dirs[abs] = struct{}{}
		return addDirsRecursive(w.log, fsw, abs)
	}
	w.files[abs] = struct{}{}
	return fsw.Add(filepath.Dir(abs))
}

// relevant reports whether an event path belongs to a watched source.
// Parent directories of watched files deliver events for siblings too.
func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	for dir := range w.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if shouldIgnoreEvent(ev.Name) || !w.relevant(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w.log, fsw, ev.Name)
		}
	}
	w.log.Debug("Static source changed", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

func addDirsRecursive(log *slog.Logger, fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				log.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters editor swap and backup files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"))
}
