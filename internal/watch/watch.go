// Package watch re-runs a build whenever one of its input files changes.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/bundlebuilder/internal/logfields"
)

// DefaultDebounce collapses bursts of writes (editors, engine exports) into one run.
const DefaultDebounce = 2 * time.Second

// RunFunc is invoked after a debounced change.
type RunFunc func(ctx context.Context) error

// Watcher monitors a fixed set of files. Runs happen on the watcher's own
// goroutine, so they never overlap.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	run      RunFunc
	debounce time.Duration
	interval time.Duration
	trigger  chan struct{}
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// New creates a watcher for files. Parent directories are watched, which keeps
// working when a file is replaced by rename.
func New(files []string, run RunFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "create file watcher").Build()
	}
	w := &Watcher{
		files:    make(map[string]struct{}, len(files)),
		run:      run,
		debounce: DefaultDebounce,
		trigger:  make(chan struct{}, 1),
		logger:   slog.Default(),
		watcher:  fw,
	}
	seenDirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, errors.FileSystemError("resolve watched path").WithCause(err).WithContext("path", f).Build()
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seenDirs[dir]; !ok {
			seenDirs[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// WithDebounce sets the quiet period before a run.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithInterval additionally runs every d, whether or not anything changed.
// Zero disables periodic runs.
func (w *Watcher) WithInterval(d time.Duration) *Watcher {
	if d >= 0 {
		w.interval = d
	}
	return w
}

// Trigger requests a run without waiting for the debounce period. Requests
// made while a run is pending are coalesced.
func (w *Watcher) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(l *slog.Logger) *Watcher {
	if l != nil {
		w.logger = l
	}
	return w
}

// Run blocks until ctx is canceled. Failed runs are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()
	for _, dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return errors.FileSystemError("watch directory").WithCause(err).WithContext("path", dir).Build()
		}
	}
	if w.interval > 0 {
		stop, err := w.schedule()
		if err != nil {
			return err
		}
		defer stop()
	}
	w.logger.Info("Watching for changes", slog.Int("files", len(w.files)), slog.Duration("debounce", w.debounce))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-timer.C:
			w.runOnce(ctx)
		case <-w.trigger:
			timer.Stop()
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	if err := w.run(ctx); err != nil {
		w.logger.Error("Build run failed", logfields.Error(err))
	}
}

// schedule starts a gocron job that triggers a run every interval.
func (w *Watcher) schedule() (func(), error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "create scheduler").Build()
	}
	if _, err := s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.Trigger),
		gocron.WithName("periodic-build"),
	); err != nil {
		_ = s.Shutdown()
		return nil, errors.WrapError(err, errors.CategoryConfig, "schedule periodic build").
			WithContext("interval", w.interval.String()).
			Build()
	}
	s.Start()
	w.logger.Info("Periodic builds scheduled", slog.Duration("interval", w.interval))
	return func() {
		if err := s.Shutdown(); err != nil {
			w.logger.Error("Error stopping scheduler", logfields.Error(err))
		}
	}, nil
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
