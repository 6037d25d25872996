package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	e "antler/pkg/errors"
	"antler/pkg/logger"
)

// debounceWindow collapses bursts of filesystem events (editors and
// scanners write volumes in several syscalls) into one re-run.
const debounceWindow = 500 * time.Millisecond

// Watcher re-runs a pipeline whenever its definition or any step input
// changes on disk.
type Watcher struct {
	Executor *Executor

	// Debounce overrides the default settle window; tests shorten it.
	Debounce time.Duration

	// OnRun, if set, observes each completed re-run.
	OnRun func(*Result, error)
}

// Watch blocks until ctx is cancelled, re-running the pipeline at path on
// every relevant change. The pipeline is re-parsed each round, so edits to
// the file itself take effect.
func (w *Watcher) Watch(ctx context.Context, path string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return e.Wrap(err, e.ErrUnknown, "Cannot create filesystem watcher")
	}
	defer fw.Close()

	f, err := Load(path)
	if err != nil {
		return err
	}
	if err := w.addTargets(fw, path, f); err != nil {
		return err
	}

	w.runOnce(ctx, f)

	debounce := w.Debounce
	if debounce == 0 {
		debounce = debounceWindow
	}

	var timer *time.Timer
	var timerCh <-chan time.Time
	watched := watchSet(path, f)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			logger.Debugf("change detected: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watch error: %v", err)

		case <-timerCh:
			timer = nil
			timerCh = nil

			// Re-parse: the definition itself may be what changed.
			next, err := Load(path)
			if err != nil {
				logger.Errorf("pipeline invalid after change: %v", err)
				if w.OnRun != nil {
					w.OnRun(nil, err)
				}
				continue
			}
			f = next
			if err := w.addTargets(fw, path, f); err != nil {
				logger.Warnf("could not extend watch set: %v", err)
			}
			watched = watchSet(path, f)

			w.runOnce(ctx, f)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, f *File) {
	res, err := w.Executor.Run(ctx, f)
	if err != nil {
		logger.Errorf("pipeline run failed: %v", err)
	}
	if w.OnRun != nil {
		w.OnRun(res, err)
	}
}

// addTargets watches the directories containing the pipeline file and each
// step input. Directories rather than files, so inputs recreated by
// rename-over (the common safe-write pattern) stay observed.
func (w *Watcher) addTargets(fw *fsnotify.Watcher, path string, f *File) error {
	dirs := map[string]bool{filepath.Dir(path): true}
	for i := range f.Steps {
		for _, in := range f.Steps[i].Inputs() {
			dirs[filepath.Dir(in)] = true
		}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			logger.Debugf("not watching %s: %v", dir, err)
		}
	}
	return nil
}

// watchSet is the exact file paths whose events trigger a re-run.
func watchSet(path string, f *File) map[string]bool {
	set := map[string]bool{filepath.Clean(path): true}
	for i := range f.Steps {
		for _, in := range f.Steps[i].Inputs() {
			set[filepath.Clean(in)] = true
		}
	}
	return set
}
