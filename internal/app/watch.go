package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/modscan/internal/adapters/watcher"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/ui/style"
	"go.trai.ch/zerr"
)

// ChangeKind classifies a reloaded descriptor.
type ChangeKind string

const (
	// ChangeAdded is a descriptor file that appeared.
	ChangeAdded ChangeKind = "added"
	// ChangeChanged is a descriptor whose fingerprint changed.
	ChangeChanged ChangeKind = "changed"
	// ChangeRemoved is a descriptor file that disappeared.
	ChangeRemoved ChangeKind = "removed"
	// ChangeFailed is a descriptor file that no longer loads.
	ChangeFailed ChangeKind = "failed"
)

// Change is a single observed descriptor change.
type Change struct {
	Kind   ChangeKind
	Path   string
	Record domain.Record
	Err    error
}

// watchState tracks the last good record per descriptor path.
type watchState struct {
	mu       sync.Mutex
	records  map[string]domain.Record
	ignores  []string
	closed   bool
	onChange func(Change)
}

// Watch starts watching the roots, scans them, then reloads descriptors as their files
// change until ctx is cancelled. Every change is logged and, when onChange is non-nil,
// passed to it. Formatting-only edits that keep the fingerprint are not reported.
func (a *App) Watch(ctx context.Context, opts ScanOptions, onChange func(Change)) error {
	run, scanOpts, err := a.plan(opts)
	if err != nil {
		return err
	}

	w, err := a.watchers.NewWatcher(run.cfg.Ignore)
	if err != nil {
		return errors.Join(domain.ErrWatchFailed, err)
	}
	defer func() {
		if stopErr := w.Stop(); stopErr != nil {
			a.logger.Error(stopErr)
		}
	}()

	// Watching starts before the initial scan so files created in between queue an event.
	for _, root := range run.roots {
		if err := w.Start(ctx, root); err != nil {
			return zerr.With(errors.Join(domain.ErrWatchFailed, err), "root", root)
		}
	}

	if err := run.execute(ctx, a.scanner, scanOpts); err != nil {
		return err
	}

	state := &watchState{
		records:  make(map[string]domain.Record, len(run.result.Records)),
		ignores:  run.cfg.Ignore,
		onChange: onChange,
	}
	for _, rec := range run.result.Records {
		state.records[rec.Descriptor.Source] = rec
	}
	for _, failure := range run.result.Failures {
		a.logger.Error(failure.Err)
	}
	a.logger.Info(fmt.Sprintf("watching %d modules in %s", len(state.records), strings.Join(run.roots, ", ")))

	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		a.reload(ctx, state, paths)
	})

	for event := range w.Events() {
		if ctx.Err() != nil {
			break
		}
		debouncer.Add(event.Path)
	}

	debouncer.Flush()
	state.mu.Lock()
	state.closed = true
	state.mu.Unlock()
	return nil
}

func (a *App) reload(ctx context.Context, state *watchState, paths []string) {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.closed {
		return
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			for _, file := range a.scanner.Discover([]string{path}, state.ignores) {
				a.reloadFile(ctx, state, file)
			}
		case err == nil:
			if _, ok := a.codecs.ForPath(path); ok {
				a.reloadFile(ctx, state, path)
			}
		default:
			a.forget(state, path)
		}
	}
}

func (a *App) reloadFile(ctx context.Context, state *watchState, path string) {
	rec, err := a.scanner.LoadFile(ctx, path)
	if err != nil {
		a.logger.Error(err)
		state.emit(Change{Kind: ChangeFailed, Path: path, Err: err})
		return
	}

	prev, known := state.records[path]
	state.records[path] = rec
	switch {
	case !known:
		a.report(state, Change{Kind: ChangeAdded, Path: path, Record: rec})
	case prev.Fingerprint != rec.Fingerprint:
		a.report(state, Change{Kind: ChangeChanged, Path: path, Record: rec})
	}
}

// forget drops path and every tracked descriptor below it.
func (a *App) forget(state *watchState, path string) {
	prefix := path + string(filepath.Separator)
	var gone []string
	for tracked := range state.records {
		if tracked == path || strings.HasPrefix(tracked, prefix) {
			gone = append(gone, tracked)
		}
	}
	slices.Sort(gone)

	for _, tracked := range gone {
		rec := state.records[tracked]
		delete(state.records, tracked)
		a.report(state, Change{Kind: ChangeRemoved, Path: tracked, Record: rec})
	}
}

func (a *App) report(state *watchState, change Change) {
	icon := style.Tilde
	switch change.Kind {
	case ChangeAdded:
		icon = style.Plus
	case ChangeRemoved:
		icon = style.Minus
	}
	a.logger.Info(fmt.Sprintf("%s %s %s (%s)", icon, change.Kind, change.Record.Descriptor.Name, change.Path))
	state.emit(change)
}

func (s *watchState) emit(change Change) {
	if s.onChange != nil {
		s.onChange(change)
	}
}
