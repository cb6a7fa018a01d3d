package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce coalesces bursts of file events into a single re-run.
const watchDebounce = 100 * time.Millisecond

// Watch calls fn once, then again whenever a query file under paths is
// written, created or renamed, until ctx is done. An error from fn stops
// the watch and is returned.
//
// Directories are subscribed the way Collect sees them: ignored and hidden
// trees are skipped. Creating a directory triggers a rescan before the
// next run; a new directory that is still empty is watched directly.
func (r *Runner) Watch(ctx context.Context, paths []string, fn func(ctx context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	files := make(map[string]struct{})

	var roots []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			roots = append(roots, path)

			continue
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		files[abs] = struct{}{}

		// Editors often replace files, so watch the directory.
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	if err := r.addDirs(w, roots); err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		return err
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	created := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					r.logger.Debug("directory created", zap.String("dir", ev.Name))

					created[ev.Name] = struct{}{}

					timer.Reset(watchDebounce)

					continue
				}
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !r.watched(ev.Name, files) {
				continue
			}

			r.logger.Debug("file changed", zap.String("file", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			if err := r.warn(fmt.Errorf("watch: %w", err)); err != nil {
				return err
			}
		case <-timer.C:
			if len(created) > 0 {
				if err := r.rescan(w, roots, created); err != nil {
					return err
				}

				clear(created)
			}

			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}

// watched reports whether a changed path should trigger a re-run.
func (r *Runner) watched(name string, files map[string]struct{}) bool {
	if abs, err := filepath.Abs(name); err == nil {
		if _, ok := files[abs]; ok {
			return true
		}
	}

	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	return ext != "" && slices.Contains(r.extensions, ext)
}

// rescan subscribes directories that appeared since the last scan. Problems
// are passed to the handler rather than stopping the watch.
func (r *Runner) rescan(w *fsnotify.Watcher, roots []string, created map[string]struct{}) error {
	if err := r.addDirs(w, roots); err != nil {
		if err := r.warn(fmt.Errorf("watch: %w", err)); err != nil {
			return err
		}
	}

	for dir := range created {
		if strings.HasPrefix(filepath.Base(dir), ".") {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}

		if err := w.Add(dir); err != nil {
			if err := r.warn(fmt.Errorf("watch: %w", err)); err != nil {
				return err
			}
		}
	}

	return nil
}

// addDirs subscribes w to the watchDirs of every root.
func (r *Runner) addDirs(w *fsnotify.Watcher, roots []string) error {
	for _, root := range roots {
		dirs, err := r.watchDirs(root)
		if err != nil {
			return err
		}

		for _, dir := range dirs {
			if err := w.Add(dir); err != nil {
				return err
			}
		}
	}

	return nil
}

// watchDirs returns root and every directory between it and a file the
// walker does not ignore, sorted.
func (r *Runner) watchDirs(root string) ([]string, error) {
	root = filepath.Clean(root)
	seen := map[string]struct{}{root: {}}

	err := r.walkDir(root, nil, func(path string) {
		for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
			if _, ok := seen[dir]; ok || dir == filepath.Dir(dir) {
				return
			}

			seen[dir] = struct{}{}
		}
	})
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}

	slices.Sort(dirs)

	return dirs, nil
}
