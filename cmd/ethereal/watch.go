package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pacer/ethereal/internal/script"
)

// watchPaths calls 'rerun' once per burst of changes to the watched scripts,
// until 'ctx' is done.
// Files are watched through their parent directory, so that editors replacing
// a file on save keep being tracked.
func watchPaths(ctx context.Context, paths []string, debounce time.Duration, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	explicitFiles := make(map[string]bool)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		if !info.IsDir() {
			explicitFiles[filepath.Clean(path)] = true
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return err
			}
			continue
		}

		if err := addDirectoryTree(watcher, path); err != nil {
			return err
		}
	}

	isRelevant := func(name string) bool {
		return explicitFiles[filepath.Clean(name)] ||
			script.HasFileExtension(name, []string{script.FileExtension})
	}

	onCreate := func(name string) {
		info, err := os.Stat(name)
		if err != nil || !info.IsDir() {
			return
		}

		if err := addDirectoryTree(watcher, name); err != nil {
			slog.Warn("unable to watch new directory", slog.String("dir", name), slog.String("error", err.Error()))
		}
	}

	slog.Info("watching for changes", slog.Any("paths", paths), slog.Duration("debounce", debounce))

	return watchLoop(ctx, watcher.Events, watcher.Errors, debounce, isRelevant, onCreate, rerun)
}

// watchLoop debounces 'events': 'rerun' fires once no relevant event arrived for 'debounce'.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	isRelevant func(name string) bool,
	onCreate func(name string),
	rerun func(),
) error {
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}

			if ev.Has(fsnotify.Create) && onCreate != nil {
				onCreate(ev.Name)
			}

			if ev.Op == fsnotify.Chmod || !isRelevant(ev.Name) {
				continue
			}

			slog.Debug("file changed", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			fire = time.After(debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}

			slog.Warn("watcher error", slog.String("error", err.Error()))

		case <-fire:
			fire = nil
			rerun()
		}
	}
}

func addDirectoryTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		return watcher.Add(path)
	})
}
