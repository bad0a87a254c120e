package bundle

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads a disk bundle whenever one of its files changes, until ctx is
// canceled. onReload, if not nil, is called after every reload attempt with
// its result. Embedded and in-memory bundles never change, so Watch is a no-op
// for them.
func (b *Bundle) Watch(ctx context.Context, onReload func(error)) error {
	if b.source != SourceDisk || b.root == "" {
		slog.Debug("Bundle is not on disk, skipping watcher setup", "source", b.source)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}

	// fsnotify is not recursive; add every directory of the bundle.
	err = filepath.WalkDir(b.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch bundle directory: %w", err)
	}

	slog.Info("Watching bundle for changes", "path", b.root)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				slog.Debug("Bundle watcher stopped", "path", b.root)
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				if event.Has(fsnotify.Create) {
					// New subdirectories need their own watch.
					if info, err := b.statOS(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}

				err := b.Reload()
				if err != nil {
					slog.Warn("Bundle reload failed, keeping previous manifest", "file", event.Name, "error", err)
				} else {
					slog.Debug("Bundle reloaded", "file", event.Name, "op", event.Op.String())
				}
				if onReload != nil {
					onReload(err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Bundle watcher error", "error", err)
			}
		}
	}()

	return nil
}

// statOS stats an absolute path reported by fsnotify through the bundle filesystem.
func (b *Bundle) statOS(name string) (fs.FileInfo, error) {
	rel, err := filepath.Rel(b.root, name)
	if err != nil {
		return nil, err
	}
	return b.fs.Stat(filepath.ToSlash(rel))
}
