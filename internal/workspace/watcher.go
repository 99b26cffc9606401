// Package workspace watches the vault tree and reports folders and notes
// appearing or disappearing.
package workspace

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/fansub/internal/models"
	"github.com/starford/fansub/internal/storage"
)

// EventCallback is called for every observed node change.
// kind is "created" or "deleted".
type EventCallback func(kind string, node models.Node)

// Watch starts an fsnotify watcher on the vault root and reports node
// changes until ctx is cancelled. New directories are added to the watch
// list as they appear. Renames are reported as a deletion of the old path;
// the new path arrives as its own create event.
func Watch(ctx context.Context, vaultRoot string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dirs := make(map[string]struct{})
	// A removed directory is reported twice: by its parent and by itself.
	gone := make(map[string]struct{})
	if err := addDirsRecursive(w, vaultRoot, dirs, nil); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", vaultRoot))

	emit := func(kind string, node models.Node) {
		logger.Debug("watcher: "+kind, slog.String("path", node.Path), slog.String("kind", node.Kind.String()))
		if cb != nil {
			cb(kind, node)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			rel, relErr := filepath.Rel(vaultRoot, ev.Name)
			if relErr != nil || rel == "." || hiddenPath(rel) {
				continue
			}
			rel = filepath.ToSlash(rel)

			switch {
			case ev.Op&fsnotify.Create != 0:
				delete(gone, ev.Name)
				if isDir(ev.Name) {
					err := addDirsRecursive(w, ev.Name, dirs, func(p string, d fs.DirEntry) {
						r, _ := filepath.Rel(vaultRoot, p)
						if d.IsDir() {
							emit("created", models.Folder(filepath.ToSlash(r)))
						} else {
							emit("created", models.Document(filepath.ToSlash(r)))
						}
					})
					if err != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", rel),
							slog.String("error", err.Error()))
					}
					continue
				}
				emit("created", models.Document(rel))

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if _, ok := gone[ev.Name]; ok {
					continue
				}
				if _, ok := dirs[ev.Name]; ok {
					delete(dirs, ev.Name)
					gone[ev.Name] = struct{}{}
					emit("deleted", models.Folder(rel))
					continue
				}
				emit("deleted", models.Document(rel))
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its non-hidden subdirectories to the
// watcher. visit, when set, sees every entry below root.
func addDirsRecursive(w *fsnotify.Watcher, root string, dirs map[string]struct{}, visit func(string, fs.DirEntry)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && storage.Hidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if visit != nil {
			visit(path, d)
		}
		if d.IsDir() {
			dirs[path] = struct{}{}
			return w.Add(path)
		}
		return nil
	})
}

func hiddenPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if storage.Hidden(part) {
			return true
		}
	}
	return false
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
