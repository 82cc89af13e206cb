package content

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// startWatcher watches root and every directory below it. Events only mark
// the store dirty; the next read does the rescan.
func (s *Store) startWatcher() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		w.Close()
		return err
	}
	s.watcher = w
	go s.watch(w)
	return nil
}

func (s *Store) watch(w *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			// New directories are not watched automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.Add(event.Name); err != nil {
					s.logger.Warn("watch directory", "dir", event.Name, "err", err)
				}
			}
			s.logger.Debug("content changed", "file", event.Name, "op", event.Op.String())
			s.dirty.Store(true)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			// Events may have been dropped.
			s.logger.Warn("watcher error", "err", err)
			s.dirty.Store(true)
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
