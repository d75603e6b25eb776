package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a config file's directory for changes and reports them
// on Changed, coalesced into one signal per burst of fs events (editors
// often emit write+rename pairs for a single save).
type Watcher struct {
	w       *fsnotify.Watcher
	path    string
	Changed chan struct{}
}

// Watch starts watching path's directory. fsnotify watches directories
// rather than individual files so it keeps working across the
// remove-and-recreate pattern editors use when saving.
func Watch(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	cw := &Watcher{w: w, path: path, Changed: make(chan struct{}, 1)}
	go cw.run()
	return cw, nil
}

func (cw *Watcher) run() {
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(cw.path) {
				continue
			}
			select {
			case cw.Changed <- struct{}{}:
			default:
			}
		case _, ok := <-cw.w.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (cw *Watcher) Close() error {
	return cw.w.Close()
}
