package policy

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a policy file whenever it is rewritten on disk
type Watcher struct {
	loader  *Loader
	path    string
	watcher *fsnotify.Watcher

	// OnReload is called after each reload attempt with the result or
	// the error the loader returned
	OnReload func(result *LoadResult, err error)
}

// NewWatcher creates a watcher for a policy file. The file must exist
// when the watcher is created.
func NewWatcher(loader *Loader, path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsWatcher.Add(path); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", path, err)
	}

	return &Watcher{
		loader:  loader,
		path:    path,
		watcher: fsWatcher,
	}, nil
}

// Watch blocks, reloading the policy on every write to the file, until
// stop is closed or the underlying watcher fails.
func (w *Watcher) Watch(stop <-chan struct{}) error {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				result, err := w.loader.LoadFromFile(w.path)
				if w.OnReload != nil {
					w.OnReload(result, err)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		case <-stop:
			return nil
		}
	}
}

// Close releases the underlying file watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
