package config

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports changes to YAML and PNG files below an assets directory.
// Events carries paths relative to that directory, slash separated, so they
// can be matched against fs.FS names.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches root and each of its subdirectories.
func NewWatcher(root string, subdirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{root}
	for _, sub := range subdirs {
		dirs = append(dirs, filepath.Join(root, sub))
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		root:    root,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher goroutine and releases the fsnotify watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll returns the changed paths received since the last call without
// blocking.
func (w *Watcher) Poll() []string {
	var changed []string
	for {
		select {
		case name := <-w.Events:
			changed = append(changed, name)
		default:
			return changed
		}
	}
}

// run reports a file once no new event for it arrived within debounce, so
// the last of several quick writes is the one that gets reloaded.
func (w *Watcher) run() {
	pending := make(map[string]time.Time)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isAssetFile(event.Name) {
				continue
			}
			name := event.Name
			if rel, err := filepath.Rel(w.root, event.Name); err == nil {
				name = filepath.ToSlash(rel)
			}
			pending[name] = time.Now().Add(debounce)
			timer.Reset(debounce)

		case <-timer.C:
			now := time.Now()
			var next time.Duration
			for _, name := range slices.Sorted(maps.Keys(pending)) {
				due := pending[name]
				if wait := due.Sub(now); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isAssetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".png":
		return true
	}
	return false
}
