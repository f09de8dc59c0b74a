package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a configuration file whenever its contents change. Each
// successful reload is delivered as a fresh Config on Changes; the previous value
// is never modified.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Changes chan Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	lastHash uint64
}

// NewWatcher watches the directory holding path. Editors that replace files
// atomically emit events on the directory, not the file.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Changes: make(chan Config, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		watcher.lastHash = xxh3.Hash(data)
	}

	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run reloads once the file has been quiet for reloadDebounce, so the last
// write of a burst is the one applied.
func (w *Watcher) run() {
	settle := time.NewTimer(reloadDebounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			settle.Reset(reloadDebounce)
		case <-settle.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.sendErr(err)
		return
	}

	sum := xxh3.Hash(data)
	if sum == w.lastHash {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.sendErr(err)
		return
	}
	w.lastHash = sum

	select {
	case w.Changes <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
