package prefabs

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const scriptDebounce = 100 * time.Millisecond

// ScriptWatcher reports edits to scripts on disk by script name.
type ScriptWatcher struct {
	watcher *fsnotify.Watcher
	Changes chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchScripts watches dir, normally prefabs/scripts.
func WatchScripts(dir string) (*ScriptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}

	sw := &ScriptWatcher{
		watcher: w,
		Changes: make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

func (w *ScriptWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *ScriptWatcher) run() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.done)
	}()

	// Edited names are reported together once the directory has been quiet
	// for scriptDebounce.
	pending := make(map[string]struct{})
	settle := time.NewTimer(scriptDebounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isScriptFile(event.Name) {
				continue
			}
			pending[strings.TrimSuffix(filepath.Base(event.Name), filepath.Ext(event.Name))] = struct{}{}
			settle.Reset(scriptDebounce)
		case <-settle.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			sort.Strings(names)
			clear(pending)
			for _, name := range names {
				select {
				case w.Changes <- name:
				case <-w.closeCh:
					return
				}
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

func isScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
