package project

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write before reloading.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a project file whenever it changes on disk.
// The directory is watched rather than the file so editors that save by rename still trigger.
type Watcher struct {
	path    string
	fw      *fsnotify.Watcher
	trigger func(func())
	onLoad  func(*Project, error)
	done    chan struct{}
}

// Watch starts watching path. onLoad runs on the watcher goroutine after each debounced change;
// it must not touch viewer state directly.
func Watch(path string, delay time.Duration, onLoad func(*Project, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if delay <= 0 {
		delay = DefaultDebounce
	}
	w := &Watcher{
		path:    abs,
		fw:      fw,
		trigger: debounce.New(delay),
		onLoad:  onLoad,
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.trigger(w.reload)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("project watcher", "path", w.path, "err", err)
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if w.onLoad != nil {
		w.onLoad(p, err)
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
