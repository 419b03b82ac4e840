// Package watcher reports changes to task data files.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dmboucher/go-gantt-chart/internal/util"
	"github.com/fsnotify/fsnotify"
)

// Event is a change to one watched file.
type Event struct {
	Path      string
	Operation string
}

// Removed reports whether the file went away. Editors that save by rename
// produce a remove followed by a create.
func (e Event) Removed() bool {
	return e.Operation == fsnotify.Remove.String() || e.Operation == fsnotify.Rename.String()
}

// FileWatcher watches the directories holding a set of files and forwards
// events for those files only.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	events  chan Event
	done    chan struct{}

	closeOnce sync.Once
}

// NewFileWatcher starts watching files.
func NewFileWatcher(files []string) (*FileWatcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: w,
		files:   make(map[string]struct{}, len(files)),
		events:  make(chan Event, 100),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		fw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := fw.files[abs]; !watched {
				continue
			}
			if event.Op == fsnotify.Chmod {
				continue
			}

			select {
			case fw.events <- Event{Path: abs, Operation: event.Op.String()}:
			case <-fw.done:
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events delivers changes until Close; the channel is then closed.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}
