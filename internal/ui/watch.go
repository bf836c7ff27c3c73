package ui

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events an editor save produces.
const debounce = 150 * time.Millisecond

type fileChangedMsg struct {
	path string
}

type watchErrMsg struct {
	err error
}

// watcher reports changes to a fixed set of files. Parent directories are
// watched so files replaced by rename are still seen.
type watcher struct {
	fw    *fsnotify.Watcher
	files map[string]bool
}

func newWatcher(paths []string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fw: fw, files: make(map[string]bool)}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.fw.Close()
}

func (w *watcher) relevant(ev fsnotify.Event) bool {
	if !w.files[filepath.Clean(ev.Name)] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// waitForChange blocks until a watched file changes, then drains further
// events for the debounce period.
func waitForChange(w *watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fw.Events:
				if !ok {
					return nil
				}
				if !w.relevant(ev) {
					continue
				}
				settle := time.After(debounce)
				for {
					select {
					case _, ok := <-w.fw.Events:
						if !ok {
							return fileChangedMsg{path: ev.Name}
						}
					case <-settle:
						return fileChangedMsg{path: ev.Name}
					}
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}
