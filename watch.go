package pickit

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watcher requests a reload whenever a script file under the entry
// directory changes.
type watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the entry directory. Changes to .star files, and to
// the entry itself, schedule a reload for the next frame.
func (h *Host) Watch() error {
	dir := h.scriptDir()
	if dir == "" {
		return fmt.Errorf("pickit: entry has no file to watch")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("pickit: watch: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("pickit: watch %s: %w", dir, err)
	}
	w := &watcher{fs: fw, done: make(chan struct{})}
	entry := filepath.Clean(h.entry.Path)
	go w.loop(func(name string) bool {
		return filepath.Clean(name) == entry || strings.EqualFold(filepath.Ext(name), ".star")
	}, h.RequestReload)
	h.watcher = w
	logInfo("watching for changes", "dir", dir)
	return nil
}

func (w *watcher) loop(relevant func(string) bool, reload func()) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !relevant(ev.Name) {
				continue
			}
			logDebug("change detected", "file", ev.Name, "op", ev.Op.String())
			reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logWarn("watch error", "err", err)
		}
	}
}

func (w *watcher) close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
