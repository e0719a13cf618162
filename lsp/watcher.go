package lsp

import (
	"os"
	"time"
)

// Watcher polls the workspace root and reparses markdown files that
// change on disk. Files open in the editor are skipped.
type Watcher struct {
	workspace *Workspace
	stopCh    chan struct{}
	interval  time.Duration
	modTimes  map[string]time.Time
}

func NewWatcher(w *Workspace, interval time.Duration) *Watcher {
	return &Watcher{
		workspace: w,
		stopCh:    make(chan struct{}),
		interval:  interval,
		modTimes:  make(map[string]time.Time),
	}
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) scan() {
	seen := make(map[string]bool)

	err := walkMarkdown(w.workspace.RootDir(), func(path string, info os.FileInfo) {
		seen[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return
		}
		w.modTimes[path] = info.ModTime()
		if w.workspace.IsOpen(path) {
			return
		}
		if err := w.workspace.ScanFile(path); err != nil {
			log.Warning("rescan", "path", path, "error", err)
		}
	})
	if err != nil {
		log.Error("watch", "root", w.workspace.RootDir(), "error", err)
	}

	for path := range w.modTimes {
		if !seen[path] {
			delete(w.modTimes, path)
			if !w.workspace.IsOpen(path) {
				w.workspace.RemoveFile(path)
			}
		}
	}
}
