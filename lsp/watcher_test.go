package lsp

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	base := time.Now().Add(-time.Hour)
	writeFile(t, path, "# One\n", base)

	ws := NewWorkspace(dir)
	w := NewWatcher(ws, time.Second)

	w.scan()
	info := ws.GetFile(path)
	if info == nil || string(info.Content) != "# One\n" {
		t.Fatalf("expected a.md to be picked up, got %+v", info)
	}

	writeFile(t, path, "# Two\n", base.Add(time.Minute))
	w.scan()
	if got := string(ws.GetFile(path).Content); got != "# Two\n" {
		t.Errorf("expected rescan after modification, got %q", got)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if ws.GetFile(path) != nil {
		t.Error("expected deleted file to be removed")
	}
}

func TestWatcherSkipsOpenFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	writeFile(t, path, "# Disk\n", time.Now().Add(-time.Hour))

	ws := NewWorkspace(dir)
	ws.SetOpen(path, true)
	ws.UpdateFile(path, []byte("# Buffer\n"))

	w := NewWatcher(ws, time.Second)
	w.scan()
	if got := string(ws.GetFile(path).Content); got != "# Buffer\n" {
		t.Errorf("watcher overwrote open buffer: %q", got)
	}

	ws.SetOpen(path, false)
	if ws.IsOpen(path) {
		t.Error("expected path to be closed")
	}
}

func TestWatcherStartStop(t *testing.T) {
	w := NewWatcher(NewWorkspace(t.TempDir()), 10*time.Millisecond)
	w.Start()
	w.Stop()
}
