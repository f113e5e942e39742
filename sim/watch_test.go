package sim

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "sim.yaml")
	if err := os.WriteFile(path, []byte("gravity_y: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Fatalf("event for %q, want %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for config write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error watching a missing directory")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
