package pickit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchRequiresFile(t *testing.T) {
	th := startTestHost(t, "")
	if err := th.Watch(); err == nil {
		t.Error("expected error for an entry without a path")
	}
}

func TestWatchSchedulesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.star")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry, err := EntryFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	th := newTestHostEntry(t, entry, nil)
	if err := th.Start(t.Context()); err != nil {
		t.Fatal(err)
	}
	if err := th.Watch(); err != nil {
		t.Fatal(err)
	}
	defer th.Close()

	// Unrelated files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lib.star"), []byte("y = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !th.reload.Load() {
		if time.Now().After(deadline) {
			t.Fatal("no reload requested after a .star file changed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	th.frame(t, 0)
}
