package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	return Change{}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w, err := New(20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("two"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	c := waitChange(t, w)
	if c.Path != path {
		t.Errorf("Expected change for %s, got %s", path, c.Path)
	}
	if c.Removed {
		t.Error("File still exists, should not be reported removed")
	}
}

func TestWatcherIgnoresUnwatchedSiblings(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	_ = os.WriteFile(watched, []byte("x"), 0644)

	w, err := New(20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()
	if err := w.Add(watched); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_ = os.WriteFile(other, []byte("y"), 0644)
	select {
	case c := <-w.Changes():
		t.Fatalf("Unexpected change %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	_ = os.WriteFile(path, []byte("x"), 0644)

	w, err := New(20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if c := waitChange(t, w); !c.Removed {
		t.Errorf("Expected removal, got %+v", c)
	}
}

func TestAddRemoveBookkeeping(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	w, err := New(0, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	_ = w.Add(a)
	_ = w.Add(a)
	_ = w.Add(b)
	if !w.Watched(a) || !w.Watched(b) {
		t.Fatal("Expected both files watched")
	}
	w.Remove(a)
	if w.Watched(a) {
		t.Error("a should no longer be watched")
	}
	if w.dirs[dir] != 1 {
		t.Errorf("Expected directory refcount 1, got %d", w.dirs[dir])
	}
}

func TestCloseTwice(t *testing.T) {
	w, err := New(0, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
	if _, ok := w.Next(); ok {
		t.Error("Next after close should report false")
	}
}
