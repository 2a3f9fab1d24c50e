package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"github.com/tabpad/tabpad-cli/pkg/files"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(afero.NewMemMapFs(), "/state/state.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(s.Keys()) != 0 {
		t.Errorf("Expected empty store, got keys %v", s.Keys())
	}
}

func TestSetPersistsAcrossOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/state/state.yaml"

	s, err := Open(fs, path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set("recentFiles", []string{"/a.txt", "/b.txt"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("session", `[{"filePath":"/a.txt"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(fs, path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	recent, ok := reopened.GetStrings("recentFiles")
	if !ok {
		t.Fatal("Expected recentFiles after reopen")
	}
	if !reflect.DeepEqual(recent, []string{"/a.txt", "/b.txt"}) {
		t.Errorf("Unexpected recentFiles %v", recent)
	}
	session, ok := reopened.GetString("session")
	if !ok || session != `[{"filePath":"/a.txt"}]` {
		t.Errorf("Unexpected session %q (ok=%v)", session, ok)
	}
}

func TestTypedGettersRejectMismatches(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "recentFiles: [\"/a.txt\", 3]\nsession: 42\ngeometry:\n  w: 1\n"
	if err := afero.WriteFile(fs, "/s.yaml", []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	s, err := Open(fs, "/s.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, ok := s.GetStrings("recentFiles"); ok {
		t.Error("Mixed list should be a type mismatch")
	}
	if _, ok := s.GetString("session"); ok {
		t.Error("Integer should not read as a string")
	}
	if _, ok := s.GetString("geometry"); ok {
		t.Error("Map should not read as a string")
	}
	if _, ok := s.GetString("absent"); ok {
		t.Error("Absent key should not be found")
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/s.yaml", []byte("recentFiles: [unclosed\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	s, err := Open(fs, "/s.yaml", nil)
	if err != nil {
		t.Fatalf("Open should tolerate a corrupt file: %v", err)
	}
	if len(s.Keys()) != 0 {
		t.Errorf("Expected empty store, got %v", s.Keys())
	}
}

func TestRemove(t *testing.T) {
	s, err := Open(afero.NewMemMapFs(), "/s.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = s.Set("session", "[]")
	_ = s.Set("geometry", "{}")
	_ = s.Set("recentFiles", []string{"/a"})

	if err := s.Remove("session", "geometry", "missing"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !reflect.DeepEqual(s.Keys(), []string{"recentFiles"}) {
		t.Errorf("Unexpected keys after remove: %v", s.Keys())
	}
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	s, err := Open(afero.NewMemMapFs(), "/s.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Set("k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}
}

func TestCloseWithoutWritesLeavesFileAlone(t *testing.T) {
	fs := afero.NewMemMapFs()

	reader, err := Open(fs, "/state/state.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if exists, _ := afero.Exists(fs, "/state/state.yaml"); exists {
		t.Fatal("Closing a read-only store created the state file")
	}

	reader, err = Open(fs, "/state/state.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	writer, err := Open(fs, "/state/state.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := writer.Set("recentFiles", []string{"/new.txt"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	check, err := Open(fs, "/state/state.yaml", nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	got, ok := check.GetStrings("recentFiles")
	if !ok || !reflect.DeepEqual(got, []string{"/new.txt"}) {
		t.Errorf("Newer write was clobbered, got %v (ok=%v)", got, ok)
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	fs := files.NewOSFs()
	path := filepath.Join(t.TempDir(), "state.yaml")

	a, err := Open(fs, path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	b, err := Open(fs, path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := a.Set("recentFiles", []string{"/x.txt"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := b.GetStrings("recentFiles"); ok {
		t.Fatal("Second store should not see the write before reload")
	}
	if err := b.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	got, ok := b.GetStrings("recentFiles")
	if !ok || !reflect.DeepEqual(got, []string{"/x.txt"}) {
		t.Errorf("Expected reloaded recentFiles, got %v (ok=%v)", got, ok)
	}
}
