package tabs

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

type memRecentStore struct {
	paths []string
	err   error
	saves int
}

func (m *memRecentStore) LoadRecent() []string {
	return append([]string(nil), m.paths...)
}

func (m *memRecentStore) SaveRecent(paths []string) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.paths = append([]string(nil), paths...)
	return nil
}

func TestRecentFiles_AddFile(t *testing.T) {
	r := NewRecentFiles(nil, 0)

	// Add a file
	if err := r.Add("/path/to/file1.go"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if r.Len() != 1 {
		t.Errorf("Expected 1 recent file, got %d", r.Len())
	}
	if got, _ := r.GetFileByNumber(1); got != "/path/to/file1.go" {
		t.Errorf("Expected path '/path/to/file1.go', got '%s'", got)
	}
}

func TestRecentFiles_AddDuplicateFile(t *testing.T) {
	r := NewRecentFiles(nil, 0)

	_ = r.Add("/path/to/file1.go")
	_ = r.Add("/path/to/file2.go")
	_ = r.Add("/path/to/file1.go") // Duplicate

	want := []string{"/path/to/file1.go", "/path/to/file2.go"}
	if got := r.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRecentFiles_EvictsOldest(t *testing.T) {
	store := &memRecentStore{}
	r := NewRecentFiles(store, DefaultRecentLimit)

	for i := 0; i < 10; i++ {
		_ = r.Add(fmt.Sprintf("/f%d.txt", i))
	}
	before := r.Paths()
	if len(before) != 10 {
		t.Fatalf("Expected 10 entries, got %d", len(before))
	}
	oldest := before[9]

	if err := r.Add("/new.txt"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	after := r.Paths()
	if len(after) != 10 {
		t.Errorf("Expected 10 entries after eviction, got %d", len(after))
	}
	if after[0] != "/new.txt" {
		t.Errorf("Expected new path at index 0, got %q", after[0])
	}
	for _, p := range after {
		if p == oldest {
			t.Errorf("Oldest entry %q should have been evicted", oldest)
		}
	}
	if !reflect.DeepEqual(store.paths, after) {
		t.Errorf("Store not updated: %v", store.paths)
	}
}

func TestRecentFiles_RereadsStoreBeforeWriting(t *testing.T) {
	store := &memRecentStore{paths: []string{"/a.txt"}}
	r := NewRecentFiles(store, 3)

	// Another window wrote to the store in the meantime
	store.paths = []string{"/b.txt", "/a.txt"}

	_ = r.Add("/c.txt")
	want := []string{"/c.txt", "/b.txt", "/a.txt"}
	if got := r.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRecentFiles_RemoveAndClear(t *testing.T) {
	store := &memRecentStore{}
	r := NewRecentFiles(store, 0)
	_ = r.Add("/a.txt")
	_ = r.Add("/b.txt")

	if err := r.Remove("/a.txt"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := r.Paths(); !reflect.DeepEqual(got, []string{"/b.txt"}) {
		t.Errorf("Unexpected paths after remove: %v", got)
	}

	if err := r.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if r.Len() != 0 || len(store.paths) != 0 {
		t.Errorf("Expected empty list after clear, got %v / %v", r.Paths(), store.paths)
	}
}

func TestRecentFiles_StoreError(t *testing.T) {
	store := &memRecentStore{err: errors.New("disk full")}
	r := NewRecentFiles(store, 0)
	if err := r.Add("/a.txt"); err == nil {
		t.Error("Expected store error to be returned")
	}
}

func TestRecentFiles_GetFileByNumber(t *testing.T) {
	r := NewRecentFiles(nil, 0)
	_ = r.Add("/a.txt")

	if _, ok := r.GetFileByNumber(0); ok {
		t.Error("Number 0 should be invalid")
	}
	if _, ok := r.GetFileByNumber(2); ok {
		t.Error("Number past the end should be invalid")
	}
}

func TestRecentFiles_Filter(t *testing.T) {
	r := NewRecentFiles(nil, 0)
	_ = r.Add("/notes/groceries.txt")
	_ = r.Add("/notes/résumé.md")
	_ = r.Add("/src/main.go")

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"/src/main.go", "/notes/résumé.md", "/notes/groceries.txt"}},
		{"resume", []string{"/notes/résumé.md"}},
		{"gro", []string{"/notes/groceries.txt"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := r.Filter(tt.pattern)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}
