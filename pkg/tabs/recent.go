package tabs

import (
	"path/filepath"
	"sync"
)

// DefaultRecentLimit is the number of paths kept in the recent files list.
const DefaultRecentLimit = 10

// RecentStore persists the recent files list.
type RecentStore interface {
	LoadRecent() []string
	SaveRecent(paths []string) error
}

// RecentFiles tracks recently opened files, most recent first. The list is
// shared by every window, so each change re-reads the store before writing.
type RecentFiles struct {
	mu       sync.Mutex
	paths    []string
	maxFiles int
	store    RecentStore
}

// NewRecentFiles creates a recent files tracker backed by store, which may
// be nil for an in-memory list.
func NewRecentFiles(store RecentStore, maxFiles int) *RecentFiles {
	if maxFiles <= 0 {
		maxFiles = DefaultRecentLimit
	}
	r := &RecentFiles{
		paths:    make([]string, 0, maxFiles),
		maxFiles: maxFiles,
		store:    store,
	}
	r.refresh()
	return r
}

// Add moves path to the front of the list, inserting it if absent and
// dropping the oldest entry when the list is full.
func (r *RecentFiles) Add(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refresh()

	cleanPath := filepath.Clean(path)

	// Check if file already exists in list
	for i, p := range r.paths {
		if p == cleanPath {
			// Move to front if not already there
			if i > 0 {
				copy(r.paths[1:i+1], r.paths[0:i])
				r.paths[0] = cleanPath
			}
			return r.save()
		}
	}

	// Prepend to list
	r.paths = append([]string{cleanPath}, r.paths...)

	// Trim to max size
	if len(r.paths) > r.maxFiles {
		r.paths = r.paths[:r.maxFiles]
	}
	return r.save()
}

// Paths returns the list, most recent first.
func (r *RecentFiles) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// Len returns the number of entries.
func (r *RecentFiles) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// GetFileByNumber returns a file by its display number (1-indexed)
func (r *RecentFiles) GetFileByNumber(num int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if num < 1 || num > len(r.paths) {
		return "", false
	}
	return r.paths[num-1], true
}

// Remove drops path from the list.
func (r *RecentFiles) Remove(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refresh()

	cleanPath := filepath.Clean(path)
	for i, p := range r.paths {
		if p == cleanPath {
			r.paths = append(r.paths[:i], r.paths[i+1:]...)
			return r.save()
		}
	}
	return nil
}

// Clear removes all recent files
func (r *RecentFiles) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = make([]string, 0, r.maxFiles)
	return r.save()
}

// Reload re-reads the list from the store.
func (r *RecentFiles) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refresh()
}

func (r *RecentFiles) refresh() {
	if r.store == nil {
		return
	}
	paths := r.store.LoadRecent()
	if len(paths) > r.maxFiles {
		paths = paths[:r.maxFiles]
	}
	r.paths = append(make([]string, 0, r.maxFiles), paths...)
}

func (r *RecentFiles) save() error {
	if r.store == nil {
		return nil
	}
	return r.store.SaveRecent(append([]string(nil), r.paths...))
}
