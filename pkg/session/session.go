// Package session saves the open tabs of a window so the next start can
// reopen them.
package session

import (
	"errors"
	"fmt"
	"os"

	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/pkg/tabs"
)

// Keys in the persisted store.
const (
	KeyRecentFiles = "recentFiles"
	KeySession     = "session"
	KeyGeometry    = "geometry"
)

// KV is the persisted key/value store. *store.Store implements it.
type KV interface {
	GetString(key string) (string, bool)
	GetStrings(key string) ([]string, bool)
	Set(key string, value interface{}) error
	Remove(keys ...string) error
}

// Entry is one saved tab: a file path, inline content for a never-saved
// tab, or both for a file with unsaved edits.
type Entry struct {
	FilePath string `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
	// Modified is true when Content holds unsaved text.
	Modified bool `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// IsInline reports whether the entry has no backing file.
func (e Entry) IsInline() bool {
	return e.FilePath == ""
}

// Snapshot is the saved state of one window.
type Snapshot struct {
	Entries  []Entry `json:"entries" yaml:"entries"`
	Geometry string  `json:"geometry,omitempty" yaml:"geometry,omitempty"`
}

// Take records the tabs of c in order. Empty unbound tabs are skipped.
// It never modifies c.
func Take(c *tabs.Collection, geometry string) Snapshot {
	snap := Snapshot{Geometry: geometry}
	for _, doc := range c.Documents() {
		switch {
		case doc.IsBound():
			e := Entry{FilePath: doc.Path()}
			if doc.IsModified() {
				e.Content = doc.Text()
				e.Modified = true
			}
			snap.Entries = append(snap.Entries, e)
		case !doc.IsEmpty():
			snap.Entries = append(snap.Entries, Entry{Content: doc.Text(), Modified: true})
		}
	}
	return snap
}

// Store reads and writes sessions and the recent files list.
type Store struct {
	kv  KV
	log pslog.Logger
}

// NewStore wraps kv. logger may be nil.
func NewStore(kv KV, logger pslog.Logger) *Store {
	return &Store{kv: kv, log: logger}
}

// Persist overwrites the stored session and geometry.
func (s *Store) Persist(snap Snapshot) error {
	raw, err := Encode(snap.Entries)
	if err != nil {
		return err
	}
	if err := s.kv.Set(KeySession, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if snap.Geometry == "" {
		if err := s.kv.Remove(KeyGeometry); err != nil {
			return fmt.Errorf("failed to persist geometry: %w", err)
		}
	} else if err := s.kv.Set(KeyGeometry, snap.Geometry); err != nil {
		return fmt.Errorf("failed to persist geometry: %w", err)
	}
	if s.log != nil {
		s.log.Info("session persisted", "tabs", len(snap.Entries))
	}
	return nil
}

// Restore returns the stored session. The bool is false when there is no
// usable session: the key is missing, holds the wrong type or does not
// decode. The geometry is returned either way.
func (s *Store) Restore() (Snapshot, bool) {
	var snap Snapshot
	if geometry, ok := s.kv.GetString(KeyGeometry); ok {
		snap.Geometry = geometry
	}

	raw, ok := s.kv.GetString(KeySession)
	if !ok {
		if s.log != nil {
			s.log.Debug("session restore miss")
		}
		return snap, false
	}
	entries, err := Decode(raw)
	if err != nil {
		if s.log != nil {
			s.log.Warn("session corrupt, ignoring", "err", err)
		}
		return snap, false
	}
	snap.Entries = entries
	return snap, true
}

// Clear removes the stored session and geometry.
func (s *Store) Clear() error {
	if err := s.kv.Remove(KeySession, KeyGeometry); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if s.log != nil {
		s.log.Info("session cleared")
	}
	return nil
}

// LoadRecent returns the stored recent files list. A missing or mistyped
// value reads as empty.
func (s *Store) LoadRecent() []string {
	paths, ok := s.kv.GetStrings(KeyRecentFiles)
	if !ok {
		return nil
	}
	return paths
}

// SaveRecent overwrites the stored recent files list.
func (s *Store) SaveRecent(paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	if err := s.kv.Set(KeyRecentFiles, paths); err != nil {
		return fmt.Errorf("failed to save recent files: %w", err)
	}
	return nil
}

// Rehydrate reopens the tabs of snap in c. File entries go through
// OpenOrFocus; inline entries become new unbound tabs. Entries that fail to
// open are skipped, their errors joined, and missing files are dropped from
// the recent list. A modified entry whose file cannot be read keeps its text
// in a new tab bound to the old path. It reports whether any tab was opened
// so the caller can fall back to a blank one.
func Rehydrate(snap Snapshot, c *tabs.Collection) (bool, error) {
	opened := false
	var errs []error
	for _, e := range snap.Entries {
		if e.IsInline() {
			if e.Content == "" {
				continue
			}
			if _, err := c.CreateTab("", e.Content); err != nil {
				errs = append(errs, err)
				continue
			}
			opened = true
			continue
		}

		index, err := c.OpenOrFocus(e.FilePath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && c.Recent() != nil {
				_ = c.Recent().Remove(e.FilePath)
			}
			errs = append(errs, err)
			if e.Modified && restoreUnsaved(c, e) {
				opened = true
			}
			continue
		}
		if e.Modified {
			if doc, err := c.Document(index); err == nil {
				doc.SetText(e.Content)
			}
		}
		opened = true
	}
	return opened, errors.Join(errs...)
}

func restoreUnsaved(c *tabs.Collection, e Entry) bool {
	index, err := c.CreateTab("", e.Content)
	if err != nil {
		return false
	}
	if doc, err := c.Document(index); err == nil {
		doc.BindPath(e.FilePath)
	}
	return true
}
