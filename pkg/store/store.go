// Package store is the persisted key/value settings store shared by every
// editor window. Values live in a single YAML file that is rewritten on every
// change.
package store

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/pkg/files"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("store is closed")

// Store is a YAML-backed key/value store safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	values map[string]interface{}
	closed bool
	dirty  bool
	log    pslog.Logger
}

// Open loads the store at path. A missing file yields an empty store. A file
// that cannot be parsed is logged and replaced on the next write.
func Open(fs afero.Fs, path string, logger pslog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is required")
	}
	if logger != nil {
		logger = logger.With("state_file", path)
	}
	s := &Store{
		fs:     fs,
		path:   path,
		values: map[string]interface{}{},
		log:    logger,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file, discarding in-memory values.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("store load miss")
			}
			s.values = map[string]interface{}{}
			s.dirty = false
			return nil
		}
		return fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	values := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		if s.log != nil {
			s.log.Warn("store corrupt, starting empty", "err", err)
		}
		s.values = map[string]interface{}{}
		s.dirty = false
		return nil
	}
	if values == nil {
		values = map[string]interface{}{}
	}
	s.values = values
	s.dirty = false
	if s.log != nil {
		s.log.Debug("store load ok", "keys", len(values))
	}
	return nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (s *Store) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetStrings returns the value under key when it is a list of strings.
// A list holding any non-string element is treated as a type mismatch.
func (s *Store) GetStrings(key string) ([]string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return nil, false
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	default:
		return nil, false
	}
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores value under key and writes the file, overwriting any prior
// value.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.values[key] = value
	s.dirty = true
	return s.flushLocked()
}

// Remove deletes keys and writes the file. Absent keys are ignored.
func (s *Store) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, k := range keys {
		delete(s.values, k)
	}
	s.dirty = true
	return s.flushLocked()
}

// Flush writes the current values to disk.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.flushLocked()
}

// Close writes any change that failed to reach disk and rejects further
// writes. A store that was only read leaves the file untouched. Closing
// twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	var err error
	if s.dirty {
		err = s.flushLocked()
	}
	s.closed = true
	return err
}

func (s *Store) flushLocked() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	if err := files.WriteText(s.fs, s.path, string(data)); err != nil {
		if s.log != nil {
			s.log.Warn("store flush failed", "err", err)
		}
		return fmt.Errorf("failed to save store: %w", err)
	}
	s.dirty = false
	return nil
}
