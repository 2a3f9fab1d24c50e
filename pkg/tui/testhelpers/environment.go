package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

// TestEnvironment provides an in-memory filesystem for editor tests
type TestEnvironment struct {
	t   *testing.T
	Fs  afero.Fs
	Dir string
}

// NewTestEnvironment creates an environment rooted at /work on a MemMapFs
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/work", 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}
	return &TestEnvironment{t: t, Fs: fs, Dir: "/work"}
}

// NewOSTestEnvironment creates an environment on the real filesystem in a
// temporary directory, for code that needs fsnotify or real renames
func NewOSTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	return &TestEnvironment{t: t, Fs: afero.NewOsFs(), Dir: t.TempDir()}
}

// Path resolves name against the environment directory. Absolute names are
// returned as is.
func (e *TestEnvironment) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.Dir, name)
}

// WriteFile creates name with content and returns its path
func (e *TestEnvironment) WriteFile(name, content string) string {
	e.t.Helper()

	path := e.Path(name)
	if err := e.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(e.Fs, path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of name
func (e *TestEnvironment) ReadFile(name string) string {
	e.t.Helper()

	data, err := afero.ReadFile(e.Fs, e.Path(name))
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", e.Path(name), err)
	}
	return string(data)
}

// Exists reports whether name exists
func (e *TestEnvironment) Exists(name string) bool {
	ok, err := afero.Exists(e.Fs, e.Path(name))
	return err == nil && ok
}

// MustDocument loads name into a document bound to it
func (e *TestEnvironment) MustDocument(name string) *document.Document {
	e.t.Helper()

	doc, err := document.Load(e.Fs, e.Path(name))
	if err != nil {
		e.t.Fatalf("Failed to load %s: %v", e.Path(name), err)
	}
	return doc
}
