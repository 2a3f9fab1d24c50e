package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestReadWriteText(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/notes/todo.txt"

	if err := WriteText(fs, path, "buy milk\n"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	content, err := ReadText(fs, path)
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if content != "buy milk\n" {
		t.Errorf("Expected content %q, got %q", "buy milk\n", content)
	}

	// Overwrite keeps no temp files behind
	if err := WriteText(fs, path, "done"); err != nil {
		t.Fatalf("WriteText overwrite failed: %v", err)
	}
	entries, err := afero.ReadDir(fs, "/notes")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 file in directory, got %d", len(entries))
	}
}

func TestReadTextErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/bin.dat", []byte{0xff, 0xfe, 0x00}, 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tests := []struct {
		name  string
		path  string
		check func(error) bool
	}{
		{
			name:  "missing file",
			path:  "/missing.txt",
			check: func(err error) bool { return errors.Is(err, os.ErrNotExist) },
		},
		{
			name:  "invalid utf-8",
			path:  "/bin.dat",
			check: func(err error) bool { return errors.Is(err, ErrInvalidEncoding) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadText(fs, tt.path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !tt.check(err) {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestWriteTextRejectsDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/docs", 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := WriteText(fs, "/docs", "x"); err == nil {
		t.Error("Expected error writing over a directory")
	}
}

func TestWriteTextOnDisk(t *testing.T) {
	fs := NewOSFs()
	path := filepath.Join(t.TempDir(), "nested", "a.txt")

	if err := WriteText(fs, path, "hello"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Expected %q, got %q", "hello", string(data))
	}
}

func TestSamePath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "/tmp/a.txt", "/tmp/a.txt", true},
		{"unclean", "/tmp/x/../a.txt", "/tmp/a.txt", true},
		{"relative", "a.txt", filepath.Join(wd, "a.txt"), true},
		{"different", "/tmp/a.txt", "/tmp/b.txt", false},
		{"empty", "", "/tmp/a.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SamePath(tt.a, tt.b); got != tt.want {
				t.Errorf("SamePath(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
