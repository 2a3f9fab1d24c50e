package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

const (
	AppName        = "tabpad"
	ConfigFileName = "config.yaml"
	StateFileName  = "state.yaml"
	LogFileName    = "tabpad.log"

	defaultFileMode = 0644
)

// ErrInvalidEncoding is returned when file content is not valid UTF-8.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// NewOSFs returns the filesystem used outside of tests.
func NewOSFs() afero.Fs {
	return afero.NewOsFs()
}

// ReadText reads path as UTF-8 text.
func ReadText(fs afero.Fs, path string) (string, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", ErrInvalidEncoding
	}
	return string(content), nil
}

// WriteText replaces the content of path. The new content is written to a
// temporary file next to the target and renamed over it, so a failed write
// never truncates the original.
func WriteText(fs afero.Fs, path string, text string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	mode := os.FileMode(defaultFileMode)
	if info, err := fs.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("path is a directory, expected file: %s", path)
		}
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := fs.Chmod(tmpName, mode); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName) // Clean up temp file
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// ExpandPath expands a leading ~ and returns a clean absolute path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("unable to expand %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("unable to resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// SamePath reports whether a and b name the same file after expansion.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	ea, errA := ExpandPath(a)
	eb, errB := ExpandPath(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return ea == eb
}

// DefaultConfigPath returns the XDG location of the config file.
func DefaultConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(AppName, ConfigFileName))
}

// DefaultStatePath returns the XDG location of the persisted editor state.
func DefaultStatePath() (string, error) {
	return xdg.DataFile(filepath.Join(AppName, StateFileName))
}

// DefaultLogPath returns the XDG location of the log file used while the
// TUI owns the terminal.
func DefaultLogPath() (string, error) {
	return xdg.DataFile(filepath.Join(AppName, LogFileName))
}
