package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tabpad/tabpad-cli/pkg/models"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := models.DefaultSettings()
	if settings.Editor.RecentLimit != def.Editor.RecentLimit {
		t.Errorf("Expected recent limit %d, got %d", def.Editor.RecentLimit, settings.Editor.RecentLimit)
	}
	if !settings.Editor.CaseSensitive {
		t.Error("Expected case-sensitive search by default")
	}
	if !settings.Session.Restore {
		t.Error("Expected session restore by default")
	}
	if settings.Log.Level != "info" {
		t.Errorf("Expected log level info, got %q", settings.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `editor:
  case_sensitive: false
  recent_limit: 5
session:
  restore: false
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Editor.CaseSensitive {
		t.Error("Expected case_sensitive false from file")
	}
	if settings.Editor.RecentLimit != 5 {
		t.Errorf("Expected recent_limit 5, got %d", settings.Editor.RecentLimit)
	}
	if settings.Session.Restore {
		t.Error("Expected restore false from file")
	}
	if !settings.Editor.ShowLineNumbers {
		t.Error("Unset keys should keep defaults")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TABPAD_LOG_LEVEL", "error")
	settings, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if settings.Log.Level != "error" {
		t.Errorf("Expected env override, got %q", settings.Log.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"recent limit too small", "editor:\n  recent_limit: 0\n"},
		{"zoom out of range", "ui:\n  zoom: 40\n"},
		{"unknown log level", "log:\n  level: chatty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), "validation") {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor: [\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	settings := models.DefaultSettings()
	settings.UI.Zoom = 3
	settings.Editor.CaseSensitive = false

	if err := Save(path, settings); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.UI.Zoom != 3 || loaded.Editor.CaseSensitive {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}

func TestStatePath(t *testing.T) {
	settings := models.DefaultSettings()
	settings.Session.StateFile = "/var/tmp/tabpad/state.yaml"
	got, err := StatePath(settings)
	if err != nil {
		t.Fatalf("StatePath failed: %v", err)
	}
	if got != "/var/tmp/tabpad/state.yaml" {
		t.Errorf("Expected configured path, got %q", got)
	}
}
