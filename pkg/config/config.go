// Package config loads tabpad settings from a YAML file and TABPAD_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/models"
)

// EnvPrefix is the prefix of environment overrides, e.g. TABPAD_LOG_LEVEL.
const EnvPrefix = "TABPAD"

// Load reads configuration from path. If path is empty, uses
// files.DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (*models.Settings, error) {
	if path == "" {
		defaultPath, err := files.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to resolve config path: %w", err)
		}
		path = defaultPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("unable to expand config path: %w", err)
	}

	def := models.DefaultSettings()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("editor.case_sensitive", def.Editor.CaseSensitive)
	v.SetDefault("editor.show_line_numbers", def.Editor.ShowLineNumbers)
	v.SetDefault("editor.recent_limit", def.Editor.RecentLimit)
	v.SetDefault("session.restore", def.Session.Restore)
	v.SetDefault("session.state_file", def.Session.StateFile)
	v.SetDefault("ui.zoom", def.UI.Zoom)
	v.SetDefault("ui.show_status_bar", def.UI.ShowStatusBar)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var settings models.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := Validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks settings against their field constraints.
func Validate(settings *models.Settings) error {
	validate := validator.New()
	if err := validate.Struct(settings); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// Save writes settings to path as YAML.
func Save(path string, settings *models.Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// StatePath returns the state file from settings, falling back to the XDG
// data location.
func StatePath(settings *models.Settings) (string, error) {
	if settings.Session.StateFile != "" {
		return files.ExpandPath(settings.Session.StateFile)
	}
	return files.DefaultStatePath()
}
