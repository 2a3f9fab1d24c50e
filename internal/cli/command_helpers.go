package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/pkg/config"
	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/models"
	"github.com/tabpad/tabpad-cli/pkg/session"
	"github.com/tabpad/tabpad-cli/pkg/store"
	"github.com/tabpad/tabpad-cli/pkg/tabs"
)

// CommandContext carries the loaded settings and the lazily opened state
// store for a single command run.
type CommandContext struct {
	Settings  *models.Settings
	StatePath string
	Fs        afero.Fs
	Logger    pslog.Logger

	store *store.Store
}

// ResolveConfigPath returns the --config override, or the default config
// location.
func ResolveConfigPath() (string, error) {
	if configPath == "" {
		return files.DefaultConfigPath()
	}
	return files.ExpandPath(configPath)
}

// NewCommandContext loads settings using the global path flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	state := statePath
	if state == "" {
		state, err = config.StatePath(settings)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve state file: %w", err)
		}
	} else if state, err = files.ExpandPath(state); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &CommandContext{
		Settings:  settings,
		StatePath: state,
		Fs:        files.NewOSFs(),
		Logger:    pslog.Ctx(ctx),
	}, nil
}

// Store opens the state store on first use.
func (c *CommandContext) Store() (*store.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	s, err := store.Open(c.Fs, c.StatePath, c.Logger)
	if err != nil {
		return nil, err
	}
	c.store = s
	return s, nil
}

// Sessions returns the session store over the state store.
func (c *CommandContext) Sessions() (*session.Store, error) {
	s, err := c.Store()
	if err != nil {
		return nil, err
	}
	return session.NewStore(s, c.Logger), nil
}

// Recent returns the recent files list backed by the state store.
func (c *CommandContext) Recent() (*tabs.RecentFiles, error) {
	sessions, err := c.Sessions()
	if err != nil {
		return nil, err
	}
	return tabs.NewRecentFiles(sessions, c.Settings.Editor.RecentLimit), nil
}

// Close releases the state store if it was opened.
func (c *CommandContext) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	if errors.Is(err, store.ErrClosed) {
		return nil
	}
	return err
}
