package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
	"github.com/tabpad/tabpad-cli/pkg/document"
	"github.com/tabpad/tabpad-cli/pkg/models"
	"github.com/tabpad/tabpad-cli/pkg/session"
	"github.com/tabpad/tabpad-cli/pkg/utils"
)

// SessionResult represents the output structure for session show
type SessionResult struct {
	Tabs     []SessionTab     `json:"tabs" yaml:"tabs"`
	Geometry *models.Geometry `json:"geometry,omitempty" yaml:"geometry,omitempty"`
	Count    int              `json:"count" yaml:"count"`
}

// SessionTab is one saved tab
type SessionTab struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Modified bool   `json:"modified" yaml:"modified"`
	Size     string `json:"size,omitempty" yaml:"size,omitempty"`
	Lines    int    `json:"lines,omitempty" yaml:"lines,omitempty"`
	Preview  string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// NewSessionCommand creates the session command
func NewSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the saved session",
		Long: `Inspect or clear the session saved when a window was last closed.

The session is restored the next time tabpad starts without file
arguments. Quitting the application clears it.

Examples:
  # Show the saved tabs
  tabpad session show

  # Show as YAML
  tabpad session show -o yaml

  # Forget the saved session
  tabpad session clear`,
	}

	cmd.AddCommand(newSessionShowCommand())
	cmd.AddCommand(newSessionClearCommand())

	return cmd
}

func newSessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved session",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(outputFormat)
		},
		RunE: runSessionShow,
	}
}

func newSessionClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE:  runSessionClear,
	}
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	cctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cctx.Close()

	sessions, err := cctx.Sessions()
	if err != nil {
		return err
	}

	snap, ok := sessions.Restore()
	var result SessionResult
	if ok {
		for _, e := range snap.Entries {
			tab := SessionTab{
				Name:     document.NameFor(e.FilePath),
				Path:     e.FilePath,
				Modified: e.Modified,
			}
			if e.Modified {
				stats := utils.CountStats(e.Content)
				tab.Size = cli.FormatBytes(stats.Bytes)
				tab.Lines = stats.Lines
				tab.Preview = cli.Preview(e.Content, 40)
			}
			result.Tabs = append(result.Tabs, tab)
		}
		result.Count = len(result.Tabs)
	}
	if snap.Geometry != "" {
		g := session.DecodeGeometry(snap.Geometry, models.Geometry{})
		result.Geometry = &g
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	w := cmd.OutOrStdout()
	if result.Count == 0 {
		fmt.Fprintln(w, "No saved session")
		return nil
	}

	table := cli.NewTableFormatter(w)
	table.Header("TAB", "STATE", "SIZE", "LINES", "PREVIEW")
	for _, tab := range result.Tabs {
		state := "clean"
		if tab.Modified {
			state = "modified"
		}
		lines := ""
		if tab.Modified {
			lines = utils.FormatCount(tab.Lines, "line")
		}
		table.Row(tab.Name, state, tab.Size, lines, tab.Preview)
	}
	table.Flush()

	if result.Geometry != nil {
		fmt.Fprintf(w, "\nWindow: %dx%d, zoom %d\n", result.Geometry.Width, result.Geometry.Height, result.Geometry.Zoom)
	}
	return nil
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	cctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cctx.Close()

	sessions, err := cctx.Sessions()
	if err != nil {
		return err
	}

	confirmed, err := cli.Confirm("Forget the saved session?", false)
	if err != nil {
		return err
	}
	if !confirmed {
		cli.PrintInfo("Cancelled")
		return nil
	}

	if err := sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	cli.PrintSuccess("Session cleared")
	return nil
}
