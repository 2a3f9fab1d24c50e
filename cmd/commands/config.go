package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
	"github.com/tabpad/tabpad-cli/pkg/config"
	"github.com/tabpad/tabpad-cli/pkg/models"
)

var configForce bool

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tabpad configuration",
		Long: `Write or display the tabpad configuration.

Settings are read from the config file and can be overridden with
TABPAD_ environment variables, e.g. TABPAD_EDITOR_CASE_SENSITIVE=false.

Examples:
  # Write the default config file
  tabpad config init

  # Show the effective settings
  tabpad config show

  # Show as JSON
  tabpad config show -o json`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := cli.ResolveConfigPath()
	if err != nil {
		return fmt.Errorf("unable to resolve config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := config.Save(path, models.DefaultSettings()); err != nil {
		return err
	}
	cli.PrintSuccess("Wrote %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cctx.Close()

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "" || outputFormat == "text" {
		outputFormat = "yaml"
	}
	if err := cli.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	return cli.OutputResults(cmd.OutOrStdout(), outputFormat, cctx.Settings)
}
