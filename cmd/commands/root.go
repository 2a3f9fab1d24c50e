package commands

import (
	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
)

// AddGlobalFlags registers the flags shared by every command on root and
// wires them into the cli package before any command runs.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP("output", "o", "text", "Output format (text, json, yaml)")
	flags.String("config", "", "Config file (default is $XDG_CONFIG_HOME/tabpad/config.yaml)")
	flags.String("state", "", "State file holding the session and recent files")
	flags.BoolP("quiet", "q", false, "Suppress informational output")
	flags.Bool("no-color", false, "Disable symbols and color in output")
	flags.BoolP("yes", "y", false, "Answer yes to confirmation prompts")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		noColor, _ := cmd.Flags().GetBool("no-color")
		yes, _ := cmd.Flags().GetBool("yes")
		cli.SetGlobalFlags(quiet, noColor, yes)

		configPath, _ := cmd.Flags().GetString("config")
		statePath, _ := cmd.Flags().GetString("state")
		cli.SetPathFlags(configPath, statePath)
		return nil
	}
}

// AddCommands attaches every subcommand to root.
func AddCommands(root *cobra.Command) {
	root.AddCommand(
		NewRecentCommand(),
		NewSessionCommand(),
		NewFindCommand(),
		NewReplaceCommand(),
		NewClipboardCommand(),
		NewConfigCommand(),
	)
}
