package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
)

// RecentResult represents the output structure for the recent command
type RecentResult struct {
	Pattern string       `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Items   []RecentItem `json:"items" yaml:"items"`
	Count   int          `json:"count" yaml:"count"`
}

// RecentItem represents a single entry of the recent files list
type RecentItem struct {
	Number   int    `json:"number" yaml:"number"`
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Size     string `json:"size,omitempty" yaml:"size,omitempty"`
	Modified string `json:"modified,omitempty" yaml:"modified,omitempty"`
	Missing  bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

var (
	recentClear  bool
	recentRemove string
)

// NewRecentCommand creates the recent command
func NewRecentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent [pattern]",
		Short: "List recently opened files",
		Long: `List the most recently opened files, newest first.

The list is shared by every tabpad window. A pattern filters the list
fuzzily on file names, ignoring accents.

Examples:
  # List recent files
  tabpad recent

  # Only files whose name looks like "notes"
  tabpad recent notes

  # Output as JSON
  tabpad recent -o json

  # Forget one file
  tabpad recent --remove ~/todo.txt

  # Clear the list
  tabpad recent --clear`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if recentClear && recentRemove != "" {
				return fmt.Errorf("--clear and --remove cannot be used together")
			}
			outputFormat, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(outputFormat)
		},
		RunE: runRecent,
	}

	cmd.Flags().BoolVar(&recentClear, "clear", false, "Clear the recent files list")
	cmd.Flags().StringVar(&recentRemove, "remove", "", "Remove a file from the recent files list")

	return cmd
}

func runRecent(cmd *cobra.Command, args []string) error {
	cctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cctx.Close()

	recent, err := cctx.Recent()
	if err != nil {
		return err
	}

	if recentClear {
		confirmed, err := cli.Confirm(fmt.Sprintf("Clear %d recent files?", recent.Len()), false)
		if err != nil {
			return err
		}
		if !confirmed {
			cli.PrintInfo("Cancelled")
			return nil
		}
		if err := recent.Clear(); err != nil {
			return fmt.Errorf("failed to clear recent files: %w", err)
		}
		cli.PrintSuccess("Cleared recent files")
		return nil
	}

	if recentRemove != "" {
		path, err := filepath.Abs(recentRemove)
		if err != nil {
			return err
		}
		before := recent.Len()
		if err := recent.Remove(path); err != nil {
			return fmt.Errorf("failed to update recent files: %w", err)
		}
		if recent.Len() == before {
			return fmt.Errorf("%s is not in the recent files list", path)
		}
		cli.PrintSuccess("Removed %s", path)
		return nil
	}

	var result RecentResult
	if len(args) > 0 {
		result.Pattern = args[0]
	}

	all := recent.Paths()
	for _, path := range recent.Filter(result.Pattern) {
		result.Items = append(result.Items, recentItem(path, indexOf(all, path)+1))
	}
	result.Count = len(result.Items)

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputRecentText(cmd, result)
	}
}

func recentItem(path string, number int) RecentItem {
	item := RecentItem{
		Number: number,
		Name:   filepath.Base(path),
		Path:   path,
	}
	info, err := os.Stat(path)
	if err != nil {
		item.Missing = true
		return item
	}
	item.Size = cli.FormatBytes(int(info.Size()))
	item.Modified = humanize.Time(info.ModTime())
	return item
}

func outputRecentText(cmd *cobra.Command, result RecentResult) error {
	w := cmd.OutOrStdout()
	if result.Count == 0 {
		if result.Pattern != "" {
			fmt.Fprintf(w, "No recent files match %q\n", result.Pattern)
		} else {
			fmt.Fprintln(w, "No recent files")
		}
		return nil
	}

	table := cli.NewTableFormatter(w)
	table.Header("#", "NAME", "SIZE", "MODIFIED", "PATH")
	for _, item := range result.Items {
		size, modified := item.Size, item.Modified
		if item.Missing {
			size, modified = "-", "missing"
		}
		table.Row(fmt.Sprint(item.Number), cli.TruncateString(item.Name, 30), size, modified, item.Path)
	}
	table.Flush()
	return nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
