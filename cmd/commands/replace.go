package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
	"github.com/tabpad/tabpad-cli/pkg/document"
	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/search"
)

var (
	replaceDryRun     bool
	replaceIgnoreCase bool
)

// NewReplaceCommand creates the replace command
func NewReplaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace <file> <query> <replacement>",
		Short: "Replace every occurrence of text in a file",
		Long: `Replace every occurrence of a query in a file and save it.

Matches are replaced in a single pass from the start of the file, so a
replacement that contains the query is never replaced again.

Examples:
  # Rename a word
  tabpad replace notes.txt colour color

  # Preview the count without writing
  tabpad replace notes.txt colour color --dry-run

  # Ignore case
  tabpad replace notes.txt todo DONE -i`,
		Args: cobra.ExactArgs(3),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFilePath(args[0]); err != nil {
				return err
			}
			return cli.ValidateQuery(args[1])
		},
		RunE: runReplace,
	}

	cmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "Count matches without writing the file")
	cmd.Flags().BoolVarP(&replaceIgnoreCase, "ignore-case", "i", false, "Ignore case when matching")

	return cmd
}

func runReplace(cmd *cobra.Command, args []string) error {
	path, query, replacement := args[0], args[1], args[2]
	fs := files.NewOSFs()

	doc, err := document.Load(fs, path)
	if err != nil {
		return err
	}

	if replaceDryRun {
		count := search.Count(doc.Text(), query, !replaceIgnoreCase)
		fmt.Fprintf(cmd.OutOrStdout(), "Would replace %d %s in %s\n", count, plural(count, "occurrence", "occurrences"), doc.DisplayName())
		return nil
	}

	count := search.ReplaceAll(doc, query, replacement, !replaceIgnoreCase)
	if count == 0 {
		cli.PrintInfo("No occurrences of %q in %s", query, doc.DisplayName())
		return nil
	}

	if err := doc.Save(fs, ""); err != nil {
		return err
	}
	cli.PrintSuccess("Replaced %d %s in %s", count, plural(count, "occurrence", "occurrences"), doc.DisplayName())
	return nil
}
