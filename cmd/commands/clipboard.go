package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
	"github.com/tabpad/tabpad-cli/pkg/document"
	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/search"
)

var (
	clipboardFind       string
	clipboardIgnoreCase bool
)

// clipboardWrite is swapped in tests; CI machines have no clipboard.
var clipboardWrite = clipboard.WriteAll

// NewClipboardCommand creates the clipboard command
func NewClipboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipboard <file>",
		Short: "Copy a file, or the line of a match, to the clipboard",
		Long: `Copy the text of a file to the system clipboard.

With --find, only the line holding the first occurrence of the query is
copied.

Examples:
  # Copy a whole file
  tabpad clipboard notes.txt

  # Copy the line mentioning the deadline
  tabpad clipboard notes.txt --find deadline -i`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "copy"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateFilePath(args[0])
		},
		RunE: runClipboard,
	}

	cmd.Flags().StringVar(&clipboardFind, "find", "", "Copy only the line containing this text")
	cmd.Flags().BoolVarP(&clipboardIgnoreCase, "ignore-case", "i", false, "Ignore case when matching --find")

	return cmd
}

func runClipboard(cmd *cobra.Command, args []string) error {
	doc, err := document.Load(files.NewOSFs(), args[0])
	if err != nil {
		return err
	}

	content := doc.Text()
	what := doc.DisplayName()
	if clipboardFind != "" {
		res := search.Find(content, clipboardFind, 0, search.Options{CaseSensitive: !clipboardIgnoreCase})
		if !res.Found() {
			return fmt.Errorf("%q not found in %s", clipboardFind, doc.DisplayName())
		}
		line, _ := doc.PositionAt(res.Match.Start)
		content = lineAt(content, res.Match.Start)
		what = fmt.Sprintf("line %d of %s", line+1, doc.DisplayName())
	}

	if err := clipboardWrite(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Copied %s to clipboard (%s)", what, cli.FormatBytes(len(content)))
	return nil
}
