package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabpad/tabpad-cli/internal/cli"
	"github.com/tabpad/tabpad-cli/pkg/document"
	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/search"
)

// FindResult represents the output structure for the find command
type FindResult struct {
	File    string       `json:"file" yaml:"file"`
	Query   string       `json:"query" yaml:"query"`
	Status  string       `json:"status" yaml:"status"`
	Total   int          `json:"total" yaml:"total"`
	Match   *FoundMatch  `json:"match,omitempty" yaml:"match,omitempty"`
	Matches []FoundMatch `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// FoundMatch locates a match both as byte offsets and as a 1-based line
// and column.
type FoundMatch struct {
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text" yaml:"text"`
	// Wrapped is set on matches reached after running off the end (or the
	// start, backward).
	Wrapped bool `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
}

var (
	findBackward   bool
	findIgnoreCase bool
	findFrom       int
	findAll        bool
)

// NewFindCommand creates the find command
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <file> <query>",
		Short: "Find text in a file",
		Long: `Find the next occurrence of a query in a file, the way the editor's
find bar does. The search starts at a byte offset and wraps around the
end (or the start, when searching backward) if nothing follows.

Examples:
  # First occurrence
  tabpad find notes.txt TODO

  # Continue after offset 120
  tabpad find notes.txt TODO --from 120

  # Search backward from the end, ignoring case
  tabpad find notes.txt todo --backward --ignore-case

  # Every match in search order, marking where the search wraps
  tabpad find notes.txt TODO --from 120 --all

  # Output as JSON
  tabpad find notes.txt TODO -o json`,
		Args:    cobra.ExactArgs(2),
		Aliases: []string{"search"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateFilePath(args[0]); err != nil {
				return err
			}
			if err := cli.ValidateQuery(args[1]); err != nil {
				return err
			}
			outputFormat, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(outputFormat)
		},
		RunE: runFind,
	}

	cmd.Flags().BoolVarP(&findBackward, "backward", "b", false, "Search toward the start of the file")
	cmd.Flags().BoolVarP(&findIgnoreCase, "ignore-case", "i", false, "Ignore case when matching")
	cmd.Flags().BoolVarP(&findAll, "all", "a", false, "List every match in search order")
	cmd.Flags().IntVar(&findFrom, "from", -1, "Byte offset to start from (default: start, or end when searching backward)")

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	path, query := args[0], args[1]

	doc, err := document.Load(files.NewOSFs(), path)
	if err != nil {
		return err
	}

	opts := search.Options{CaseSensitive: !findIgnoreCase}
	from := findFrom
	if findBackward {
		opts.Direction = search.Backward
		if from < 0 {
			from = doc.Len()
		}
	} else if from < 0 {
		from = 0
	}
	if from > doc.Len() {
		cli.PrintWarning("offset %d is past the end of %s, searching from %d", from, doc.DisplayName(), doc.Len())
		from = doc.Len()
	}

	res := search.Find(doc.Text(), query, from, opts)
	result := FindResult{
		File:   doc.Path(),
		Query:  query,
		Status: res.Status.String(),
		Total:  search.Count(doc.Text(), query, opts.CaseSensitive),
	}
	if res.Found() {
		m := newFoundMatch(doc, res)
		result.Match = &m
	}
	if findAll {
		result.Matches = allMatches(doc, query, from, opts, result.Total)
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	w := cmd.OutOrStdout()
	if result.Match == nil {
		fmt.Fprintf(w, "%q not found in %s\n", query, doc.DisplayName())
		return nil
	}

	if findAll {
		for i, m := range result.Matches {
			if m.Wrapped && (i == 0 || !result.Matches[i-1].Wrapped) {
				fmt.Fprintln(w, "-- wrapped --")
			}
			fmt.Fprintf(w, "%s:%d:%d: %s\n", doc.DisplayName(), m.Line, m.Column, cli.Preview(lineAt(doc.Text(), m.Start), 80))
		}
		fmt.Fprintf(w, "%d %s in file\n", result.Total, plural(result.Total, "match", "matches"))
		return nil
	}

	m := result.Match
	fmt.Fprintf(w, "%s:%d:%d: %s\n", doc.DisplayName(), m.Line, m.Column, cli.Preview(lineAt(doc.Text(), m.Start), 80))
	if res.Status == search.Wrapped {
		cli.PrintInfo("Search wrapped around")
	}
	fmt.Fprintf(w, "%d %s in file, match at bytes %d-%d\n", result.Total, plural(result.Total, "match", "matches"), m.Start, m.End)
	return nil
}

func newFoundMatch(doc *document.Document, res search.Result) FoundMatch {
	line, col := doc.PositionAt(res.Match.Start)
	return FoundMatch{
		Start:   res.Match.Start,
		End:     res.Match.End,
		Line:    line + 1,
		Column:  col + 1,
		Text:    doc.Text()[res.Match.Start:res.Match.End],
		Wrapped: res.Status == search.Wrapped,
	}
}

// allMatches walks the text the way repeated find-next presses would,
// visiting each of the total matches once.
func allMatches(doc *document.Document, query string, from int, opts search.Options, total int) []FoundMatch {
	matches := make([]FoundMatch, 0, total)
	wrapped := false
	pos := from
	for i := 0; i < total; i++ {
		res := search.Find(doc.Text(), query, pos, opts)
		if !res.Found() {
			break
		}
		if res.Status == search.Wrapped {
			wrapped = true
		}
		m := newFoundMatch(doc, res)
		m.Wrapped = wrapped
		matches = append(matches, m)
		if opts.Direction == search.Backward {
			pos = res.Match.Start
		} else {
			pos = res.Match.End
		}
	}
	return matches
}

// lineAt returns the full line of text containing offset.
func lineAt(text string, offset int) string {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : offset+end]
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
