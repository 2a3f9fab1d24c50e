package search

import (
	"strings"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

// Target is an editable text with a selection. *document.Document
// implements it.
type Target interface {
	Text() string
	Selection() document.Selection
	Select(start, end int)
	SetCursor(pos int)
	Replace(start, end int, s string)
}

// FindIn runs Find over t and selects the match.
func FindIn(t Target, query string, from int, opts Options) Result {
	res := Find(t.Text(), query, from, opts)
	if res.Found() {
		t.Select(res.Match.Start, res.Match.End)
	}
	return res
}

// ReplaceResult describes what Replace did.
type ReplaceResult struct {
	// Replaced is true when the selection matched and was substituted.
	Replaced bool
	// Next is the find performed instead when the selection did not match.
	Next Result
}

// Replace substitutes the current selection with replacement when the
// selection is exactly one occurrence of query, leaving the caret after the
// inserted text. Otherwise it selects the next occurrence in opts.Direction
// and replaces nothing.
func Replace(t Target, query, replacement string, opts Options) ReplaceResult {
	if query == "" {
		return ReplaceResult{}
	}
	sel := t.Selection()
	text := t.Text()
	if !sel.Empty() && newMatcher(query, opts.CaseSensitive).equal(text[sel.Start:sel.End]) {
		t.Replace(sel.Start, sel.End, replacement)
		return ReplaceResult{Replaced: true}
	}

	from := sel.End
	if opts.Direction == Backward {
		from = sel.Start
	}
	return ReplaceResult{Next: FindIn(t, query, from, opts)}
}

// ReplaceAll substitutes every non-overlapping occurrence of query in one
// forward pass from the start of the text, without wrapping, and returns the
// number of substitutions. Scanning resumes after each inserted replacement
// so a replacement containing query is never rescanned.
func ReplaceAll(t Target, query, replacement string, caseSensitive bool) int {
	if query == "" {
		return 0
	}
	text := t.Text()
	m := newMatcher(query, caseSensitive)

	var b strings.Builder
	count := 0
	pos := 0
	caret := 0
	for pos <= len(text) {
		start, end := m.first(text[pos:])
		if start < 0 {
			break
		}
		b.WriteString(text[pos : pos+start])
		b.WriteString(replacement)
		caret = b.Len()
		pos += end
		count++
	}
	if count == 0 {
		return 0
	}
	b.WriteString(text[pos:])

	t.Replace(0, len(text), b.String())
	t.SetCursor(caret)
	return count
}
