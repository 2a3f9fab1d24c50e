// Package search implements find and replace over a document's text.
//
// Positions are byte offsets. Forward searches that run off the end of the
// text retry once from the start and report Wrapped; backward searches
// retry once from the end.
package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Direction is the scan direction of a find.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Status is the outcome of a find.
type Status int

const (
	NotFound Status = iota
	Found
	Wrapped
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Wrapped:
		return "wrapped"
	default:
		return "not found"
	}
}

// Options control a single find.
type Options struct {
	Direction     Direction
	CaseSensitive bool
}

// Match is the byte range [Start, End) of an occurrence.
type Match struct {
	Start int
	End   int
}

// Result is returned by every find. Match is only meaningful when Status is
// not NotFound.
type Result struct {
	Match  Match
	Status Status
}

// Found reports whether a match was located, wrapped or not.
func (r Result) Found() bool {
	return r.Status != NotFound
}

// Find looks for query in text starting at from. A forward match must start
// at or after from; a backward match must end at or before from.
func Find(text, query string, from int, opts Options) Result {
	if query == "" {
		return Result{}
	}
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		from = len(text)
	}

	m := newMatcher(query, opts.CaseSensitive)

	if opts.Direction == Backward {
		if start, end := m.last(text[:from]); start >= 0 {
			return Result{Match: Match{start, end}, Status: Found}
		}
		if from == len(text) {
			return Result{}
		}
		if start, end := m.last(text); start >= 0 {
			return Result{Match: Match{start, end}, Status: Wrapped}
		}
		return Result{}
	}

	if start, end := m.first(text[from:]); start >= 0 {
		return Result{Match: Match{from + start, from + end}, Status: Found}
	}
	if from == 0 {
		return Result{}
	}
	if start, end := m.first(text); start >= 0 {
		return Result{Match: Match{start, end}, Status: Wrapped}
	}
	return Result{}
}

// Count returns the number of non-overlapping occurrences of query.
func Count(text, query string, caseSensitive bool) int {
	if query == "" {
		return 0
	}
	m := newMatcher(query, caseSensitive)
	n := 0
	for pos := 0; pos <= len(text); {
		start, end := m.first(text[pos:])
		if start < 0 {
			break
		}
		n++
		pos += end
	}
	return n
}

type matcher interface {
	// first returns the first occurrence in s, or -1.
	first(s string) (int, int)
	// last returns the occurrence in s with the greatest start, or -1.
	last(s string) (int, int)
	// equal reports whether s is exactly one occurrence.
	equal(s string) bool
}

func newMatcher(query string, caseSensitive bool) matcher {
	if caseSensitive {
		return exactMatcher(query)
	}
	return foldMatcher{
		query: query,
		re:    regexp.MustCompile("(?i)" + regexp.QuoteMeta(query)),
	}
}

type exactMatcher string

func (q exactMatcher) first(s string) (int, int) {
	i := strings.Index(s, string(q))
	if i < 0 {
		return -1, -1
	}
	return i, i + len(q)
}

func (q exactMatcher) last(s string) (int, int) {
	i := strings.LastIndex(s, string(q))
	if i < 0 {
		return -1, -1
	}
	return i, i + len(q)
}

func (q exactMatcher) equal(s string) bool {
	return s == string(q)
}

// foldMatcher matches with Unicode case folding. Folded matches may differ
// in byte length from the query.
type foldMatcher struct {
	query string
	re    *regexp.Regexp
}

func (f foldMatcher) first(s string) (int, int) {
	loc := f.re.FindStringIndex(s)
	if loc == nil {
		return -1, -1
	}
	return loc[0], loc[1]
}

func (f foldMatcher) last(s string) (int, int) {
	start, end := -1, -1
	for off := 0; off < len(s); {
		loc := f.re.FindStringIndex(s[off:])
		if loc == nil {
			break
		}
		start, end = off+loc[0], off+loc[1]
		_, size := utf8.DecodeRuneInString(s[start:])
		off = start + size
	}
	return start, end
}

func (f foldMatcher) equal(s string) bool {
	loc := f.re.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}
