package search

// State is the per-window search session. It remembers the last query so
// find-next and find-previous can run without a new one.
type State struct {
	LastQuery     string
	CaseSensitive bool
}

// NewState returns an empty search session.
func NewState(caseSensitive bool) *State {
	return &State{CaseSensitive: caseSensitive}
}

// Active reports whether a query has been entered.
func (s *State) Active() bool {
	return s.LastQuery != ""
}

// Find starts a new search for query from the start of the text,
// regardless of the current caret.
func (s *State) Find(t Target, query string) Result {
	s.LastQuery = query
	return FindIn(t, query, 0, s.options(Forward))
}

// FindNext continues forward from the end of the current selection.
func (s *State) FindNext(t Target) Result {
	if !s.Active() {
		return Result{}
	}
	return FindIn(t, s.LastQuery, t.Selection().End, s.options(Forward))
}

// FindPrevious continues backward from the start of the current selection.
func (s *State) FindPrevious(t Target) Result {
	if !s.Active() {
		return Result{}
	}
	return FindIn(t, s.LastQuery, t.Selection().Start, s.options(Backward))
}

// Replace replaces the selected occurrence of the last query, or finds the
// next one.
func (s *State) Replace(t Target, replacement string) ReplaceResult {
	if !s.Active() {
		return ReplaceResult{}
	}
	return Replace(t, s.LastQuery, replacement, s.options(Forward))
}

// ReplaceAll replaces every occurrence of the last query.
func (s *State) ReplaceAll(t Target, replacement string) int {
	if !s.Active() {
		return 0
	}
	return ReplaceAll(t, s.LastQuery, replacement, s.CaseSensitive)
}

func (s *State) options(dir Direction) Options {
	return Options{Direction: dir, CaseSensitive: s.CaseSensitive}
}
