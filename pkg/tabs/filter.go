package tabs

import (
	"path/filepath"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter returns the recent paths matching pattern fuzzily, best match
// first. Diacritics are ignored on both sides. An empty pattern returns the
// whole list.
func (r *RecentFiles) Filter(pattern string) []string {
	paths := r.Paths()
	if pattern == "" {
		return paths
	}

	targets := make([]string, len(paths))
	for i, p := range paths {
		targets[i] = normalize(filepath.Base(p))
	}

	matches := fuzzy.Find(normalize(pattern), targets)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, paths[m.Index])
	}
	return out
}

// normalize removes diacritics, "ö" becomes "o". Mn is the unicode class
// of nonspacing marks.
func normalize(in string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, in)
	if err != nil {
		return in
	}
	return out
}
