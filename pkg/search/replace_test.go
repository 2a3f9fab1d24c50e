package search

import (
	"testing"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

func TestReplaceAllScenario(t *testing.T) {
	d := document.NewWithContent("abcXYZabc")

	count := ReplaceAll(d, "abc", "Q", true)
	if count != 2 {
		t.Errorf("Expected 2 replacements, got %d", count)
	}
	if d.Text() != "QXYZQ" {
		t.Errorf("Expected QXYZQ, got %q", d.Text())
	}
}

func TestReplaceAllReplacementContainsQuery(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		query       string
		replacement string
		want        string
		count       int
	}{
		{"wraps query", "a.a.a", "a", "[a]", "[a].[a].[a]", 3},
		{"doubles query", "xx", "x", "xx", "xxxx", 2},
		{"removes", "a-b-c", "-", "", "abc", 2},
		{"no matches", "abc", "z", "y", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := document.NewWithContent(tt.text)
			count := ReplaceAll(d, tt.query, tt.replacement, true)
			if count != tt.count {
				t.Errorf("Expected count %d, got %d", tt.count, count)
			}
			if d.Text() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, d.Text())
			}
		})
	}
}

func TestReplaceAllCountMatchesOccurrences(t *testing.T) {
	texts := []string{"", "abc", "abcabcabc", "ab abc bc abcc", "aaaaa"}
	for _, text := range texts {
		for _, q := range []string{"abc", "a", "aa", "bc"} {
			want := Count(text, q, true)
			d := document.NewWithContent(text)
			got := ReplaceAll(d, q, "#", true)
			if got != want {
				t.Errorf("ReplaceAll(%q, %q) = %d, want %d", text, q, got, want)
			}
			if Count(d.Text(), q, true) != 0 {
				t.Errorf("ReplaceAll(%q, %q) left occurrences in %q", text, q, d.Text())
			}
		}
	}
}

func TestReplaceAllUnmodifiedWhenNothingMatches(t *testing.T) {
	d := document.New()
	d.BindPath("/tmp/x.txt")
	if ReplaceAll(d, "x", "y", true) != 0 {
		t.Fatal("Expected no replacements")
	}
	if d.IsModified() {
		t.Error("Document should stay clean when nothing matches")
	}
}

func TestReplaceSelectedMatch(t *testing.T) {
	d := document.NewWithContent("foo bar foo")
	d.Select(8, 11)

	res := Replace(d, "foo", "baz", Options{CaseSensitive: true})
	if !res.Replaced {
		t.Fatal("Expected replacement of the selected match")
	}
	if d.Text() != "foo bar baz" {
		t.Errorf("Expected %q, got %q", "foo bar baz", d.Text())
	}
	if sel := d.Selection(); !sel.Empty() || sel.End != 11 {
		t.Errorf("Expected caret after replacement at 11, got %+v", sel)
	}
}

func TestReplaceFallsBackToFind(t *testing.T) {
	d := document.NewWithContent("foo bar foo")
	d.SetCursor(1)

	res := Replace(d, "foo", "baz", Options{CaseSensitive: true})
	if res.Replaced {
		t.Fatal("Replace must not substitute when the selection does not match")
	}
	if res.Next.Status != Found || res.Next.Match != (Match{8, 11}) {
		t.Errorf("Expected to find next occurrence at 8..11, got %+v", res.Next)
	}
	if d.Text() != "foo bar foo" {
		t.Errorf("Text should be untouched, got %q", d.Text())
	}
	if d.SelectedText() != "foo" {
		t.Errorf("Expected next occurrence selected, got %q", d.SelectedText())
	}

	// Second call replaces the now-selected occurrence
	if !Replace(d, "foo", "baz", Options{CaseSensitive: true}).Replaced {
		t.Error("Expected replacement on second call")
	}
}
