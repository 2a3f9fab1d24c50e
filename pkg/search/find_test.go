package search

import (
	"strings"
	"testing"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		query  string
		from   int
		opts   Options
		want   Match
		status Status
	}{
		{
			name:   "forward from start",
			text:   "one two one",
			query:  "one",
			from:   0,
			opts:   Options{CaseSensitive: true},
			want:   Match{0, 3},
			status: Found,
		},
		{
			name:   "forward continues after cursor",
			text:   "one two one",
			query:  "one",
			from:   3,
			opts:   Options{CaseSensitive: true},
			want:   Match{8, 11},
			status: Found,
		},
		{
			name:   "forward wraps to start",
			text:   "target and more text",
			query:  "target",
			from:   20,
			opts:   Options{CaseSensitive: true},
			want:   Match{0, 6},
			status: Wrapped,
		},
		{
			name:   "backward before cursor",
			text:   "one two one",
			query:  "one",
			from:   8,
			opts:   Options{Direction: Backward, CaseSensitive: true},
			want:   Match{0, 3},
			status: Found,
		},
		{
			name:   "backward wraps to end",
			text:   "xx one two one",
			query:  "one",
			from:   2,
			opts:   Options{Direction: Backward, CaseSensitive: true},
			want:   Match{11, 14},
			status: Wrapped,
		},
		{
			name:   "case sensitive miss",
			text:   "Hello",
			query:  "hello",
			opts:   Options{CaseSensitive: true},
			status: NotFound,
		},
		{
			name:   "case insensitive hit",
			text:   "say Hello",
			query:  "hello",
			opts:   Options{},
			want:   Match{4, 9},
			status: Found,
		},
		{
			name:   "case insensitive backward",
			text:   "ABC abc Abc",
			query:  "abc",
			from:   11,
			opts:   Options{Direction: Backward},
			want:   Match{8, 11},
			status: Found,
		},
		{
			name:   "not found anywhere",
			text:   "abc",
			query:  "zzz",
			from:   2,
			opts:   Options{CaseSensitive: true},
			status: NotFound,
		},
		{
			name:   "empty query",
			text:   "abc",
			query:  "",
			opts:   Options{CaseSensitive: true},
			status: NotFound,
		},
		{
			name:   "cursor beyond text is clamped",
			text:   "abc",
			query:  "b",
			from:   99,
			opts:   Options{CaseSensitive: true},
			want:   Match{1, 2},
			status: Wrapped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Find(tt.text, tt.query, tt.from, tt.opts)
			if got.Status != tt.status {
				t.Fatalf("Expected status %v, got %v", tt.status, got.Status)
			}
			if got.Found() && got.Match != tt.want {
				t.Errorf("Expected match %+v, got %+v", tt.want, got.Match)
			}
		})
	}
}

func TestFindNextNeverRepeatsUnlessSingleOccurrence(t *testing.T) {
	texts := []string{
		"a b a b a",
		"needle",
		"needle haystack",
		"xxneedlexxneedlexx",
		"ab ab ab ab",
	}
	queries := []string{"a", "needle", "ab", "b"}

	for _, text := range texts {
		for _, q := range queries {
			first := Find(text, q, 0, Options{CaseSensitive: true})
			if !first.Found() {
				continue
			}
			second := Find(text, q, first.Match.End, Options{CaseSensitive: true})
			if !second.Found() {
				t.Fatalf("%q in %q: second find lost the occurrence", q, text)
			}
			if second.Match == first.Match {
				if Count(text, q, true) != 1 || second.Status != Wrapped {
					t.Errorf("%q in %q: repeated %+v without a single wrapped occurrence", q, text, first.Match)
				}
			}
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		text, query string
		caseSens    bool
		want        int
	}{
		{"abcXYZabc", "abc", true, 2},
		{"aaaa", "aa", true, 2},
		{"ABCabc", "abc", false, 2},
		{"ABCabc", "abc", true, 1},
		{"", "abc", true, 0},
		{"abc", "", true, 0},
	}
	for _, tt := range tests {
		if got := Count(tt.text, tt.query, tt.caseSens); got != tt.want {
			t.Errorf("Count(%q, %q) = %d, want %d", tt.text, tt.query, got, tt.want)
		}
	}
}

func TestFindUnicode(t *testing.T) {
	text := "café CAFÉ café"
	res := Find(text, "café", len("café"), Options{})
	if res.Status != Found {
		t.Fatalf("Expected found, got %v", res.Status)
	}
	if got := text[res.Match.Start:res.Match.End]; !strings.EqualFold(got, "café") {
		t.Errorf("Unexpected match %q", got)
	}
}
