package utils

import (
	"testing"
)

func TestCountStats(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected TextStats
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: TextStats{},
		},
		{
			name:     "Simple sentence",
			input:    "The quick brown fox",
			expected: TextStats{Lines: 1, Words: 4, Runes: 19, Bytes: 19},
		},
		{
			name:     "Trailing newline",
			input:    "one\ntwo\n",
			expected: TextStats{Lines: 2, Words: 2, Runes: 8, Bytes: 8},
		},
		{
			name:     "Blank lines and tabs",
			input:    "a\tb\n\n c",
			expected: TextStats{Lines: 3, Words: 3, Runes: 7, Bytes: 7},
		},
		{
			name:     "Multibyte",
			input:    "héllo wörld",
			expected: TextStats{Lines: 1, Words: 2, Runes: 11, Bytes: 13},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountStats(tt.input); got != tt.expected {
				t.Errorf("CountStats(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n        int
		unit     string
		expected string
	}{
		{1, "word", "1 word"},
		{0, "word", "0 words"},
		{999, "line", "999 lines"},
		{1500, "word", "1.5K words"},
		{25000, "word", "25K words"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.n, tt.unit); got != tt.expected {
			t.Errorf("FormatCount(%d, %q) = %q, want %q", tt.n, tt.unit, got, tt.expected)
		}
	}
}
