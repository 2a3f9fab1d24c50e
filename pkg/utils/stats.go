package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextStats summarises a document's text for display
type TextStats struct {
	Lines int
	Words int
	Runes int
	Bytes int
}

// CountStats counts lines, words and characters in text. An empty text
// has zero lines; a trailing newline does not start a new line.
func CountStats(text string) TextStats {
	stats := TextStats{
		Bytes: len(text),
		Runes: utf8.RuneCountInString(text),
		Words: len(strings.FieldsFunc(text, unicode.IsSpace)),
	}
	if text != "" {
		stats.Lines = strings.Count(text, "\n") + 1
		if strings.HasSuffix(text, "\n") {
			stats.Lines--
		}
	}
	return stats
}

// FormatCount formats a count with its unit, shortening large numbers
func FormatCount(n int, unit string) string {
	if n != 1 && !strings.HasSuffix(unit, "s") {
		unit += "s"
	}
	if n < 1000 {
		return fmt.Sprintf("%d %s", n, unit)
	} else if n < 10000 {
		return fmt.Sprintf("%.1fK %s", float64(n)/1000, unit)
	} else {
		return fmt.Sprintf("%.0fK %s", float64(n)/1000, unit)
	}
}
