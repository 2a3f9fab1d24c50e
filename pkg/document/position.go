package document

import (
	"strings"
	"unicode/utf8"
)

// PositionAt converts a byte offset to a zero-based line and rune column.
func (d *Document) PositionAt(offset int) (line, col int) {
	offset = d.clamp(offset)
	head := d.text[:offset]
	line = strings.Count(head, "\n")
	lineStart := strings.LastIndexByte(head, '\n') + 1
	col = utf8.RuneCountInString(head[lineStart:])
	return line, col
}

// OffsetAt converts a zero-based line and rune column to a byte offset.
// Out of range lines and columns are clamped.
func (d *Document) OffsetAt(line, col int) int {
	if line < 0 {
		return 0
	}
	offset := 0
	for i := 0; i < line; i++ {
		next := strings.IndexByte(d.text[offset:], '\n')
		if next < 0 {
			return len(d.text)
		}
		offset += next + 1
	}

	end := strings.IndexByte(d.text[offset:], '\n')
	if end < 0 {
		end = len(d.text) - offset
	}
	lineText := d.text[offset : offset+end]
	for i := range lineText {
		if col <= 0 {
			return offset + i
		}
		col--
	}
	return offset + len(lineText)
}
