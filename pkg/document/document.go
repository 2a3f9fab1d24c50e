// Package document holds the in-memory text buffer behind a single editor tab.
package document

import (
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/tabpad/tabpad-cli/pkg/files"
)

// UntitledName is the display name of a document without a backing file.
const UntitledName = "Untitled"

// Selection is a byte range in the document text. An empty selection is a
// caret at End.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the selection is a bare caret.
func (s Selection) Empty() bool {
	return s.Start == s.End
}

// Document is a text buffer with an optional backing file. It is modified
// whenever its text differs from the last saved or loaded content.
type Document struct {
	text     string
	saved    string
	path     string
	modified bool
	sel      Selection
}

// New returns an empty, unbound, unmodified document.
func New() *Document {
	return &Document{}
}

// NewWithContent returns an unbound document holding content that has never
// been saved.
func NewWithContent(content string) *Document {
	d := &Document{}
	d.SetText(content)
	d.sel = Selection{}
	return d
}

// Load reads path into a new document bound to it.
func Load(fs afero.Fs, path string) (*Document, error) {
	content, err := files.ReadText(fs, path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return &Document{text: content, saved: content, path: path}, nil
}

// Reload replaces the document text with the current file content. The
// document is unchanged when the read fails.
func (d *Document) Reload(fs afero.Fs) error {
	if d.path == "" {
		return ErrNoPath
	}
	content, err := files.ReadText(fs, d.path)
	if err != nil {
		return &IOError{Op: "read", Path: d.path, Err: err}
	}
	d.text = content
	d.saved = content
	d.modified = false
	d.sel = d.clampSelection(d.sel)
	return nil
}

// Save writes the text to path, or to the bound path when path is empty.
// Saving to a new path binds the document to it. On failure the document
// stays modified and keeps its previous binding.
func (d *Document) Save(fs afero.Fs, path string) error {
	target := path
	if target == "" {
		target = d.path
	}
	if target == "" {
		return ErrNoPath
	}
	if err := files.WriteText(fs, target, d.text); err != nil {
		return &IOError{Op: "write", Path: target, Err: err}
	}
	d.path = target
	d.saved = d.text
	d.modified = false
	return nil
}

// BindPath associates the document with path without writing it.
func (d *Document) BindPath(path string) {
	d.path = path
}

func (d *Document) Text() string {
	return d.text
}

func (d *Document) Path() string {
	return d.path
}

// IsBound reports whether the document has a backing file.
func (d *Document) IsBound() bool {
	return d.path != ""
}

func (d *Document) IsModified() bool {
	return d.modified
}

// IsEmpty reports whether the document has no text.
func (d *Document) IsEmpty() bool {
	return d.text == ""
}

// IsBlank reports whether the document is empty and unbound, the state of a
// freshly created tab.
func (d *Document) IsBlank() bool {
	return d.text == "" && d.path == ""
}

// Len returns the text length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// DisplayName returns the base name of the backing file or "Untitled".
func (d *Document) DisplayName() string {
	return NameFor(d.path)
}

// NameFor returns the tab title for a document bound to path.
func NameFor(path string) string {
	if path == "" {
		return UntitledName
	}
	return filepath.Base(path)
}

// SetText replaces the whole text. The caret moves to the end of the text.
func (d *Document) SetText(text string) {
	d.text = text
	d.modified = d.text != d.saved
	d.sel = Selection{Start: len(text), End: len(text)}
}

// InsertAt inserts s at the byte offset pos, clamped to the text and moved
// back to a rune boundary. The caret ends after the inserted text.
func (d *Document) InsertAt(pos int, s string) {
	pos = d.clamp(pos)
	d.Replace(pos, pos, s)
}

// Replace substitutes the byte range [start, end) with s and leaves the caret
// after the inserted text.
func (d *Document) Replace(start, end int, s string) {
	start, end = d.clamp(start), d.clamp(end)
	if start > end {
		start, end = end, start
	}
	d.text = d.text[:start] + s + d.text[end:]
	d.modified = d.text != d.saved
	caret := start + len(s)
	d.sel = Selection{Start: caret, End: caret}
}

// Selection returns the current selection.
func (d *Document) Selection() Selection {
	return d.sel
}

// Select sets the selection to [start, end).
func (d *Document) Select(start, end int) {
	d.sel = d.clampSelection(Selection{Start: start, End: end})
}

// SetCursor collapses the selection to a caret at pos.
func (d *Document) SetCursor(pos int) {
	pos = d.clamp(pos)
	d.sel = Selection{Start: pos, End: pos}
}

// Cursor returns the caret position, the end of the selection.
func (d *Document) Cursor() int {
	return d.sel.End
}

// SelectedText returns the text covered by the selection.
func (d *Document) SelectedText() string {
	return d.text[d.sel.Start:d.sel.End]
}

func (d *Document) clampSelection(s Selection) Selection {
	s.Start, s.End = d.clamp(s.Start), d.clamp(s.End)
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

func (d *Document) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(d.text) {
		return len(d.text)
	}
	for pos > 0 && pos < len(d.text) && !utf8.RuneStart(d.text[pos]) {
		pos--
	}
	return pos
}
