package testhelpers

import (
	"github.com/spf13/afero"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

// DocumentBuilder builds documents in a given state
type DocumentBuilder struct {
	text     string
	path     string
	modified bool
	sel      *document.Selection
}

// NewDocumentBuilder starts a clean, unbound, empty document
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{}
}

// WithText sets the text. The document stays clean unless Modified is called.
func (b *DocumentBuilder) WithText(text string) *DocumentBuilder {
	b.text = text
	return b
}

// WithPath binds the document to path
func (b *DocumentBuilder) WithPath(path string) *DocumentBuilder {
	b.path = path
	return b
}

// Modified marks the document as having unsaved changes
func (b *DocumentBuilder) Modified() *DocumentBuilder {
	b.modified = true
	return b
}

// WithSelection selects [start, end)
func (b *DocumentBuilder) WithSelection(start, end int) *DocumentBuilder {
	b.sel = &document.Selection{Start: start, End: end}
	return b
}

// Build creates the document. An unbound document with text is always
// modified, since its text was never saved anywhere.
func (b *DocumentBuilder) Build() *document.Document {
	var doc *document.Document
	switch {
	case b.path == "" && b.text == "":
		doc = document.New()
	case b.path == "":
		doc = document.NewWithContent(b.text)
	default:
		saved := b.text
		if b.modified {
			saved = ""
		}
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, b.path, []byte(saved), 0644); err != nil {
			panic(err)
		}
		loaded, err := document.Load(fs, b.path)
		if err != nil {
			panic(err)
		}
		doc = loaded
		if b.modified {
			doc.SetText(b.text)
		}
	}

	if b.sel != nil {
		doc.Select(b.sel.Start, b.sel.End)
	} else {
		doc.SetCursor(0)
	}
	return doc
}
