package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

// Editor shows one document in a textarea. Edits made in the textarea are
// copied back into the document; changes made to the document directly
// (replace, paste) are pushed with Refresh.
type Editor struct {
	textarea textarea.Model
	doc      *document.Document
}

// NewEditor creates an editor pane.
func NewEditor(showLineNumbers bool) *Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = showLineNumbers
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.KeyMap.Paste.SetEnabled(false)
	ta.SetWidth(80)
	ta.SetHeight(20)
	ta.Focus()
	return &Editor{textarea: ta}
}

// Attach shows doc and places the caret at its selection end.
func (e *Editor) Attach(doc *document.Document) {
	e.doc = doc
	if doc == nil {
		e.textarea.Reset()
		return
	}
	e.Refresh()
}

// Document returns the attached document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Refresh reloads the textarea from the attached document.
func (e *Editor) Refresh() {
	if e.doc == nil {
		return
	}
	sel := e.doc.Selection()
	e.textarea.SetValue(e.doc.Text())
	e.moveTo(sel.End)
	// SetValue does not touch the document, keep its selection.
	e.doc.Select(sel.Start, sel.End)
}

// Reveal moves the caret to the end of the document's selection without
// changing it.
func (e *Editor) Reveal() {
	if e.doc == nil {
		return
	}
	e.moveTo(e.doc.Selection().End)
}

// Update forwards msg to the textarea and syncs the document.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	if e.doc == nil {
		return nil
	}
	before := e.textarea.Value()
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	e.sync(before)
	return cmd
}

// sync copies textarea edits into the document. A pure caret move keeps a
// selection that ends at the caret, otherwise it collapses to the caret.
func (e *Editor) sync(before string) {
	after := e.textarea.Value()
	if after != before {
		e.doc.SetText(after)
		e.doc.SetCursor(e.cursorOffset())
		return
	}
	offset := e.cursorOffset()
	if offset != e.doc.Selection().End {
		e.doc.SetCursor(offset)
	}
}

// Cursor returns the caret as a zero-based line and rune column.
func (e *Editor) Cursor() (line, col int) {
	li := e.textarea.LineInfo()
	return e.textarea.Line(), li.StartColumn + li.ColumnOffset
}

func (e *Editor) cursorOffset() int {
	line, col := e.Cursor()
	return e.doc.OffsetAt(line, col)
}

// moveTo places the textarea caret at a byte offset of the document.
func (e *Editor) moveTo(offset int) {
	line, col := e.doc.PositionAt(offset)
	for i := e.textarea.LineCount() * 4; i > 0 && e.textarea.Line() > line; i-- {
		e.textarea.CursorUp()
	}
	for i := e.textarea.LineCount() * 4; i > 0 && e.textarea.Line() < line; i-- {
		e.textarea.CursorDown()
	}
	e.textarea.SetCursor(col)
}

// SetSize sets the pane size.
func (e *Editor) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 1 {
		height = 1
	}
	e.textarea.SetWidth(width)
	e.textarea.SetHeight(height)
}

// SetShowLineNumbers toggles the gutter.
func (e *Editor) SetShowLineNumbers(show bool) {
	e.textarea.ShowLineNumbers = show
}

// Focus gives the textarea keyboard focus.
func (e *Editor) Focus() tea.Cmd {
	return e.textarea.Focus()
}

// Blur removes keyboard focus.
func (e *Editor) Blur() {
	e.textarea.Blur()
}

func (e *Editor) View() string {
	return e.textarea.View()
}
