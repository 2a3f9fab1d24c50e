// Package tabs manages the ordered set of documents open in one editor
// window: opening, focusing, saving and closing them.
package tabs

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/pkg/document"
	"github.com/tabpad/tabpad-cli/pkg/files"
)

var (
	// ErrIndexOutOfRange is returned for a tab index that does not exist.
	ErrIndexOutOfRange = errors.New("tab index out of range")
	// ErrCancelled is returned when the user backs out of a save.
	ErrCancelled = errors.New("cancelled by user")
)

// Collection is the ordered list of documents in one window plus the
// current selection. It is not safe for concurrent use.
type Collection struct {
	fs        afero.Fs
	docs      []*document.Document
	current   int
	recent    *RecentFiles
	observers []func(Event)
	log       pslog.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithRecent records opened and saved paths in r.
func WithRecent(r *RecentFiles) Option {
	return func(c *Collection) {
		c.recent = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger pslog.Logger) Option {
	return func(c *Collection) {
		c.log = logger
	}
}

// New returns an empty collection reading and writing through fs.
func New(fs afero.Fs, opts ...Option) *Collection {
	c := &Collection{fs: fs, current: -1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of tabs.
func (c *Collection) Len() int {
	return len(c.docs)
}

// Current returns the current tab index, or -1 when empty.
func (c *Collection) Current() int {
	return c.current
}

// CurrentDocument returns the document in the current tab, or nil.
func (c *Collection) CurrentDocument() *document.Document {
	if c.current < 0 {
		return nil
	}
	return c.docs[c.current]
}

// Document returns the document at index.
func (c *Collection) Document(index int) (*document.Document, error) {
	if index < 0 || index >= len(c.docs) {
		return nil, ErrIndexOutOfRange
	}
	return c.docs[index], nil
}

// Documents returns the documents in tab order.
func (c *Collection) Documents() []*document.Document {
	return append([]*document.Document(nil), c.docs...)
}

// Recent returns the recent files list, which may be nil.
func (c *Collection) Recent() *RecentFiles {
	return c.recent
}

// IndexOfPath returns the tab bound to path, or -1.
func (c *Collection) IndexOfPath(path string) int {
	for i, d := range c.docs {
		if files.SamePath(d.Path(), path) {
			return i
		}
	}
	return -1
}

// IndexOf returns the tab holding doc, or -1.
func (c *Collection) IndexOf(doc *document.Document) int {
	for i, d := range c.docs {
		if d == doc {
			return i
		}
	}
	return -1
}

// HasModified reports whether any document has unsaved changes.
func (c *Collection) HasModified() bool {
	for _, d := range c.docs {
		if d.IsModified() {
			return true
		}
	}
	return false
}

// Select makes index the current tab.
func (c *Collection) Select(index int) error {
	if index < 0 || index >= len(c.docs) {
		return ErrIndexOutOfRange
	}
	if index == c.current {
		return nil
	}
	c.current = index
	c.emit(SelectionChanged, index)
	return nil
}

// NewTab appends a blank tab and selects it.
func (c *Collection) NewTab() int {
	index, _ := c.CreateTab("", "")
	return index
}

// CreateTab appends a tab and selects it. With a path the file is loaded
// and bound; otherwise the tab holds content as unsaved text. A load
// failure leaves the collection untouched.
func (c *Collection) CreateTab(path string, content string) (int, error) {
	var doc *document.Document
	if path != "" {
		resolved := resolvePath(path)
		loaded, err := document.Load(c.fs, resolved)
		if err != nil {
			return -1, err
		}
		doc = loaded
		c.touchRecent(resolved)
	} else {
		doc = document.NewWithContent(content)
	}
	return c.append(doc), nil
}

// OpenOrFocus opens path. A tab already bound to path is selected instead
// of duplicated. A blank current tab is reused in place. Otherwise a new
// tab is created.
func (c *Collection) OpenOrFocus(path string) (int, error) {
	resolved := resolvePath(path)

	if index := c.IndexOfPath(resolved); index >= 0 {
		_ = c.Select(index)
		c.touchRecent(resolved)
		return index, nil
	}

	if cur := c.CurrentDocument(); cur != nil && cur.IsBlank() {
		doc, err := document.Load(c.fs, resolved)
		if err != nil {
			return -1, err
		}
		c.docs[c.current] = doc
		c.touchRecent(resolved)
		if c.log != nil {
			c.log.Debug("blank tab reused", "path", resolved, "index", c.current)
		}
		c.emit(TabChanged, c.current)
		return c.current, nil
	}

	return c.CreateTab(resolved, "")
}

// Save writes the document at index to its bound path. An unbound document
// asks p for a path; with a nil prompter it fails with document.ErrNoPath.
func (c *Collection) Save(index int, p Prompter) error {
	doc, err := c.Document(index)
	if err != nil {
		return err
	}
	if doc.IsBound() {
		return c.saveTo(index, doc, "")
	}
	if p == nil {
		return document.ErrNoPath
	}
	path, ok := p.SavePath(doc)
	if !ok || path == "" {
		return ErrCancelled
	}
	return c.SaveAs(index, path)
}

// SaveAs binds the document at index to path and writes it.
func (c *Collection) SaveAs(index int, path string) error {
	doc, err := c.Document(index)
	if err != nil {
		return err
	}
	if path == "" {
		return document.ErrNoPath
	}
	return c.saveTo(index, doc, resolvePath(path))
}

// SaveAll saves every modified document. A failure on one document does
// not stop the others; all failures are returned joined. Documents whose
// save-path prompt is cancelled are skipped.
func (c *Collection) SaveAll(p Prompter) error {
	var errs []error
	for i, doc := range c.docs {
		if !doc.IsModified() {
			continue
		}
		err := c.Save(i, p)
		if errors.Is(err, ErrCancelled) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", doc.DisplayName(), err))
		}
	}
	if len(errs) > 0 && c.log != nil {
		c.log.Warn("save all partial failure", "failed", len(errs))
	}
	return errors.Join(errs...)
}

// CloseTab closes the tab at index, asking p what to do with unsaved
// changes. It reports false when the close was cancelled, in which case
// nothing changed. A failed save cancels the close and returns the error.
// With a nil prompter a modified tab is never closed and ErrCancelled is
// returned.
func (c *Collection) CloseTab(index int, p Prompter) (bool, error) {
	if index < 0 || index >= len(c.docs) {
		return false, ErrIndexOutOfRange
	}
	return c.drive(c.NewCloseSweep(index), p)
}

// CloseAll closes every tab from last to first, stopping at the first
// cancellation. Tabs closed before the cancellation stay closed.
func (c *Collection) CloseAll(p Prompter) (bool, error) {
	return c.drive(c.NewExitSweep(), p)
}

func (c *Collection) drive(s *Sweep, p Prompter) (bool, error) {
	for {
		doc, ok := s.Next()
		if !ok {
			break
		}
		if p == nil {
			s.Resolve(Cancel, "")
			return false, ErrCancelled
		}
		decision := p.ConfirmClose(doc)
		path := ""
		if decision == Save && !doc.IsBound() {
			if picked, ok := p.SavePath(doc); ok {
				path = picked
			}
		}
		s.Resolve(decision, path)
	}
	return !s.Cancelled(), s.Err()
}

func (c *Collection) saveTo(index int, doc *document.Document, path string) error {
	rebinding := path != "" && path != doc.Path()
	if err := doc.Save(c.fs, path); err != nil {
		if c.log != nil {
			c.log.Warn("save failed", "path", doc.Path(), "err", err)
		}
		return err
	}
	c.touchRecent(doc.Path())
	if rebinding {
		c.emit(TabChanged, index)
	}
	return nil
}

func (c *Collection) append(doc *document.Document) int {
	c.docs = append(c.docs, doc)
	index := len(c.docs) - 1
	c.emit(TabAdded, index)
	c.current = index
	c.emit(SelectionChanged, index)
	return index
}

func (c *Collection) remove(doc *document.Document) {
	index := c.IndexOf(doc)
	if index < 0 {
		return
	}
	c.docs = append(c.docs[:index], c.docs[index+1:]...)
	if c.log != nil {
		c.log.Debug("tab closed", "name", doc.DisplayName(), "index", index)
	}
	c.emit(TabRemoved, index)

	if len(c.docs) == 0 {
		c.current = -1
		c.emit(Emptied, -1)
		return
	}
	prev := c.current
	if index < c.current || c.current >= len(c.docs) {
		c.current--
	}
	if c.current != prev || index == prev {
		c.emit(SelectionChanged, c.current)
	}
}

func (c *Collection) touchRecent(path string) {
	if c.recent == nil {
		return
	}
	if err := c.recent.Add(path); err != nil && c.log != nil {
		c.log.Warn("recent files update failed", "err", err)
	}
}

func resolvePath(path string) string {
	if resolved, err := files.ExpandPath(path); err == nil {
		return resolved
	}
	return path
}
