package tui

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/tabpad/tabpad-cli/pkg/document"
	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/models"
	"github.com/tabpad/tabpad-cli/pkg/search"
	"github.com/tabpad/tabpad-cli/pkg/tabs"
	"github.com/tabpad/tabpad-cli/pkg/watcher"
)

// Open opens path in this window, reusing a blank current tab or focusing
// a tab that already shows it.
func (w *Window) Open(path string) tea.Cmd {
	_, err := w.tabs.OpenOrFocus(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if r := w.tabs.Recent(); r != nil {
				_ = r.Remove(path)
			}
		}
		if w.log != nil {
			w.log.Warn("open failed", "path", path, "err", err)
		}
		return w.status.ShowError("Could not open %s: %v", filepath.Base(path), err)
	}
	w.syncEditor()
	return nil
}

func (w *Window) updatePicker(msg tea.Msg) tea.Cmd {
	path, picked, cmd := w.picker.Update(msg)
	if !picked {
		return cmd
	}
	return tea.Batch(cmd, w.Open(path), w.editor.Focus())
}

func (w *Window) updateRecent(msg tea.KeyMsg) tea.Cmd {
	action, path, cmd := w.recent.Update(msg)
	switch action {
	case recentOpen:
		return tea.Batch(w.Open(path), w.editor.Focus())
	case recentClose:
		return w.editor.Focus()
	}
	return cmd
}

func (w *Window) cycleTab(delta int) {
	n := w.tabs.Len()
	if n < 2 {
		return
	}
	_ = w.tabs.Select((w.tabs.Current() + delta + n) % n)
}

func (w *Window) currentDir() string {
	if doc := w.tabs.CurrentDocument(); doc != nil && doc.IsBound() {
		return filepath.Dir(doc.Path())
	}
	return ""
}

// suggestPath is the initial text of the save-as prompt.
func (w *Window) suggestPath(doc *document.Document) string {
	if doc.IsBound() {
		return doc.Path()
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "untitled.txt")
}

// saving

func (w *Window) saveCurrent() tea.Cmd {
	index := w.tabs.Current()
	doc := w.tabs.CurrentDocument()
	if doc == nil {
		return nil
	}
	if !doc.IsBound() {
		return w.saveAs(index)
	}
	if err := w.tabs.Save(index, nil); err != nil {
		return w.status.ShowError("Save failed: %v", err)
	}
	return w.status.ShowSuccess("Saved %s (%s)", doc.DisplayName(), humanize.Bytes(uint64(doc.Len())))
}

func (w *Window) saveAs(index int) tea.Cmd {
	doc, err := w.tabs.Document(index)
	if err != nil {
		return nil
	}
	return w.prompt.Show("Save "+doc.DisplayName()+" as", w.suggestPath(doc), func(path string) tea.Cmd {
		if err := w.tabs.SaveAs(index, path); err != nil {
			return w.status.ShowError("Save failed: %v", err)
		}
		return tea.Batch(
			w.status.ShowSuccess("Saved %s (%s)", doc.DisplayName(), humanize.Bytes(uint64(doc.Len()))),
			w.editor.Focus(),
		)
	}, w.editor.Focus)
}

// skipUnbound declines to pick a path so SaveAll leaves untitled tabs alone.
type skipUnbound struct{}

func (skipUnbound) ConfirmClose(*document.Document) tabs.Decision { return tabs.Cancel }

func (skipUnbound) SavePath(*document.Document) (string, bool) { return "", false }

func (w *Window) saveAll() tea.Cmd {
	if err := w.tabs.SaveAll(skipUnbound{}); err != nil {
		return w.status.ShowError("Some files were not saved: %v", strings.ReplaceAll(err.Error(), "\n", "; "))
	}
	untitled := 0
	for _, doc := range w.tabs.Documents() {
		if doc.IsModified() && !doc.IsBound() {
			untitled++
		}
	}
	if untitled > 0 {
		return w.status.ShowWarning("Saved all files; %d untitled tab(s) need Save As", untitled)
	}
	return w.status.ShowSuccess("Saved all files")
}

// closing

func (w *Window) closeCurrentTab() tea.Cmd {
	if w.tabs.Len() == 0 {
		return nil
	}
	return w.runSweep(w.tabs.NewCloseSweep(w.tabs.Current()), func(cancelled bool, err error) tea.Cmd {
		if err != nil {
			return w.status.ShowError("Save failed, tab kept open: %v", err)
		}
		return nil
	})
}

// StartExitSweep closes every tab, last first, asking about unsaved ones.
// done runs once the sweep completes or is cancelled.
func (w *Window) StartExitSweep(done func(cancelled bool, err error) tea.Cmd) tea.Cmd {
	return w.runSweep(w.tabs.NewExitSweep(), done)
}

func (w *Window) runSweep(s *tabs.Sweep, done func(cancelled bool, err error) tea.Cmd) tea.Cmd {
	w.sweep = s
	w.sweepDone = done
	return w.advanceSweep()
}

// advanceSweep closes clean tabs until one needs an answer, then shows the
// save / discard / cancel dialog for it.
func (w *Window) advanceSweep() tea.Cmd {
	s := w.sweep
	if s == nil {
		return nil
	}
	doc, waiting := s.Next()
	if waiting {
		_ = w.tabs.Select(w.tabs.IndexOf(doc))
		w.syncEditor()
		w.confirm.Show(ConfirmationConfig{
			Title:   "Unsaved changes",
			Message: fmt.Sprintf("Save changes to %s before closing?", doc.DisplayName()),
			Warning: "Your changes will be lost if you don't save them.",
			Type:    ConfirmTypeDialog,
			Choices: saveChoices,
			Width:   min(60, max(w.geometry.Width-4, 30)),
		}, w.resolveSweep)
		return nil
	}

	done := w.sweepDone
	w.sweep, w.sweepDone = nil, nil
	w.syncEditor()
	if done == nil {
		return nil
	}
	return done(s.Cancelled(), s.Err())
}

func (w *Window) resolveSweep(choice string) tea.Cmd {
	s := w.sweep
	if s == nil {
		return nil
	}
	switch choice {
	case "s":
		doc := s.Pending()
		if doc != nil && !doc.IsBound() {
			return w.prompt.Show("Save "+doc.DisplayName()+" as", w.suggestPath(doc),
				func(path string) tea.Cmd {
					s.Resolve(tabs.Save, path)
					return w.advanceSweep()
				},
				func() tea.Cmd {
					s.Resolve(tabs.Cancel, "")
					return w.advanceSweep()
				})
		}
		s.Resolve(tabs.Save, "")
	case "d":
		s.Resolve(tabs.Discard, "")
	default:
		s.Resolve(tabs.Cancel, "")
	}
	return w.advanceSweep()
}

// search

func (w *Window) openFind(replace bool) tea.Cmd {
	cmd := w.find.Open(replace)
	w.layout()
	return cmd
}

func (w *Window) findFromBar(dir search.Direction) tea.Cmd {
	doc := w.tabs.CurrentDocument()
	query := w.find.Query()
	if doc == nil || query == "" {
		return nil
	}
	var res search.Result
	switch {
	case query != w.search.LastQuery:
		res = w.search.Find(doc, query)
	case dir == search.Backward:
		res = w.search.FindPrevious(doc)
	default:
		res = w.search.FindNext(doc)
	}
	return w.showFind(res)
}

func (w *Window) findAgain(dir search.Direction) tea.Cmd {
	doc := w.tabs.CurrentDocument()
	if doc == nil {
		return nil
	}
	var res search.Result
	if dir == search.Backward {
		res = w.search.FindPrevious(doc)
	} else {
		res = w.search.FindNext(doc)
	}
	return w.showFind(res)
}

func (w *Window) showFind(res search.Result) tea.Cmd {
	switch res.Status {
	case search.NotFound:
		return w.status.ShowWarning("%q not found", w.search.LastQuery)
	case search.Wrapped:
		w.editor.Reveal()
		return w.status.ShowInfo("Search wrapped around")
	}
	w.editor.Reveal()
	w.status.Clear()
	return nil
}

func (w *Window) replaceOne() tea.Cmd {
	doc := w.tabs.CurrentDocument()
	query := w.find.Query()
	if doc == nil || query == "" {
		return nil
	}
	w.search.LastQuery = query
	res := w.search.Replace(doc, w.find.Replacement())
	if res.Replaced {
		w.editor.Refresh()
		// Select the following occurrence so repeated presses walk the text.
		return w.showFind(w.search.FindNext(doc))
	}
	return w.showFind(res.Next)
}

func (w *Window) replaceAll() tea.Cmd {
	doc := w.tabs.CurrentDocument()
	query := w.find.Query()
	if doc == nil || query == "" {
		return nil
	}
	w.search.LastQuery = query
	n := w.search.ReplaceAll(doc, w.find.Replacement())
	if n == 0 {
		return w.status.ShowWarning("%q not found", query)
	}
	w.editor.Refresh()
	return w.status.ShowSuccess("Replaced %d occurrence(s)", n)
}

func (w *Window) toggleCase() tea.Cmd {
	w.search.CaseSensitive = !w.search.CaseSensitive
	if w.search.CaseSensitive {
		return w.status.ShowInfo("Match case on")
	}
	return w.status.ShowInfo("Match case off")
}

// clipboard

func (w *Window) copySelection() tea.Cmd {
	doc := w.tabs.CurrentDocument()
	if doc == nil || doc.Selection().Empty() {
		return nil
	}
	text := doc.SelectedText()
	if w.clip == nil {
		return w.status.ShowError("Clipboard unavailable")
	}
	if err := w.clip.WriteAll(text); err != nil {
		return w.status.ShowError("Clipboard unavailable: %v", err)
	}
	return w.status.ShowSuccess("Copied %s", humanize.Bytes(uint64(len(text))))
}

func (w *Window) cutSelection() tea.Cmd {
	doc := w.tabs.CurrentDocument()
	if doc == nil || doc.Selection().Empty() {
		return nil
	}
	if w.clip == nil {
		return w.status.ShowError("Clipboard unavailable")
	}
	sel := doc.Selection()
	if err := w.clip.WriteAll(doc.SelectedText()); err != nil {
		return w.status.ShowError("Clipboard unavailable: %v", err)
	}
	doc.Replace(sel.Start, sel.End, "")
	w.editor.Refresh()
	return nil
}

func (w *Window) paste() tea.Cmd {
	doc := w.tabs.CurrentDocument()
	if doc == nil {
		return nil
	}
	if !hasText(w.clip) {
		return w.status.ShowWarning("Nothing to paste")
	}
	text, err := w.clip.ReadAll()
	if err != nil {
		return w.status.ShowError("Clipboard unavailable: %v", err)
	}
	sel := doc.Selection()
	doc.Replace(sel.Start, sel.End, text)
	w.editor.Refresh()
	if lines := strings.Count(text, "\n") + 1; lines > 1 {
		return w.status.ShowSuccess("Pasted %d lines", lines)
	}
	return nil
}

func (w *Window) deleteSelection() tea.Cmd {
	doc := w.tabs.CurrentDocument()
	if doc == nil || doc.Selection().Empty() {
		return nil
	}
	sel := doc.Selection()
	doc.Replace(sel.Start, sel.End, "")
	w.editor.Refresh()
	return nil
}

// view

func (w *Window) setZoom(z int) tea.Cmd {
	w.geometry.Zoom = models.ClampZoom(z)
	w.layout()
	return w.status.ShowInfo("Zoom %+d", w.geometry.Zoom)
}

// ExternalChange reacts to a file of this window changing on disk. A clean
// tab is reloaded; a modified one keeps its edits and a warning is shown.
func (w *Window) ExternalChange(ch watcher.Change) tea.Cmd {
	index := w.tabs.IndexOfPath(ch.Path)
	if index < 0 {
		return nil
	}
	doc, _ := w.tabs.Document(index)
	if ch.Removed {
		return w.status.ShowWarning("%s was deleted on disk", doc.DisplayName())
	}

	text, err := files.ReadText(w.fs, doc.Path())
	if err != nil || text == doc.Text() {
		return nil
	}
	if doc.IsModified() {
		return w.status.ShowWarning("%s changed on disk; your unsaved edits are kept", doc.DisplayName())
	}
	if err := doc.Reload(w.fs); err != nil {
		return w.status.ShowError("Reload of %s failed: %v", doc.DisplayName(), err)
	}
	if doc == w.editor.Document() {
		w.editor.Refresh()
	}
	if w.log != nil {
		w.log.Info("reloaded after external change", "path", doc.Path())
	}
	return w.status.ShowInfo("%s changed on disk and was reloaded", doc.DisplayName())
}
