package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/internal/logx"
	"github.com/tabpad/tabpad-cli/pkg/models"
	"github.com/tabpad/tabpad-cli/pkg/search"
	"github.com/tabpad/tabpad-cli/pkg/session"
	"github.com/tabpad/tabpad-cli/pkg/tabs"
	"github.com/tabpad/tabpad-cli/pkg/utils"
)

type windowMode int

const (
	modeEdit windowMode = iota
	modeFind
	modeConfirm
	modePrompt
	modePicker
	modeRecent
)

// Window is one editor window: a tab collection, the pane showing its
// current tab and the dialogs that act on it.
type Window struct {
	id   int
	fs   afero.Fs
	tabs *tabs.Collection

	editor  *Editor
	find    *FindBar
	search  *search.State
	confirm *ConfirmationModel
	prompt  *PathPrompt
	picker  *FilePicker
	recent  *RecentPicker
	status  *StatusManager
	keys    KeyMap
	help    help.Model
	clip    Clipboard

	sweep     *tabs.Sweep
	sweepDone func(cancelled bool, err error) tea.Cmd

	geometry    models.Geometry
	lineNumbers bool
	statusBar   bool
	emptied     bool
	log         pslog.Logger
}

type windowConfig struct {
	id       int
	fs       afero.Fs
	recent   *tabs.RecentFiles
	settings *models.Settings
	clip     Clipboard
	log      pslog.Logger
}

func newWindow(cfg windowConfig) *Window {
	settings := cfg.settings
	if settings == nil {
		settings = models.DefaultSettings()
	}

	w := &Window{
		id:          cfg.id,
		fs:          cfg.fs,
		editor:      NewEditor(settings.Editor.ShowLineNumbers),
		find:        NewFindBar(),
		search:      search.NewState(settings.Editor.CaseSensitive),
		confirm:     NewConfirmation(),
		prompt:      NewPathPrompt(),
		picker:      NewFilePicker(),
		recent:      NewRecentPicker(cfg.recent),
		status:      NewStatusManager(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		clip:        cfg.clip,
		lineNumbers: settings.Editor.ShowLineNumbers,
		statusBar:   settings.UI.ShowStatusBar,
		geometry:    models.Geometry{Width: 80, Height: 24, Zoom: models.ClampZoom(settings.UI.Zoom)},
	}
	if cfg.log != nil {
		w.log = logx.WithWindow(cfg.log, cfg.id)
	}

	opts := []tabs.Option{tabs.WithRecent(cfg.recent)}
	if w.log != nil {
		opts = append(opts, tabs.WithLogger(w.log))
	}
	w.tabs = tabs.New(cfg.fs, opts...)
	w.tabs.OnChange(w.onTabEvent)

	w.layout()
	return w
}

func (w *Window) onTabEvent(ev tabs.Event) {
	if ev.Kind == tabs.Emptied {
		w.emptied = true
	}
	if w.log != nil {
		w.log.Debug("tab event", "kind", ev.Kind.String(), "index", ev.Index)
	}
}

// ID returns the window number.
func (w *Window) ID() int {
	return w.id
}

// Tabs returns the window's tab collection.
func (w *Window) Tabs() *tabs.Collection {
	return w.tabs
}

// Emptied reports whether the last tab was closed, which closes the window.
func (w *Window) Emptied() bool {
	return w.emptied
}

// Geometry returns the size and zoom to persist.
func (w *Window) Geometry() models.Geometry {
	return w.geometry
}

// Snapshot records the window's tabs and geometry.
func (w *Window) Snapshot() session.Snapshot {
	return session.Take(w.tabs, session.EncodeGeometry(w.geometry))
}

// Restore reopens the tabs of snap and applies its zoom.
func (w *Window) Restore(snap session.Snapshot) error {
	g := session.DecodeGeometry(snap.Geometry, w.geometry)
	w.geometry.Zoom = models.ClampZoom(g.Zoom)
	_, err := session.Rehydrate(snap, w.tabs)
	w.layout()
	return err
}

// ensureTab gives a window with no tabs a blank one.
func (w *Window) ensureTab() {
	if w.tabs.Len() == 0 {
		w.tabs.NewTab()
		w.emptied = false
	}
	w.syncEditor()
}

// BoundPaths lists the files open in this window.
func (w *Window) BoundPaths() []string {
	var paths []string
	for _, doc := range w.tabs.Documents() {
		if doc.IsBound() {
			paths = append(paths, doc.Path())
		}
	}
	return paths
}

// SetSize applies a terminal resize.
func (w *Window) SetSize(width, height int) {
	w.geometry.Width = width
	w.geometry.Height = height
	w.layout()
}

// margin is the blank space each side of the text column. Zooming in
// narrows the column; zooming out below zero hides the line numbers.
func (w *Window) margin() int {
	if w.geometry.Zoom > 0 {
		return 2 * w.geometry.Zoom
	}
	return 0
}

func (w *Window) layout() {
	width, height := w.geometry.Width, w.geometry.Height
	chrome := 2 // tab bar, help
	if w.statusBar {
		chrome++
	}
	if w.find.Active() {
		chrome++
	}
	w.editor.SetShowLineNumbers(w.lineNumbers && w.geometry.Zoom >= 0)
	w.editor.SetSize(width-2*w.margin(), height-chrome)
	w.picker.SetHeight(height - 8)
	w.help.Width = width
}

func (w *Window) mode() windowMode {
	switch {
	case w.confirm.Active():
		return modeConfirm
	case w.prompt.Active():
		return modePrompt
	case w.picker.Active():
		return modePicker
	case w.recent.Active():
		return modeRecent
	case w.find.Active():
		return modeFind
	}
	return modeEdit
}

// Modal reports whether a dialog holds the keyboard.
func (w *Window) Modal() bool {
	m := w.mode()
	return m == modeConfirm || m == modePrompt || m == modePicker || m == modeRecent
}

// Update handles msg and keeps the editor pane on the current tab.
func (w *Window) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = w.handleKey(msg)
	case ClearStatusMsg:
		// View drops expired messages.
	default:
		switch w.mode() {
		case modePicker:
			cmd = w.updatePicker(msg)
		case modeEdit:
			cmd = w.editor.Update(msg)
		}
	}
	w.syncEditor()
	w.updateKeys()
	return cmd
}

// syncEditor attaches the current tab to the pane when it changed.
func (w *Window) syncEditor() {
	if cur := w.tabs.CurrentDocument(); cur != w.editor.Document() {
		w.editor.Attach(cur)
	}
}

// updateKeys enables the actions that apply to the current state.
func (w *Window) updateKeys() {
	hasSelection := false
	if doc := w.tabs.CurrentDocument(); doc != nil {
		hasSelection = !doc.Selection().Empty()
	}
	w.keys.Copy.SetEnabled(hasSelection)
	w.keys.Cut.SetEnabled(hasSelection)
	w.keys.Delete.SetEnabled(hasSelection)
	w.keys.FindNext.SetEnabled(w.search.Active())
	w.keys.FindPrevious.SetEnabled(w.search.Active())
}

func (w *Window) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch w.mode() {
	case modeConfirm:
		return w.confirm.Update(msg)
	case modePrompt:
		return w.prompt.Update(msg)
	case modePicker:
		if msg.String() == "esc" {
			w.picker.Stop()
			return w.editor.Focus()
		}
		return w.updatePicker(msg)
	case modeRecent:
		return w.updateRecent(msg)
	case modeFind:
		return w.handleFindKey(msg)
	}
	return w.handleEditKey(msg)
}

func (w *Window) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, w.keys.NewTab):
		w.tabs.NewTab()
		return nil
	case key.Matches(msg, w.keys.CloseTab):
		return w.closeCurrentTab()
	case key.Matches(msg, w.keys.NextTab):
		w.cycleTab(1)
		return nil
	case key.Matches(msg, w.keys.PrevTab):
		w.cycleTab(-1)
		return nil
	case key.Matches(msg, w.keys.Open):
		return w.picker.Start(w.currentDir())
	case key.Matches(msg, w.keys.Recent):
		return w.recent.Open()
	case key.Matches(msg, w.keys.Save):
		return w.saveCurrent()
	case key.Matches(msg, w.keys.SaveAs):
		return w.saveAs(w.tabs.Current())
	case key.Matches(msg, w.keys.SaveAll):
		return w.saveAll()
	case key.Matches(msg, w.keys.Find):
		return w.openFind(false)
	case key.Matches(msg, w.keys.Replace):
		return w.openFind(true)
	case key.Matches(msg, w.keys.FindNext):
		return w.findAgain(search.Forward)
	case key.Matches(msg, w.keys.FindPrevious):
		return w.findAgain(search.Backward)
	case key.Matches(msg, w.keys.ToggleCase):
		return w.toggleCase()
	case key.Matches(msg, w.keys.Copy):
		return w.copySelection()
	case key.Matches(msg, w.keys.Cut):
		return w.cutSelection()
	case key.Matches(msg, w.keys.Paste):
		return w.paste()
	case key.Matches(msg, w.keys.Delete):
		return w.deleteSelection()
	case key.Matches(msg, w.keys.ZoomIn):
		return w.setZoom(w.geometry.Zoom + 1)
	case key.Matches(msg, w.keys.ZoomOut):
		return w.setZoom(w.geometry.Zoom - 1)
	case key.Matches(msg, w.keys.ZoomReset):
		return w.setZoom(0)
	}

	if n, ok := altDigit(msg.String()); ok && n <= w.tabs.Len() {
		_ = w.tabs.Select(n - 1)
		return nil
	}
	return w.editor.Update(msg)
}

func (w *Window) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		w.find.Close()
		w.layout()
		return w.editor.Focus()
	case "enter", "down":
		return w.findFromBar(search.Forward)
	case "up":
		return w.findFromBar(search.Backward)
	case "tab":
		return w.find.SwitchField()
	case "alt+c":
		return w.toggleCase()
	case "ctrl+r":
		if w.find.ReplaceMode() {
			return w.replaceOne()
		}
		return nil
	case "ctrl+a":
		if w.find.ReplaceMode() {
			return w.replaceAll()
		}
		return nil
	}
	return w.find.Update(msg)
}

// View renders the window. label names it in the tab bar.
func (w *Window) View(label string) string {
	width, height := w.geometry.Width, w.geometry.Height
	bar := renderTabBar(w.tabs.Documents(), w.tabs.Current(), label, width)

	var body string
	switch w.mode() {
	case modePicker:
		body = HeaderPaddingStyle.Render(w.picker.View())
	case modeRecent:
		body = HeaderPaddingStyle.Render(w.recent.View(width - 2))
	case modeConfirm:
		body = lipgloss.Place(width, height-3, lipgloss.Center, lipgloss.Center, w.confirm.View())
	default:
		body = lipgloss.NewStyle().PaddingLeft(w.margin()).Render(w.editor.View())
	}

	parts := []string{bar, body}
	if w.find.Active() && w.mode() != modeConfirm {
		parts = append(parts, w.find.View(width, w.search.CaseSensitive))
	}
	if w.prompt.Active() {
		parts = append(parts, w.prompt.View(width))
	}
	if w.statusBar {
		parts = append(parts, w.statusLine(width))
	} else if msg, ok := w.status.GetStatus(); ok {
		parts = append(parts, StatusInfoStyle.Render(msg))
	}
	parts = append(parts, w.help.View(w.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (w *Window) statusLine(width int) string {
	left, ok := w.status.GetStatus()
	doc := w.tabs.CurrentDocument()
	if !ok && doc != nil {
		line, col := w.editor.Cursor()
		left = fmt.Sprintf("%s · Ln %d, Col %d", doc.DisplayName(), line+1, col+1)
		if sel := doc.Selection(); !sel.Empty() {
			left += fmt.Sprintf(" · %d selected", sel.End-sel.Start)
		}
	}

	var right []string
	if doc != nil {
		stats := utils.CountStats(doc.Text())
		right = append(right, utils.FormatCount(stats.Words, "word"), humanize.Bytes(uint64(stats.Bytes)))
	}
	if w.search.CaseSensitive {
		right = append(right, "Aa")
	} else {
		right = append(right, "aa")
	}
	if z := w.geometry.Zoom; z != 0 {
		right = append(right, fmt.Sprintf("zoom %+d", z))
	}
	r := strings.Join(right, " · ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(r) - 2
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + r)
}
