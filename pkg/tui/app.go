package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"pkt.systems/pslog"

	"github.com/tabpad/tabpad-cli/pkg/files"
	"github.com/tabpad/tabpad-cli/pkg/models"
	"github.com/tabpad/tabpad-cli/pkg/session"
	"github.com/tabpad/tabpad-cli/pkg/tabs"
	"github.com/tabpad/tabpad-cli/pkg/watcher"
)

// Reloader re-reads persisted state written by another process.
type Reloader interface {
	Reload() error
}

// Options configure the application.
type Options struct {
	Fs       afero.Fs
	Settings *models.Settings
	// Sessions persists the session; nil disables it.
	Sessions *session.Store
	Recent   *tabs.RecentFiles
	// State is reloaded when StatePath changes on disk.
	State     Reloader
	StatePath string
	// Watcher reports external file changes; optional.
	Watcher   *watcher.Watcher
	Clipboard Clipboard
	Logger    pslog.Logger
	// Files are opened in the first window. Without files the saved
	// session is restored when Restore is set.
	Files   []string
	Restore bool
}

// App is the bubbletea model: a stack of windows, one shown at a time.
type App struct {
	opts    Options
	keys    KeyMap
	windows []*Window
	active  int
	nextID  int
	width   int
	height  int

	quitting  bool
	quitQueue []*Window
	done      bool

	watched map[string]struct{}
	pending []tea.Cmd
}

// NewApp builds the first window from opts.
func NewApp(opts Options) *App {
	if opts.Fs == nil {
		opts.Fs = files.NewOSFs()
	}
	if opts.Settings == nil {
		opts.Settings = models.DefaultSettings()
	}

	a := &App{
		opts:    opts,
		keys:    DefaultKeyMap(),
		width:   80,
		height:  24,
		watched: make(map[string]struct{}),
	}

	w := a.addWindow()
	for _, f := range opts.Files {
		if cmd := w.Open(f); cmd != nil {
			a.pending = append(a.pending, cmd)
		}
	}
	if len(opts.Files) == 0 && opts.Restore && opts.Sessions != nil {
		snap, ok := opts.Sessions.Restore()
		if err := w.Restore(snap); err != nil {
			a.logWarn("session partially restored", "err", err)
			a.pending = append(a.pending, w.status.ShowWarning("Some files from the last session could not be opened"))
		} else if ok {
			a.logInfo("session restored", "tabs", w.tabs.Len())
		}
	}
	w.ensureTab()
	a.syncWatches()
	return a
}

func (a *App) addWindow() *Window {
	a.nextID++
	w := newWindow(windowConfig{
		id:       a.nextID,
		fs:       a.opts.Fs,
		recent:   a.opts.Recent,
		settings: a.opts.Settings,
		clip:     a.opts.Clipboard,
		log:      a.opts.Logger,
	})
	w.SetSize(a.width, a.height)
	a.windows = append(a.windows, w)
	a.active = len(a.windows) - 1
	return w
}

// Windows returns the open windows, oldest first.
func (a *App) Windows() []*Window {
	return a.windows
}

// Current returns the shown window.
func (a *App) Current() *Window {
	if a.active < 0 || a.active >= len(a.windows) {
		return nil
	}
	return a.windows[a.active]
}

// Done reports whether the application has finished.
func (a *App) Done() bool {
	return a.done
}

func (a *App) Init() tea.Cmd {
	cmds := append([]tea.Cmd{textarea.Blink, a.waitForChange()}, a.pending...)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.done {
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, w := range a.windows {
			w.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case fileChangedMsg:
		cmd := a.externalChange(watcher.Change(msg))
		return a, tea.Batch(cmd, a.waitForChange())

	case tea.KeyMsg:
		if w := a.Current(); w != nil && !w.Modal() && !a.quitting {
			switch {
			case key.Matches(msg, a.keys.Quit):
				return a, a.startQuit()
			case key.Matches(msg, a.keys.NewWindow):
				a.newWindow()
				return a, nil
			case key.Matches(msg, a.keys.CloseWindow):
				return a, a.closeWindow(w)
			case key.Matches(msg, a.keys.NextWindow):
				a.cycleWindow(1)
				return a, nil
			case key.Matches(msg, a.keys.PrevWindow):
				a.cycleWindow(-1)
				return a, nil
			}
		}
	}

	w := a.Current()
	if w == nil {
		return a, nil
	}
	cmd := w.Update(msg)
	if !a.quitting && w.Emptied() && a.indexOf(w) >= 0 {
		cmd = tea.Batch(cmd, a.closeWindow(w))
	}
	a.syncWatches()
	return a, cmd
}

func (a *App) View() string {
	if a.done {
		return ""
	}
	w := a.Current()
	if w == nil {
		return "Loading..."
	}
	return w.View(windowLabel(a.active+1, len(a.windows)))
}

// windows

func (a *App) newWindow() *Window {
	w := a.addWindow()
	w.ensureTab()
	a.logInfo("window opened", "window", w.ID())
	return w
}

func (a *App) cycleWindow(delta int) {
	n := len(a.windows)
	if n < 2 {
		return
	}
	a.active = (a.active + delta + n) % n
}

func (a *App) indexOf(w *Window) int {
	for i, x := range a.windows {
		if x == w {
			return i
		}
	}
	return -1
}

func (a *App) focus(w *Window) {
	if i := a.indexOf(w); i >= 0 {
		a.active = i
	}
}

func (a *App) removeWindow(w *Window) {
	i := a.indexOf(w)
	if i < 0 {
		return
	}
	a.windows = append(a.windows[:i], a.windows[i+1:]...)
	if a.active >= len(a.windows) {
		a.active = len(a.windows) - 1
	}
	if a.active < 0 {
		a.active = 0
	}
}

// closeWindow closes w on its own: its tabs, unsaved text included, are
// saved as the session without asking. Closing the last window ends the
// application.
func (a *App) closeWindow(w *Window) tea.Cmd {
	if a.opts.Sessions != nil {
		if err := a.opts.Sessions.Persist(w.Snapshot()); err != nil {
			a.logWarn("session persist failed", "window", w.ID(), "err", err)
		}
	}
	a.removeWindow(w)
	a.logInfo("window closed", "window", w.ID())
	if len(a.windows) == 0 {
		a.done = true
		return tea.Quit
	}
	return nil
}

// quitting

// startQuit closes every window, newest first, prompting for unsaved tabs.
// The first cancel stops the quit; windows already closed stay closed.
func (a *App) startQuit() tea.Cmd {
	a.quitting = true
	a.quitQueue = a.quitQueue[:0]
	for i := len(a.windows) - 1; i >= 0; i-- {
		a.quitQueue = append(a.quitQueue, a.windows[i])
	}
	return a.continueQuit()
}

func (a *App) continueQuit() tea.Cmd {
	if len(a.quitQueue) == 0 {
		a.quitting = false
		if a.opts.Sessions != nil {
			if err := a.opts.Sessions.Clear(); err != nil {
				a.logWarn("session clear failed", "err", err)
			}
		}
		a.done = true
		a.logInfo("quit")
		return tea.Quit
	}
	w := a.quitQueue[0]
	a.focus(w)
	return w.StartExitSweep(func(cancelled bool, err error) tea.Cmd {
		return a.exitSwept(w, cancelled, err)
	})
}

func (a *App) exitSwept(w *Window, cancelled bool, err error) tea.Cmd {
	if cancelled {
		a.quitting = false
		a.quitQueue = nil
		w.ensureTab()
		a.logInfo("quit cancelled", "window", w.ID())
		if err != nil {
			return w.status.ShowError("Save failed, quit cancelled: %v", err)
		}
		return w.status.ShowInfo("Quit cancelled")
	}
	a.quitQueue = a.quitQueue[1:]
	a.removeWindow(w)
	return a.continueQuit()
}

// external changes

type fileChangedMsg watcher.Change

func (a *App) waitForChange() tea.Cmd {
	wt := a.opts.Watcher
	if wt == nil {
		return nil
	}
	return func() tea.Msg {
		ch, ok := wt.Next()
		if !ok {
			return nil
		}
		return fileChangedMsg(ch)
	}
}

func (a *App) externalChange(ch watcher.Change) tea.Cmd {
	if a.opts.StatePath != "" && files.SamePath(ch.Path, a.opts.StatePath) {
		if a.opts.State != nil {
			if err := a.opts.State.Reload(); err != nil {
				a.logWarn("state reload failed", "err", err)
			}
		}
		if a.opts.Recent != nil {
			a.opts.Recent.Reload()
		}
		return nil
	}
	var cmds []tea.Cmd
	for _, w := range a.windows {
		cmds = append(cmds, w.ExternalChange(ch))
	}
	return tea.Batch(cmds...)
}

// syncWatches keeps the watcher on the state file and every open file.
func (a *App) syncWatches() {
	wt := a.opts.Watcher
	if wt == nil {
		return
	}
	want := make(map[string]struct{})
	if a.opts.StatePath != "" {
		want[a.opts.StatePath] = struct{}{}
	}
	for _, w := range a.windows {
		for _, p := range w.BoundPaths() {
			want[p] = struct{}{}
		}
	}
	for p := range want {
		if _, ok := a.watched[p]; ok {
			continue
		}
		if err := wt.Add(p); err != nil {
			a.logDebug("watch failed", "path", p, "err", err)
			continue
		}
		a.watched[p] = struct{}{}
	}
	for p := range a.watched {
		if _, ok := want[p]; !ok {
			wt.Remove(p)
			delete(a.watched, p)
		}
	}
}

func (a *App) logInfo(msg string, kv ...interface{}) {
	if a.opts.Logger != nil {
		a.opts.Logger.Info(msg, kv...)
	}
}

func (a *App) logWarn(msg string, kv ...interface{}) {
	if a.opts.Logger != nil {
		a.opts.Logger.Warn(msg, kv...)
	}
}

func (a *App) logDebug(msg string, kv ...interface{}) {
	if a.opts.Logger != nil {
		a.opts.Logger.Debug(msg, kv...)
	}
}
