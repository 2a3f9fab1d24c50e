package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/tabpad/tabpad-cli/pkg/tabs"
)

// recentAction is what the recent files picker asks the window to do.
type recentAction int

const (
	recentNone recentAction = iota
	recentOpen
	recentClose
)

// RecentPicker lists the recent files with a fuzzy filter.
type RecentPicker struct {
	recent *tabs.RecentFiles
	filter textinput.Model
	items  []string
	cursor int
	active bool
}

// NewRecentPicker creates an inactive picker over recent.
func NewRecentPicker(recent *tabs.RecentFiles) *RecentPicker {
	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.CharLimit = 0
	return &RecentPicker{recent: recent, filter: ti}
}

// Open shows the picker with an empty filter.
func (r *RecentPicker) Open() tea.Cmd {
	r.active = true
	r.filter.SetValue("")
	r.cursor = 0
	if r.recent != nil {
		r.recent.Reload()
	}
	r.refresh()
	return r.filter.Focus()
}

// Active reports whether the picker is shown.
func (r *RecentPicker) Active() bool {
	return r.active
}

// Selected returns the highlighted path.
func (r *RecentPicker) Selected() (string, bool) {
	if r.cursor < 0 || r.cursor >= len(r.items) {
		return "", false
	}
	return r.items[r.cursor], true
}

func (r *RecentPicker) refresh() {
	r.items = nil
	if r.recent != nil {
		r.items = r.recent.Filter(r.filter.Value())
	}
	if r.cursor >= len(r.items) {
		r.cursor = len(r.items) - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
}

// Update handles a key. alt+1 … alt+9 and alt+0 open entry 1 to 10 of the
// unfiltered list.
func (r *RecentPicker) Update(msg tea.KeyMsg) (recentAction, string, tea.Cmd) {
	switch s := msg.String(); s {
	case "esc":
		r.active = false
		return recentClose, "", nil
	case "enter":
		path, ok := r.Selected()
		if !ok {
			return recentNone, "", nil
		}
		r.active = false
		return recentOpen, path, nil
	case "up", "ctrl+p":
		if r.cursor > 0 {
			r.cursor--
		}
		return recentNone, "", nil
	case "down", "ctrl+n":
		if r.cursor < len(r.items)-1 {
			r.cursor++
		}
		return recentNone, "", nil
	case "ctrl+d":
		if path, ok := r.Selected(); ok && r.recent != nil {
			_ = r.recent.Remove(path)
			r.refresh()
		}
		return recentNone, "", nil
	case "ctrl+x":
		if r.recent != nil {
			_ = r.recent.Clear()
			r.refresh()
		}
		return recentNone, "", nil
	default:
		if n, ok := altDigit(s); ok && r.recent != nil {
			if path, found := r.recent.GetFileByNumber(n); found {
				r.active = false
				return recentOpen, path, nil
			}
			return recentNone, "", nil
		}
	}

	var cmd tea.Cmd
	r.filter, cmd = r.filter.Update(msg)
	r.refresh()
	return recentNone, "", cmd
}

// altDigit maps alt+1 … alt+9 to 1 … 9 and alt+0 to 10.
func altDigit(s string) (int, bool) {
	if len(s) != 5 || !strings.HasPrefix(s, "alt+") {
		return 0, false
	}
	c := s[4]
	switch {
	case c == '0':
		return 10, true
	case c >= '1' && c <= '9':
		return int(c - '0'), true
	}
	return 0, false
}

func (r *RecentPicker) View(width int) string {
	if !r.active {
		return ""
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Recent files"))
	b.WriteString("\n")
	b.WriteString(r.filter.View())
	b.WriteString("\n\n")

	if len(r.items) == 0 {
		b.WriteString(DescriptionStyle.Render("  No recent files"))
		b.WriteString("\n")
	}

	all := []string{}
	if r.recent != nil {
		all = r.recent.Paths()
	}
	for i, path := range r.items {
		number := 0
		for j, p := range all {
			if p == path {
				number = j + 1
				break
			}
		}
		line := fmt.Sprintf("%2d  %s  %s", number, filepath.Base(path), DescriptionStyle.Render(filepath.Dir(path)))
		line = truncate.StringWithTail(line, uint(max(width-4, 10)), "…")
		if i == r.cursor {
			b.WriteString(SelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("enter open · alt+N open #N · ctrl+d remove · ctrl+x clear · esc close"))
	return b.String()
}
