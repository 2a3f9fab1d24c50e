package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FindBar is the find / replace input row.
type FindBar struct {
	query       textinput.Model
	replacement textinput.Model
	replaceMode bool
	active      bool
	onReplace   bool
}

// NewFindBar creates an inactive find bar.
func NewFindBar() *FindBar {
	q := textinput.New()
	q.Prompt = "Find: "
	q.Placeholder = "text"
	q.CharLimit = 0

	r := textinput.New()
	r.Prompt = "Replace: "
	r.Placeholder = "replacement"
	r.CharLimit = 0

	return &FindBar{query: q, replacement: r}
}

// Open shows the bar with the query field focused and its text selected for
// retyping.
func (f *FindBar) Open(replace bool) tea.Cmd {
	f.active = true
	f.replaceMode = replace
	f.onReplace = false
	f.replacement.Blur()
	f.query.CursorEnd()
	return f.query.Focus()
}

// Close hides the bar.
func (f *FindBar) Close() {
	f.active = false
	f.query.Blur()
	f.replacement.Blur()
}

// Active reports whether the bar is shown.
func (f *FindBar) Active() bool {
	return f.active
}

// ReplaceMode reports whether the replacement field is shown.
func (f *FindBar) ReplaceMode() bool {
	return f.replaceMode
}

// Query returns the typed query.
func (f *FindBar) Query() string {
	return f.query.Value()
}

// Replacement returns the typed replacement.
func (f *FindBar) Replacement() string {
	return f.replacement.Value()
}

// SwitchField moves focus between query and replacement.
func (f *FindBar) SwitchField() tea.Cmd {
	if !f.replaceMode {
		return nil
	}
	f.onReplace = !f.onReplace
	if f.onReplace {
		f.query.Blur()
		return f.replacement.Focus()
	}
	f.replacement.Blur()
	return f.query.Focus()
}

// Update forwards input to the focused field.
func (f *FindBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.onReplace {
		f.replacement, cmd = f.replacement.Update(msg)
	} else {
		f.query, cmd = f.query.Update(msg)
	}
	return cmd
}

// View renders the bar, with the case mode on the right.
func (f *FindBar) View(width int, caseSensitive bool) string {
	if !f.active {
		return ""
	}
	mode := "aa"
	if caseSensitive {
		mode = "Aa"
	}
	row := f.query.View()
	if f.replaceMode {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, "   ", f.replacement.View())
	}
	hint := "enter next · ↑ prev · esc close"
	if f.replaceMode {
		hint = "tab field · ctrl+r replace · ctrl+a all · esc close"
	}
	right := DescriptionStyle.Render(mode + "  " + hint)
	gap := width - lipgloss.Width(row) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return HeaderPaddingStyle.Render(row + lipgloss.NewStyle().Width(gap).Render("") + right)
}
