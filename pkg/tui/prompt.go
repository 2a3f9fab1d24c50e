package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabpad/tabpad-cli/pkg/files"
)

// PathPrompt asks for a file path on one line. "~" is expanded and the
// result is absolute.
type PathPrompt struct {
	input    textinput.Model
	title    string
	active   bool
	err      string
	onSubmit func(path string) tea.Cmd
	onCancel func() tea.Cmd
}

// NewPathPrompt creates an inactive prompt.
func NewPathPrompt() *PathPrompt {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "path/to/file.txt"
	ti.CharLimit = 0
	return &PathPrompt{input: ti}
}

// Show activates the prompt with initial text.
func (p *PathPrompt) Show(title, initial string, onSubmit func(path string) tea.Cmd, onCancel func() tea.Cmd) tea.Cmd {
	p.title = title
	p.err = ""
	p.active = true
	p.onSubmit = onSubmit
	p.onCancel = onCancel
	p.input.SetValue(initial)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Active reports whether the prompt is shown.
func (p *PathPrompt) Active() bool {
	return p.active
}

// Update handles a key while the prompt is shown.
func (p *PathPrompt) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		p.active = false
		p.input.Blur()
		if p.onCancel != nil {
			return p.onCancel()
		}
		return nil

	case "enter":
		raw := p.input.Value()
		if raw == "" {
			p.err = "Enter a file name"
			return nil
		}
		path, err := files.ExpandPath(raw)
		if err != nil {
			p.err = err.Error()
			return nil
		}
		p.active = false
		p.input.Blur()
		if p.onSubmit != nil {
			return p.onSubmit(path)
		}
		return nil
	}

	p.err = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt box.
func (p *PathPrompt) View(width int) string {
	if !p.active {
		return ""
	}
	p.input.Width = width - 10
	body := HeaderStyle.Render(p.title) + "\n" + p.input.View()
	if p.err != "" {
		body += "\n" + ErrorStyle.Render(p.err)
	}
	box := InputStyle.Width(width - 4).Render(body)
	return box + "\n" + DescriptionStyle.Render("enter confirm · esc cancel")
}
