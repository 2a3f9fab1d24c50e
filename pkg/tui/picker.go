package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
)

// FilePicker browses the file system for a file to open.
type FilePicker struct {
	picker filepicker.Model
	active bool
}

// NewFilePicker creates an inactive picker.
func NewFilePicker() *FilePicker {
	fp := filepicker.New()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{}
	fp.AutoHeight = false
	fp.Height = 15
	return &FilePicker{picker: fp}
}

// Start opens the picker in dir, or the working directory when dir is empty.
func (p *FilePicker) Start(dir string) tea.Cmd {
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}
	p.picker.CurrentDirectory = dir
	p.active = true
	return p.picker.Init()
}

// Stop closes the picker.
func (p *FilePicker) Stop() {
	p.active = false
}

// Active reports whether the picker is shown.
func (p *FilePicker) Active() bool {
	return p.active
}

// SetHeight sets the number of listed entries.
func (p *FilePicker) SetHeight(h int) {
	if h < 3 {
		h = 3
	}
	p.picker.Height = h
}

// Update feeds msg to the picker. Directory reads arrive as their own
// messages, so every message is routed here while the picker is open. It
// returns the chosen file when one was picked.
func (p *FilePicker) Update(msg tea.Msg) (string, bool, tea.Cmd) {
	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	if didSelect, path := p.picker.DidSelectFile(msg); didSelect {
		p.active = false
		return path, true, cmd
	}
	return "", false, cmd
}

func (p *FilePicker) View() string {
	if !p.active {
		return ""
	}
	return HeaderStyle.Render("Open file") + "  " + DescriptionStyle.Render(p.picker.CurrentDirectory) + "\n\n" +
		p.picker.View() + "\n" + DescriptionStyle.Render("enter open · ← up · esc cancel")
}
