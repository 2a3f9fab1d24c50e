package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the editor key bindings. Bindings are disabled while their
// action is unavailable so help only lists what works.
type KeyMap struct {
	// application
	Quit        key.Binding
	NewWindow   key.Binding
	CloseWindow key.Binding
	NextWindow  key.Binding
	PrevWindow  key.Binding

	// tabs and files
	NewTab   key.Binding
	CloseTab key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Open     key.Binding
	Recent   key.Binding
	Save     key.Binding
	SaveAs   key.Binding
	SaveAll  key.Binding

	// search
	Find         key.Binding
	Replace      key.Binding
	FindNext     key.Binding
	FindPrevious key.Binding
	ToggleCase   key.Binding

	// edit
	Copy   key.Binding
	Cut    key.Binding
	Paste  key.Binding
	Delete key.Binding

	// view
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ZoomReset key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		NewWindow:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new window")),
		CloseWindow: key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "close window")),
		NextWindow:  key.NewBinding(key.WithKeys("alt+]"), key.WithHelp("alt+]", "next window")),
		PrevWindow:  key.NewBinding(key.WithKeys("alt+["), key.WithHelp("alt+[", "prev window")),

		NewTab:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "new tab")),
		CloseTab: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
		NextTab:  key.NewBinding(key.WithKeys("ctrl+pgdown", "alt+right"), key.WithHelp("alt+→", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("ctrl+pgup", "alt+left"), key.WithHelp("alt+←", "prev tab")),
		Open:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
		Recent:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "recent")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SaveAs:   key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "save as")),
		SaveAll:  key.NewBinding(key.WithKeys("alt+a"), key.WithHelp("alt+a", "save all")),

		Find:         key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		Replace:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "replace")),
		FindNext:     key.NewBinding(key.WithKeys("ctrl+g", "f3"), key.WithHelp("ctrl+g", "next")),
		FindPrevious: key.NewBinding(key.WithKeys("alt+g"), key.WithHelp("alt+g", "previous")),
		ToggleCase:   key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "match case")),

		Copy:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste:  key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Delete: key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),

		ZoomIn:    key.NewBinding(key.WithKeys("alt+=", "alt++"), key.WithHelp("alt+=", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("alt+-"), key.WithHelp("alt+-", "zoom out")),
		ZoomReset: key.NewBinding(key.WithKeys("alt+0"), key.WithHelp("alt+0", "zoom reset")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Open, k.Find, k.Copy, k.Paste, k.CloseTab, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewTab, k.CloseTab, k.NextTab, k.PrevTab, k.Open, k.Recent},
		{k.Save, k.SaveAs, k.SaveAll},
		{k.Find, k.Replace, k.FindNext, k.FindPrevious, k.ToggleCase},
		{k.Copy, k.Cut, k.Paste, k.Delete},
		{k.ZoomIn, k.ZoomOut, k.ZoomReset},
		{k.NewWindow, k.CloseWindow, k.NextWindow, k.PrevWindow, k.Quit},
	}
}
