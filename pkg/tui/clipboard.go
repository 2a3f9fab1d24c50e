package tui

import (
	"github.com/atotto/clipboard"
)

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

// SystemClipboard returns the clipboard of the desktop session.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// hasText reports whether the clipboard holds text to paste.
func hasText(c Clipboard) bool {
	if c == nil || clipboard.Unsupported && isSystem(c) {
		return false
	}
	text, err := c.ReadAll()
	return err == nil && text != ""
}

func isSystem(c Clipboard) bool {
	_, ok := c.(systemClipboard)
	return ok
}
