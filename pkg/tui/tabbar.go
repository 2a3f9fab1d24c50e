package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/tabpad/tabpad-cli/pkg/document"
)

// maxTabTitle is the widest a tab title gets before it is cut.
const maxTabTitle = 24

// tabTitle is the label of one tab: its name, prefixed with "● " when it
// has unsaved changes.
func tabTitle(doc *document.Document) string {
	name := truncate.StringWithTail(doc.DisplayName(), maxTabTitle, "…")
	if doc.IsModified() {
		return "● " + name
	}
	return name
}

// renderTabBar draws the tabs with the current one highlighted and a window
// label on the right. When the tabs do not fit, the bar scrolls so the
// current tab stays visible.
func renderTabBar(docs []*document.Document, current int, windowLabel string, width int) string {
	label := WindowLabelStyle.Render(windowLabel)
	avail := width - lipgloss.Width(label) - 1
	if avail < 10 {
		avail = 10
	}

	rendered := make([]string, len(docs))
	for i, doc := range docs {
		style := InactiveTabStyle
		if i == current {
			style = ActiveTabStyle
		}
		rendered[i] = style.Render(tabTitle(doc))
	}

	first := 0
	for first < current && lipgloss.Width(strings.Join(rendered[first:current+1], "│")) > avail {
		first++
	}
	bar := strings.Join(rendered[first:], "│")
	if first > 0 {
		bar = "‹" + bar
	}
	bar = truncate.StringWithTail(bar, uint(avail), "›")

	gap := width - lipgloss.Width(bar) - lipgloss.Width(label)
	if gap < 1 {
		gap = 1
	}
	return bar + strings.Repeat(" ", gap) + label
}

// windowLabel names a window for the tab bar, "window 2/3".
func windowLabel(position, count int) string {
	if count <= 1 {
		return ""
	}
	return fmt.Sprintf("window %d/%d", position, count)
}
