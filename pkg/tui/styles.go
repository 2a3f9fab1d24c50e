package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255"
	ColorPrimary  = "33" // Blue for primary actions
	ColorError    = "196"
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	// Tab bar
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorNormal)).
				Padding(0, 1)

	ModifiedMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWarning))

	WindowLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	HeaderPaddingStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				PaddingRight(1)
)

// Confirmation option styles
var (
	confirmSafeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSuccess)).
				Bold(true)

	confirmDangerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDanger)).
				Bold(true)

	confirmNeutralStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorPrimary)).
				Bold(true)
)

// formatConfirmOptions renders choices as "[s]ave  [d]iscard  [c]ancel".
// With destructive set the first choice is red, otherwise green.
func formatConfirmOptions(choices []Choice, destructive bool) string {
	parts := make([]string, 0, len(choices))
	for i, c := range choices {
		style := confirmNeutralStyle
		switch {
		case i == 0 && destructive:
			style = confirmDangerStyle
		case i == 0:
			style = confirmSafeStyle
		case c.Destructive:
			style = confirmDangerStyle
		}
		parts = append(parts, style.Render(choiceLabel(c)))
	}
	return strings.Join(parts, "  ")
}

func choiceLabel(c Choice) string {
	if i := strings.Index(strings.ToLower(c.Label), c.Key); i >= 0 {
		return c.Label[:i] + "[" + c.Label[i:i+len(c.Key)] + "]" + c.Label[i+len(c.Key):]
	}
	return "[" + c.Key + "] " + c.Label
}
