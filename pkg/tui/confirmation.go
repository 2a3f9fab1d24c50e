package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeInline ConfirmationType = iota // Simple inline message
	ConfirmTypeDialog                         // Full dialog with border and centered layout
)

// Choice is one answer of a confirmation. Key is the lower-case key that
// picks it.
type Choice struct {
	Key         string
	Label       string
	Destructive bool
}

var (
	yesNoChoices = []Choice{{Key: "y", Label: "Yes"}, {Key: "n", Label: "No"}}

	// saveChoices answer "save changes before closing?".
	saveChoices = []Choice{
		{Key: "s", Label: "Save"},
		{Key: "d", Label: "Discard", Destructive: true},
		{Key: "c", Label: "Cancel"},
	}
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string           // Title for dialog type (optional)
	Message     string           // Main confirmation message
	Warning     string           // Optional warning text (shown in orange)
	Details     []string         // Optional detail lines
	Destructive bool             // If true, the first choice is red
	Type        ConfirmationType // Visual style
	Choices     []Choice         // Defaults to yes/no; esc picks the last one
	Width       int              // Width for dialog type
}

// ConfirmationModel handles confirmation prompts
type ConfirmationModel struct {
	active   bool
	config   ConfirmationConfig
	onChoose func(key string) tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation. onChoose receives the key of the picked
// choice.
func (m *ConfirmationModel) Show(config ConfirmationConfig, onChoose func(key string) tea.Cmd) {
	if len(config.Choices) == 0 {
		config.Choices = yesNoChoices
	}
	m.active = true
	m.config = config
	m.onChoose = onChoose
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Keys that match no choice
// are ignored.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	key := strings.ToLower(msg.String())
	if key == "esc" {
		key = m.config.Choices[len(m.config.Choices)-1].Key
	}

	for _, c := range m.config.Choices {
		if c.Key == key {
			m.active = false
			if m.onChoose != nil {
				return m.onChoose(key)
			}
			return nil
		}
	}
	return nil
}

// View renders the confirmation based on its type
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	if m.config.Type == ConfirmTypeDialog {
		return m.renderDialog()
	}
	return m.renderInline()
}

func (m *ConfirmationModel) renderInline() string {
	return fmt.Sprintf("%s %s", m.config.Message, formatConfirmOptions(m.config.Choices, m.config.Destructive))
}

func (m *ConfirmationModel) renderDialog() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = 60
	}
	contentWidth := width - 4
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var b strings.Builder

	if m.config.Title != "" {
		b.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}

	if m.config.Message != "" {
		b.WriteString(center.Render(wordwrap.String(m.config.Message, contentWidth)))
		b.WriteString("\n")
	}

	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(warningStyle.Render(wordwrap.String(m.config.Warning, contentWidth))))
		b.WriteString("\n")
	}

	if len(m.config.Details) > 0 {
		b.WriteString("\n")
		for _, detail := range m.config.Details {
			b.WriteString(DescriptionStyle.Render("  • " + detail))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(center.Render(formatConfirmOptions(m.config.Choices, m.config.Destructive)))

	return ActiveBorderStyle.
		Width(width).
		Padding(0, 1).
		Render(b.String())
}
