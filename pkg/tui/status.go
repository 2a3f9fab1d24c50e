package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusFeedback represents a temporary status message
type StatusFeedback struct {
	Message   string
	Icon      string
	ShowUntil time.Time
	Type      StatusType
}

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

// StatusManager manages temporary status messages
type StatusManager struct {
	CurrentStatus   *StatusFeedback
	DefaultDuration time.Duration
	now             func() time.Time
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 3 * time.Second,
		now:             time.Now,
	}
}

// ShowFeedback displays a status message with an icon and schedules a
// ClearStatusMsg once it expires.
func (sm *StatusManager) ShowFeedback(icon, message string, statusType StatusType) tea.Cmd {
	sm.CurrentStatus = &StatusFeedback{
		Message:   message,
		Icon:      icon,
		ShowUntil: sm.now().Add(sm.DefaultDuration),
		Type:      statusType,
	}

	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// ShowSuccess shows a success message
func (sm *StatusManager) ShowSuccess(format string, args ...interface{}) tea.Cmd {
	return sm.ShowFeedback("✓", fmt.Sprintf(format, args...), StatusTypeSuccess)
}

// ShowWarning shows a warning message
func (sm *StatusManager) ShowWarning(format string, args ...interface{}) tea.Cmd {
	return sm.ShowFeedback("⚠", fmt.Sprintf(format, args...), StatusTypeWarning)
}

// ShowError shows an error message
func (sm *StatusManager) ShowError(format string, args ...interface{}) tea.Cmd {
	return sm.ShowFeedback("×", fmt.Sprintf(format, args...), StatusTypeError)
}

// ShowInfo shows an info message
func (sm *StatusManager) ShowInfo(format string, args ...interface{}) tea.Cmd {
	return sm.ShowFeedback("ℹ", fmt.Sprintf(format, args...), StatusTypeInfo)
}

// Clear removes the current status
func (sm *StatusManager) Clear() {
	sm.CurrentStatus = nil
}

// IsActive checks if a status is currently showing
func (sm *StatusManager) IsActive() bool {
	if sm.CurrentStatus == nil {
		return false
	}
	if sm.now().After(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
		return false
	}
	return true
}

// GetStatus returns the current status message if active
func (sm *StatusManager) GetStatus() (string, bool) {
	if !sm.IsActive() {
		return "", false
	}
	return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon, sm.CurrentStatus.Message), true
}

// ClearStatusMsg is sent when a status message may have expired
type ClearStatusMsg struct{}
