package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and quiz styling.
type TextInput struct {
	Model textinput.Model
	Label string
}

// NewTextInput creates a new styled text input. It starts blurred.
func NewTextInput(label, placeholder string, maxLen int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	return TextInput{Model: ti, Label: label}
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes the cursor.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has the cursor.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and input.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12).Render(t.Label)
	if t.Focused() {
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(12).Render(t.Label)
	}
	return label + t.Model.View()
}

// Value returns the trimmed input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}
