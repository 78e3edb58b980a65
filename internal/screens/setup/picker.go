package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/ui/components"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

type pickedMsg struct {
	label string
}

// PickFunc applies a choice and returns the screen to show next.
type PickFunc func(label string) (screen.Screen, error)

// Picker is a single-choice menu step of the setup flow.
type Picker struct {
	title  string
	prompt string
	menu   components.Menu
	onPick PickFunc
	errMsg string
}

var _ screen.Screen = (*Picker)(nil)
var _ screen.KeyHintProvider = (*Picker)(nil)

// NewPicker creates a picker over options.
func NewPicker(title, prompt string, options []string, onPick PickFunc) *Picker {
	return &Picker{
		title:  title,
		prompt: prompt,
		menu: components.MenuFromLabels(options, func(label string) tea.Cmd {
			return func() tea.Msg { return pickedMsg{label: label} }
		}),
		onPick: onPick,
	}
}

func (p *Picker) Init() tea.Cmd {
	return nil
}

func (p *Picker) Title() string {
	return p.title
}

func (p *Picker) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *Picker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(pickedMsg); ok {
		next, err := p.onPick(msg.label)
		if err != nil {
			p.errMsg = err.Error()
			return p, nil
		}
		p.errMsg = ""
		return p, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *Picker) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(p.prompt))
	b.WriteString("\n\n")
	b.WriteString(p.menu.View())
	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(p.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
