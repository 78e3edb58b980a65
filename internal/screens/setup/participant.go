package setup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/ui/components"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// ParticipantScreen asks for the player's region and age group. Both are
// optional and only travel with the session record.
type ParticipantScreen struct {
	sess   *session.Session
	start  func() screen.Screen
	inputs []components.TextInput
	focus  int
	errMsg string
}

var _ screen.Screen = (*ParticipantScreen)(nil)
var _ screen.KeyHintProvider = (*ParticipantScreen)(nil)

// New returns the first setup screen. start builds the quiz screen shown
// once every choice is made.
func New(sess *session.Session, start func() screen.Screen) *ParticipantScreen {
	return &ParticipantScreen{
		sess:  sess,
		start: start,
		inputs: []components.TextInput{
			components.NewTextInput("Region", "e.g. Europe", 40),
			components.NewTextInput("Age group", "e.g. 18-24", 20),
		},
	}
}

func (p *ParticipantScreen) Init() tea.Cmd {
	return p.inputs[p.focus].Focus()
}

func (p *ParticipantScreen) Title() string {
	return "New Game"
}

func (p *ParticipantScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ParticipantScreen) setFocus(i int) tea.Cmd {
	p.inputs[p.focus].Blur()
	p.focus = (i + len(p.inputs)) % len(p.inputs)
	return p.inputs[p.focus].Focus()
}

func (p *ParticipantScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return p, p.setFocus(p.focus + 1)
		case "shift+tab", "up":
			return p, p.setFocus(p.focus - 1)
		case "enter":
			if p.focus < len(p.inputs)-1 {
				return p, p.setFocus(p.focus + 1)
			}
			return p, p.submit()
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *ParticipantScreen) submit() tea.Cmd {
	if err := p.sess.SetParticipant(p.inputs[0].Value(), p.inputs[1].Value()); err != nil {
		p.errMsg = err.Error()
		return nil
	}
	p.errMsg = ""
	next := TopicPicker(p.sess, p.start)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (p *ParticipantScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Who's playing?"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Both fields are optional"))
	b.WriteString("\n\n")
	for _, in := range p.inputs {
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	if p.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(p.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
