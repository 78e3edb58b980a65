package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// ChoiceList is the answer selector for a multiple choice or true/false
// question. Options are shown with letter labels and picked with the
// arrows and Enter, a letter key, or a number key.
type ChoiceList struct {
	Options   []string
	Selected  int
	Submitted bool

	// Correct is the correct option's text, set by Reveal.
	Correct  string
	revealed bool
}

// NewChoiceList creates a selector over options.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options}
}

// Letter returns the label for option i.
func Letter(i int) string {
	return string(rune('A' + i))
}

// Update handles navigation and selection.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		if len(c.Options) > 0 {
			c.Submitted = true
		}
		return c, nil
	}

	if len(key) == 1 {
		var i int
		switch ch := strings.ToUpper(key)[0]; {
		case ch >= 'A' && ch <= 'Z':
			i = int(ch - 'A')
		case ch >= '1' && ch <= '9':
			i = int(ch - '1')
		default:
			return c, nil
		}
		if i < len(c.Options) {
			c.Selected = i
			c.Submitted = true
		}
	}
	return c, nil
}

// Chosen returns the submitted option's text.
func (c ChoiceList) Chosen() (string, bool) {
	if !c.Submitted || c.Selected >= len(c.Options) {
		return "", false
	}
	return c.Options[c.Selected], true
}

// Reveal marks which option was correct so View can colour the result.
func (c *ChoiceList) Reveal(correct string) {
	c.Correct = correct
	c.revealed = true
}

func (c ChoiceList) isCorrect(i int) bool {
	return strings.EqualFold(strings.TrimSpace(c.Options[i]), strings.TrimSpace(c.Correct))
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, Letter(i), opt)

		var style lipgloss.Style
		switch {
		case c.revealed && c.isCorrect(i):
			style = theme.Correct
		case c.revealed && c.Submitted && i == c.Selected:
			style = theme.Incorrect
		case c.revealed || c.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
