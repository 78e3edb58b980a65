package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// MenuFromLabels builds a menu whose items all call action with their label.
func MenuFromLabels(labels []string, action func(label string) tea.Cmd) Menu {
	items := make([]MenuItem, len(labels))
	for i, l := range labels {
		items[i] = MenuItem{
			Label:  l,
			Action: func() tea.Cmd { return action(l) },
		}
	}
	return NewMenu(items)
}

// Init returns nil (no initial command).
func (m Menu) Init() tea.Cmd {
	return nil
}

// next returns the first enabled index from i in direction dir, or -1.
func (m Menu) next(i, dir int) int {
	for i += dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "home", "g":
		if i := m.next(-1, 1); i >= 0 {
			m.Selected = i
		}
	case "end", "G":
		if i := m.next(len(m.Items), -1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// SelectedLabel returns the label under the cursor.
func (m Menu) SelectedLabel() string {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[m.Selected].Label
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
