// Package layout renders the chrome around every screen: the header bar,
// the key hint footer and the size guards.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

const (
	MinWidth  = 64
	MinHeight = 20

	// HeaderHeight and FooterHeight are a text row plus a rule.
	HeaderHeight = 2
	FooterHeight = 2

	CompactWidthThreshold  = 96
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal cannot fit a question and its choices.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the rows left for a screen once the chrome is drawn.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the player to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small (%dx%d).\nResize to at least %dx%d to play.",
			width, height, MinWidth, MinHeight))
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

// RenderHeader renders the app name, the screen title centred and status,
// typically the running score, on the right.
func RenderHeader(title, status string, width int) string {
	third := max(width/3, 1)
	left := lipgloss.NewStyle().Width(third).Foreground(theme.Primary).Bold(true).
		Render("  Quizgame")
	center := lipgloss.NewStyle().Width(width - 2*third).Align(lipgloss.Center).Foreground(theme.Text).
		Render(title)
	right := lipgloss.NewStyle().Width(third).Align(lipgloss.Right).Foreground(theme.Accent).Bold(true).
		Render(status + "  ")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, center, right),
		rule(width),
	)
}

// RenderFooter renders key hints below a rule, dropping hints from the end
// until they fit.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	line := "  " + strings.Join(parts, "   ")
	for len(parts) > 1 && lipgloss.Width(line) > width {
		parts = parts[:len(parts)-1]
		line = "  " + strings.Join(parts, "   ")
	}

	return lipgloss.JoinVertical(lipgloss.Left, rule(width), line)
}

// RenderFrame stacks header, content and footer, padding the content so
// the footer sits on the last rows.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
