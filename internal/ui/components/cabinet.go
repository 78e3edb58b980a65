package components

import (
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

const (
	cabinetMaxContent = 60
	cabinetMinContent = 24
	// cabinetChrome is the double border plus two columns of padding a side.
	cabinetChrome = 6
)

// ContentWidth is the width every section inside a cabinet is rendered at,
// so titles, banners and buttons line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-cabinetChrome, cabinetMinContent), cabinetMaxContent)
}

// CabinetFrame draws the double-bordered arcade cabinet filling width x
// height with content centred inside.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeButton renders one menu entry. The selected entry is lit in arcade
// yellow; disabled entries are dimmed.
func ArcadeButton(label string, selected, disabled bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case disabled:
		return style.Foreground(theme.TextDim).BorderForeground(theme.BgCard).Render(label)
	case selected:
		return style.Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow).
			Render("▸ " + label)
	}
	return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
}
