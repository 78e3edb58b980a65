package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/components"
	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

const arcadeTitleFull = ` ██████╗ ██╗   ██╗██╗███████╗
██╔═══██╗██║   ██║██║╚══███╔╝
██║   ██║██║   ██║██║  ███╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝
╚██████╔╝╚██████╔╝██║███████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "Q · U · I · Z"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows games played, the best and the latest score.
func renderStatsBar(st stats, cw int) string {
	games := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	score := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	if st.Games == 0 {
		line = dim.Render("NO GAMES YET")
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			games.Render(fmt.Sprintf("★ %d PLAYED", st.Games)),
			score.Render(fmt.Sprintf("◆ BEST %d/%d", st.BestScore, st.BestTotal)),
			dim.Render(fmt.Sprintf("LAST %d/%d", st.LastScore, st.LastTotal)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func renderArcadeMenu(menu components.Menu, cw int) string {
	buttons := make([]string, len(menu.Items))
	for i, it := range menu.Items {
		buttons[i] = components.ArcadeButton(it.Label, i == menu.Selected, it.Disabled, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderDemoBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No LLM API key found, using demo questions")
}
