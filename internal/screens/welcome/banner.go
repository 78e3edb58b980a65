package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗   ██╗██╗███████╗
██╔═══██╗██║   ██║██║╚══███╔╝
██║   ██║██║   ██║██║  ███╔╝
██║▄▄ ██║██║   ██║██║ ███╔╝
╚██████╔╝╚██████╔╝██║███████╗
 ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const bannerCompact = "Q U I Z"

// RenderBanner returns the QUIZ banner in the marquee colour. Terminals
// narrower than 36 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if width < 36 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
