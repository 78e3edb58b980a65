package home

import (
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, star eyes: last game was perfect
	MascotAlert                            // Orange, exclamation: no LLM key, demo questions
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ? ! │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ? ! │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ ? ! │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary

	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
