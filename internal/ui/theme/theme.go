package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, game-show bright on a dark background.
var (
	Primary      = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary    = lipgloss.Color("#14B8A6") // Teal
	Accent       = lipgloss.Color("#F97316") // Orange
	ArcadeYellow = lipgloss.Color("#FACC15") // Marquee Yellow
	Success      = lipgloss.Color("#22C55E") // Green
	Error        = lipgloss.Color("#F43F5E") // Rose
	Warning      = lipgloss.Color("#EAB308") // Amber
	Text         = lipgloss.Color("#F8FAFC") // White
	TextDim      = lipgloss.Color("#94A3B8") // Slate
	BgDark       = lipgloss.Color("#0F172A") // Deep Navy
	BgCard       = lipgloss.Color("#1E293B") // Dark Slate
	Border       = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)
