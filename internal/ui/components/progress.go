package components

import (
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// TimerBar shows how much of a question's time allowance is used up.
type TimerBar struct {
	Label   string
	Elapsed time.Duration
	Limit   time.Duration
	Width   int
}

// NewTimerBar creates a timer bar.
func NewTimerBar(label string, elapsed, limit time.Duration, width int) TimerBar {
	return TimerBar{
		Label:   label,
		Elapsed: elapsed,
		Limit:   limit,
		Width:   width,
	}
}

// Fraction returns the used share of the limit, clamped to [0, 1].
func (t TimerBar) Fraction() float64 {
	if t.Limit <= 0 {
		return 0
	}
	f := float64(t.Elapsed) / float64(t.Limit)
	return max(0, min(f, 1))
}

func (t TimerBar) fill() color.Color {
	switch f := t.Fraction(); {
	case f >= 0.8:
		return theme.Error
	case f >= 0.5:
		return theme.Warning
	}
	return theme.Secondary
}

// View renders the bar with its label.
func (t TimerBar) View() string {
	var result string
	if t.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(t.Label) + "  "
	}

	barWidth := max(t.Width-lipgloss.Width(result), 4)
	filled := int(float64(barWidth) * t.Fraction())
	empty := barWidth - filled

	result += lipgloss.NewStyle().Background(t.fill()).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
	return result
}
