package summary

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

// Result is what the summary shows for a finished session.
type Result struct {
	Message   string
	Selection string
	Score     int
	Total     int
	Records   []session.AnswerRecord
}

// SummaryScreen displays the end-of-session results.
type SummaryScreen struct {
	result Result
	replay func() screen.Screen
	home   func() screen.Screen
	vp     viewport.Model
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeCapturer = (*SummaryScreen)(nil)

// New creates a SummaryScreen. replay builds a fresh quiz screen for the
// same choices; home builds the screen Esc returns to.
func New(result Result, replay, home func() screen.Screen) *SummaryScreen {
	vp := viewport.New()
	vp.SoftWrap = true
	vp.SetContent(renderRecords(result.Records))
	return &SummaryScreen{
		result: result,
		replay: replay,
		home:   home,
		vp:     vp,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Game Over"
}

func (s *SummaryScreen) CapturesEscape() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "P", Description: "Play again"},
		{Key: "Enter", Description: "Home"},
		{Key: "↑↓", Description: "Scroll"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "p", "P":
			if s.replay != nil {
				next := s.replay()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		case "enter", "esc":
			if s.home != nil {
				next := s.home()
				return s, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")
	if s.result.Selection != "" {
		b.WriteString(center.Foreground(theme.TextDim).Render(s.result.Selection))
		b.WriteString("\n")
	}
	b.WriteString(center.Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("Score: %d/%d", s.result.Score, s.result.Total)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(s.result.Message))
	b.WriteString("\n\n")

	top := b.String()
	listWidth := min(width-4, 76)
	s.vp.SetWidth(listWidth)
	s.vp.SetHeight(max(height-lipgloss.Height(top)-1, 3))

	return top + lipgloss.PlaceHorizontal(width, lipgloss.Center, s.vp.View())
}

func renderRecords(records []session.AnswerRecord) string {
	if len(records) == 0 {
		return theme.Hint.Render("No questions were answered.")
	}

	var b strings.Builder
	for i, r := range records {
		var verdict string
		switch {
		case r.UserAnswer == session.SkippedAnswer:
			verdict = lipgloss.NewStyle().Foreground(theme.Warning).Render("– Skipped")
		case r.IsCorrect:
			verdict = theme.Correct.Render("✓ Correct")
		default:
			verdict = theme.Incorrect.Render("✗ Wrong")
		}

		fmt.Fprintf(&b, "%s  %s  %s\n",
			theme.Selected.Render(fmt.Sprintf("Q%d", i+1)),
			verdict,
			theme.Hint.Render(session.FormatElapsed(seconds(r.TimeTaken))),
		)
		b.WriteString(theme.Body.Render(r.Prompt))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Correct answer = %s, Your answer = %s", r.CorrectAnswer, r.UserAnswer)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
