package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/ui/components"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

func selectionLine(v session.View) string {
	sel := v.Selection
	if sel.GeneralTopic == "" {
		return ""
	}
	return fmt.Sprintf("%s › %s · %s · %s", sel.GeneralTopic, sel.SubTopic, sel.Difficulty, sel.QuestionType)
}

func (s *QuizScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.startFailed {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(s.errMsg)+"\n\n"+theme.Hint.Render("Press R to try again"))
	}
	if s.confirmEnd {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Title.Render("End this game?")+"\n\n"+
				theme.Body.Render(s.view.ScoreText)+"\n\n"+
				theme.Hint.Render("Y to end and save · N to keep playing"))
	}

	q := s.view.Question
	if q == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spinner.View()+" "+theme.Hint.Render(s.busyText()))
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render("  " + selectionLine(s.view))
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q%d  %s", s.view.Total+1, s.view.ScoreText))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	if layout.IsCompactWidth(width) {
		barWidth = min(width-8, 40)
	}
	bar := components.NewTimerBar(session.FormatElapsed(s.elapsed), s.elapsed, s.opts.QuestionTimeout, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")

	if s.feedback != nil {
		b.WriteString(center.Render(s.feedbackLine()))
		b.WriteString("\n")
	}
	if s.busy != "" {
		b.WriteString(center.Render(s.spinner.View() + " " + theme.Hint.Render(s.busyText())))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(center.Render(theme.ErrorText.Render(s.errMsg)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *QuizScreen) busyText() string {
	if s.busy == "" {
		return "Loading..."
	}
	return s.busy + "..."
}

func (s *QuizScreen) feedbackLine() string {
	f := s.feedback
	switch {
	case s.timedOut:
		return lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("Time's up! The answer was %s.", f.CorrectAnswer))
	case f.UserAnswer == session.SkippedAnswer:
		return lipgloss.NewStyle().Foreground(theme.Warning).
			Render(fmt.Sprintf("Skipped. The answer was %s.", f.CorrectAnswer))
	case f.IsCorrect:
		return theme.Correct.Render("Correct!")
	}
	return theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer was %s.", f.CorrectAnswer))
}
