package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/store"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
	"github.com/drdavisdfelix/quiz/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	sessions []store.QuizSession
	err      error
}

type answersLoadedMsg struct {
	sessionID string
	answers   []store.AnswerEvent
	err       error
}

// HistoryScreen lists past games; Enter expands one to show its answers.
type HistoryScreen struct {
	sessions store.SessionRepo
	events   store.EventRepo

	games    []store.QuizSession
	answers  map[string][]store.AnswerEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. events may be nil, in which case games
// cannot be expanded.
func New(sessions store.SessionRepo, events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		sessions: sessions,
		events:   events,
		answers:  make(map[string][]store.AnswerEvent),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		games, err := s.sessions.List(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{sessions: games, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Games"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	if s.events == nil {
		return nil
	}
	if _, ok := s.answers[sessionID]; ok {
		return nil
	}
	return func() tea.Msg {
		answers, err := s.events.AnswersForSession(context.Background(), sessionID)
		return answersLoadedMsg{sessionID: sessionID, answers: answers, err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.games = msg.sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.answers[msg.sessionID] = msg.answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.games)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.games) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if s.expanded[s.selected] {
				return s, s.loadAnswers(s.games[s.selected].SessionID)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading past games...")
	}
	if len(s.games) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No games yet. Go play one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.games {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		topic := g.GeneralTopic
		if g.SubTopic != "" {
			topic += " › " + g.SubTopic
		}
		if topic == "" {
			topic = "(no topic)"
		}
		line := fmt.Sprintf("%s%s  %-32s  %-6s  %d/%d",
			prefix, g.Timestamp.Local().Format("Jan 02 15:04"), topic, g.Difficulty, g.Score, g.TotalQuestions)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(g.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	place := func(text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, text) + "\n"
	}

	if s.events == nil {
		return place(dim.Render("    Answer details unavailable"))
	}
	answers, ok := s.answers[sessionID]
	if !ok {
		return place(dim.Render("    Loading..."))
	}
	if len(answers) == 0 {
		return place(dim.Render("    No questions answered"))
	}

	var b strings.Builder
	for _, a := range answers {
		mark, style := "✗", theme.Incorrect
		switch {
		case a.Skipped:
			mark, style = "–", lipgloss.NewStyle().Foreground(theme.Warning)
		case a.Correct:
			mark, style = "✓", theme.Correct
		}
		line := fmt.Sprintf("    %s %s  (%s, you said %s)", mark, firstLine(a.QuestionText), a.CorrectAnswer, a.UserAnswer)
		b.WriteString(place(style.Render(line)))
	}
	return b.String()
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	return strings.TrimPrefix(strings.TrimSpace(s), "Question: ")
}
