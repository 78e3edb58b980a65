package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/session"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func testResult() Result {
	return Result{
		Message:   "Session ended. Final score: 1/2. Data has been collected and saved.",
		Selection: "Science › Astronomy · Easy · True/False",
		Score:     1,
		Total:     2,
		Records: []session.AnswerRecord{
			{Prompt: "The Sun is a star.", CorrectAnswer: "True", UserAnswer: "True", IsCorrect: true, TimeTaken: 4.2},
			{Prompt: "Mars has rings.", CorrectAnswer: "False", UserAnswer: session.SkippedAnswer, TimeTaken: 30},
		},
	}
}

func TestSummaryScreen_View(t *testing.T) {
	s := New(testResult(), nil, nil)
	view := s.View(100, 40)

	for _, want := range []string{
		"Session complete!",
		"Score: 1/2",
		"Final score: 1/2",
		"The Sun is a star.",
		"Mars has rings.",
		"Skipped",
		"4.20 seconds",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_ViewNoAnswers(t *testing.T) {
	s := New(Result{Message: "Session ended. Final score: 0/0."}, nil, nil)
	if !strings.Contains(s.View(100, 30), "No questions were answered.") {
		t.Error("expected empty-history hint")
	}
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	replay := &stubScreen{title: "quiz"}
	s := New(testResult(), func() screen.Screen { return replay }, nil)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if msg.Screen != replay {
		t.Error("expected the replay screen")
	}
}

func TestSummaryScreen_HomeResetsStack(t *testing.T) {
	home := &stubScreen{title: "home"}
	s := New(testResult(), nil, func() screen.Screen { return home })

	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := s.Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected a command", key.String())
		}
		msg, ok := cmd().(router.ResetScreenMsg)
		if !ok {
			t.Fatalf("%s: expected ResetScreenMsg, got %T", key.String(), msg)
		}
		if msg.Screen != home {
			t.Errorf("%s: expected the home screen", key.String())
		}
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), nil, nil)
	if s.Title() != "Game Over" {
		t.Errorf("Title = %q, want %q", s.Title(), "Game Over")
	}
}
