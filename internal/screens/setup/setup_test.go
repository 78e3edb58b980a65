package setup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(keyPress(r))
	}
	return s
}

// pushed runs cmd and returns the screen it pushes, failing otherwise.
func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	return msg.Screen
}

// pick moves the cursor down n times, presses Enter and delivers the
// resulting message back to the picker.
func pick(t *testing.T, s screen.Screen, n int) (screen.Screen, tea.Cmd) {
	t.Helper()
	for i := 0; i < n; i++ {
		s, _ = s.Update(specialKey(tea.KeyDown))
	}
	s, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command from Enter")
	}
	return s.Update(cmd())
}

func TestParticipantSubmit(t *testing.T) {
	sess := session.New(nil)
	var s screen.Screen = New(sess, func() screen.Screen { return &stubScreen{} })
	s.Init()

	s = typeText(s, "Europe")
	s, _ = s.Update(specialKey(tea.KeyEnter))
	s = typeText(s, "18-24")
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	next := pushed(t, cmd)
	if next.Title() != "Topic" {
		t.Errorf("next screen = %q, want Topic", next.Title())
	}

	v := sess.Snapshot()
	if v.Participant.Region != "Europe" || v.Participant.AgeGroup != "18-24" {
		t.Errorf("participant = %+v", v.Participant)
	}
	if v.Phase != session.PhaseConfiguring {
		t.Errorf("phase = %v, want configuring", v.Phase)
	}
}

func TestParticipantTabCyclesFocus(t *testing.T) {
	p := New(session.New(nil), nil)
	p.Init()

	p.Update(specialKey(tea.KeyTab))
	if p.focus != 1 {
		t.Errorf("focus after tab = %d, want 1", p.focus)
	}
	p.Update(specialKey(tea.KeyTab))
	if p.focus != 0 {
		t.Errorf("focus after second tab = %d, want 0", p.focus)
	}
}

func TestFullSetupChain(t *testing.T) {
	sess := session.New(nil)
	started := false
	start := func() screen.Screen {
		started = true
		return &stubScreen{}
	}

	// Science → Astronomy → Medium → True/False
	s := TopicPicker(sess, start)
	_, cmd := pick(t, s, 0)
	s = pushed(t, cmd)
	if s.Title() != "Science" {
		t.Fatalf("subtopic picker title = %q", s.Title())
	}

	_, cmd = pick(t, s, 1)
	s = pushed(t, cmd)
	_, cmd = pick(t, s, 1)
	s = pushed(t, cmd)
	_, cmd = pick(t, s, 1)
	s = pushed(t, cmd)

	if !started {
		t.Error("expected the quiz screen to be built")
	}
	if s.View(80, 24) != "quiz" {
		t.Error("expected the final push to be the quiz screen")
	}

	want := taxonomy.Selection{
		GeneralTopic: "Science",
		SubTopic:     "Astronomy",
		Difficulty:   "Medium",
		QuestionType: taxonomy.TrueFalse,
	}
	if got := sess.Snapshot().Selection; got != want {
		t.Errorf("selection = %+v, want %+v", got, want)
	}
}

func TestPickerShowsError(t *testing.T) {
	p := NewPicker("Test", "Pick", []string{"one"}, func(string) (screen.Screen, error) {
		return nil, session.ErrSessionInProgress
	})

	s, cmd := pick(t, p, 0)
	if cmd != nil {
		t.Error("expected no navigation on error")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, session.ErrSessionInProgress.Error()) {
		t.Error("expected the error to be shown")
	}
}
