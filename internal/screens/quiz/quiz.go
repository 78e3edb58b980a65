package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/screens/summary"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/timer"
	"github.com/drdavisdfelix/quiz/internal/ui/components"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
)

var lastID atomic.Int64

// Options configures a QuizScreen.
type Options struct {
	// QuestionTimeout is shown as the timer bar's full length.
	QuestionTimeout time.Duration

	// TickInterval is how often the session timer is advanced.
	TickInterval time.Duration

	// Clock supplies tick times. Defaults to the wall clock.
	Clock session.Clock

	// Home builds the screen shown after the summary.
	Home func() screen.Screen

	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.QuestionTimeout <= 0 {
		o.QuestionTimeout = session.DefaultConfig().QuestionTimeout
	}
	if o.TickInterval <= 0 {
		o.TickInterval = timer.DefaultInterval
	}
	if o.Clock == nil {
		o.Clock = session.SystemClock{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// QuizScreen runs a configured session: it starts it, shows each
// question with a running timer, and ends it on request.
type QuizScreen struct {
	id      int
	sess    *session.Session
	opts    Options
	spinner spinner.Model

	view     session.View
	choices  components.ChoiceList
	elapsed  time.Duration
	feedback *session.AnswerRecord
	timedOut bool

	busy        string
	ticking     bool
	pending     *string
	errMsg      string
	startFailed bool
	confirmEnd  bool
	ended       bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeCapturer = (*QuizScreen)(nil)

// New creates a QuizScreen for sess, which must already be configured.
func New(sess *session.Session, opts Options) *QuizScreen {
	return &QuizScreen{
		id:      int(lastID.Add(1)),
		sess:    sess,
		opts:    opts.withDefaults(),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.busy = "Preparing your first question"
	return tea.Batch(s.startCmd(), s.spinner.Tick, s.scheduleTick())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) CapturesEscape() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmEnd:
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep playing"},
		}
	case s.startFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Choose"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "End"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case startedMsg:
		if msg.id != s.id {
			return s, nil
		}
		return s.handleStarted(msg)

	case tickMsg:
		if msg.id != s.id {
			return s, nil
		}
		return s.handleTick()

	case tickedMsg:
		if msg.id != s.id {
			return s, nil
		}
		return s.handleTicked(msg)

	case answeredMsg:
		if msg.id != s.id {
			return s, nil
		}
		return s.handleAnswered(msg)

	case endedMsg:
		if msg.id != s.id {
			return s, nil
		}
		return s.handleEnded(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) startCmd() tea.Cmd {
	id := s.id
	return func() tea.Msg {
		return startedMsg{id: id, err: s.sess.Start(context.Background())}
	}
}

func (s *QuizScreen) scheduleTick() tea.Cmd {
	id := s.id
	return tea.Tick(s.opts.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (s *QuizScreen) tickCmd() tea.Cmd {
	id := s.id
	now := s.opts.Clock.Now()
	return func() tea.Msg {
		res, err := s.sess.Tick(context.Background(), now)
		return tickedMsg{id: id, res: res, err: err}
	}
}

func (s *QuizScreen) answerCmd(answer string) tea.Cmd {
	id := s.id
	return func() tea.Msg {
		rec, err := s.sess.Answer(context.Background(), answer)
		return answeredMsg{id: id, rec: rec, err: err}
	}
}

func (s *QuizScreen) skipCmd() tea.Cmd {
	id := s.id
	return func() tea.Msg {
		rec, err := s.sess.Skip(context.Background())
		return answeredMsg{id: id, rec: rec, err: err}
	}
}

func (s *QuizScreen) endCmd() tea.Cmd {
	id := s.id
	return func() tea.Msg {
		message, err := s.sess.End(context.Background())
		return endedMsg{id: id, message: message, err: err}
	}
}

// refresh reloads the session view and resets the answer selector when
// the question changed.
func (s *QuizScreen) refresh() {
	prev := 0
	if s.view.Question != nil {
		prev = s.view.Question.Ordinal
	}
	s.view = s.sess.Snapshot()
	s.elapsed = s.view.Elapsed
	if q := s.view.Question; q != nil && q.Ordinal != prev {
		s.choices = components.NewChoiceList(q.Choices)
	}
}

func (s *QuizScreen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.err != nil {
		s.startFailed = true
		s.errMsg = fmt.Sprintf("Couldn't start the game: %v", msg.err)
		s.opts.Logger.Warn("quiz start failed", zap.Error(msg.err))
		return s, nil
	}
	s.errMsg = ""
	s.refresh()
	return s, nil
}

func (s *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	if s.busy != "" || s.ticking || s.view.Phase != session.PhaseInProgress {
		return s, s.scheduleTick()
	}
	s.ticking = true
	return s, s.tickCmd()
}

func (s *QuizScreen) handleTicked(msg tickedMsg) (screen.Screen, tea.Cmd) {
	s.ticking = false

	switch {
	case errors.Is(msg.err, session.ErrSessionEnded):
		return s, nil
	case msg.err != nil:
		s.errMsg = fmt.Sprintf("Time's up, but the next question isn't ready: %v", msg.err)
		s.pending = nil
		return s, s.scheduleTick()
	}

	s.elapsed = msg.res.Elapsed
	if msg.res.Skipped {
		s.errMsg = ""
		s.feedback = msg.res.Skip
		s.timedOut = true
		s.pending = nil
		s.refresh()
		return s, s.scheduleTick()
	}

	if s.pending != nil {
		answer := *s.pending
		s.pending = nil
		s.busy = "Checking your answer"
		return s, tea.Batch(s.answerCmd(answer), s.scheduleTick())
	}
	return s, s.scheduleTick()
}

func (s *QuizScreen) handleAnswered(msg answeredMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.err != nil {
		s.errMsg = fmt.Sprintf("Couldn't load the next question, so that answer wasn't counted: %v", msg.err)
		s.choices.Submitted = false
		s.opts.Logger.Warn("answer not recorded", zap.Error(msg.err))
		return s, nil
	}
	rec := msg.rec
	s.errMsg = ""
	s.feedback = &rec
	s.timedOut = false
	s.refresh()
	return s, nil
}

func (s *QuizScreen) handleEnded(msg endedMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.err != nil && !errors.Is(msg.err, session.ErrSessionEnded) {
		s.errMsg = fmt.Sprintf("Couldn't end the game: %v", msg.err)
		return s, nil
	}
	s.ended = true

	v := s.sess.Snapshot()
	result := summary.Result{
		Message:   msg.message,
		Selection: selectionLine(v),
		Score:     v.Score,
		Total:     v.Total,
		Records:   s.sess.History(),
	}
	sess, opts := s.sess, s.opts
	next := summary.New(result, func() screen.Screen { return New(sess, opts) }, opts.Home)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmEnd {
		switch key {
		case "y", "Y":
			s.confirmEnd = false
			s.busy = "Saving your results"
			return s, s.endCmd()
		case "n", "N", "esc":
			s.confirmEnd = false
		}
		return s, nil
	}

	if s.startFailed {
		switch key {
		case "r", "R":
			s.startFailed = false
			s.errMsg = ""
			s.busy = "Preparing your first question"
			return s, s.startCmd()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.ended || s.busy != "" {
		return s, nil
	}

	switch key {
	case "esc", "x":
		s.confirmEnd = true
		return s, nil
	case "s", "S":
		if s.ticking || s.view.Question == nil {
			return s, nil
		}
		s.busy = "Skipping"
		return s, s.skipCmd()
	}

	if s.view.Question == nil {
		return s, nil
	}
	s.choices, _ = s.choices.Update(msg)
	answer, ok := s.choices.Chosen()
	if !ok {
		return s, nil
	}
	if s.ticking {
		s.pending = &answer
		return s, nil
	}
	s.busy = "Checking your answer"
	return s, s.answerCmd(answer)
}
