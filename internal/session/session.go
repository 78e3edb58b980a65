// Package session implements the quiz session state machine: topic
// selection, the question lifecycle, scoring and the timed auto-skip.
//
// A Session is safe for concurrent use. Every operation holds the session
// lock for its whole duration, including question generation, so a timer
// tick arriving during an answer waits for the answer to finish.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/llm"
	"github.com/drdavisdfelix/quiz/internal/questiongen"
	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

// Config holds session tunables.
type Config struct {
	// QuestionTimeout is how long a question stays open before a tick skips it.
	QuestionTimeout time.Duration `mapstructure:"question_timeout"`

	// ContextWindow is how many exchange messages the conversation keeps.
	ContextWindow int `mapstructure:"context_window"`
}

// DefaultConfig returns the standard 30-second quiz.
func DefaultConfig() Config {
	return Config{
		QuestionTimeout: 30 * time.Second,
		ContextWindow:   10,
	}
}

// Option customises a Session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithRecorder sets where ended sessions are recorded.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithAnswerSink sets where individual answers are streamed.
func WithAnswerSink(a AnswerSink) Option {
	return func(s *Session) { s.answers = a }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig overrides DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// Session is one player's quiz.
type Session struct {
	mu sync.Mutex

	gen      questiongen.Generator
	recorder Recorder
	answers  AnswerSink
	clock    Clock
	logger   *zap.Logger
	cfg      Config

	phase       Phase
	id          string
	participant Participant
	selection   taxonomy.Selection

	conversation  *questiongen.Conversation
	ordinals      *questiongen.Counter
	current       *questiongen.Question
	questionStart time.Time
	questionLog   []string

	score      int
	history    []AnswerRecord
	lastAnswer *AnswerRecord
}

// New creates an idle session that generates questions with gen.
func New(gen questiongen.Generator, opts ...Option) *Session {
	s := &Session{
		gen:    gen,
		clock:  SystemClock{},
		logger: zap.NewNop(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.QuestionTimeout <= 0 {
		s.cfg.QuestionTimeout = DefaultConfig().QuestionTimeout
	}
	if s.cfg.ContextWindow < 1 {
		s.cfg.ContextWindow = DefaultConfig().ContextWindow
	}
	return s
}

// ID returns the current session ID, empty before the first Start.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetParticipant records the player's region and age group.
func (s *Session) SetParticipant(region, ageGroup string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseInProgress {
		return ErrSessionInProgress
	}
	s.leaveEnded()
	s.participant = Participant{
		Region:   strings.TrimSpace(region),
		AgeGroup: strings.TrimSpace(ageGroup),
	}
	s.phase = PhaseConfiguring
	return nil
}

// SelectTopic chooses the general topic and clears every later choice.
func (s *Session) SelectTopic(topic string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseInProgress {
		return ErrSessionInProgress
	}
	name, err := taxonomy.ResolveTopic(topic)
	if err != nil {
		return err
	}
	s.leaveEnded()
	s.selection = taxonomy.Selection{GeneralTopic: name}
	s.phase = PhaseConfiguring
	return nil
}

// SelectSubTopic chooses a subtopic of the selected topic and clears the format.
func (s *Session) SelectSubTopic(sub string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseInProgress {
		return ErrSessionInProgress
	}
	if s.selection.GeneralTopic == "" {
		return fmt.Errorf("%w: choose a topic first", ErrConfigIncomplete)
	}
	name, err := taxonomy.ResolveSubTopic(s.selection.GeneralTopic, sub)
	if err != nil {
		return err
	}
	s.leaveEnded()
	s.selection.SubTopic = name
	s.selection.Difficulty = ""
	s.selection.QuestionType = ""
	s.phase = PhaseConfiguring
	return nil
}

// SelectFormat chooses the difficulty and question type.
func (s *Session) SelectFormat(difficulty, questionType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseInProgress {
		return ErrSessionInProgress
	}
	if s.selection.SubTopic == "" {
		return fmt.Errorf("%w: choose a subtopic first", ErrConfigIncomplete)
	}
	d, qt, err := resolveFormat(difficulty, questionType)
	if err != nil {
		return err
	}
	s.leaveEnded()
	s.selection.Difficulty = d
	s.selection.QuestionType = qt
	s.phase = PhaseConfiguring
	return nil
}

// Configure applies a whole selection at once. Either every field is
// accepted or the session is left untouched.
func (s *Session) Configure(sel taxonomy.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseInProgress {
		return ErrSessionInProgress
	}
	if !sel.Complete() {
		return ErrConfigIncomplete
	}
	topic, err := taxonomy.ResolveTopic(sel.GeneralTopic)
	if err != nil {
		return err
	}
	sub, err := taxonomy.ResolveSubTopic(topic, sel.SubTopic)
	if err != nil {
		return err
	}
	d, qt, err := resolveFormat(sel.Difficulty, string(sel.QuestionType))
	if err != nil {
		return err
	}
	s.leaveEnded()
	s.selection = taxonomy.Selection{GeneralTopic: topic, SubTopic: sub, Difficulty: d, QuestionType: qt}
	s.phase = PhaseConfiguring
	return nil
}

func resolveFormat(difficulty, questionType string) (string, taxonomy.QuestionType, error) {
	d, err := taxonomy.ResolveDifficulty(difficulty)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	qt, err := taxonomy.ParseQuestionType(questionType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return d, qt, nil
}

// leaveEnded drops the previous run once the player starts choosing again.
func (s *Session) leaveEnded() {
	if s.phase != PhaseEnded {
		return
	}
	s.id = ""
	s.conversation = nil
	s.ordinals = nil
	s.current = nil
	s.questionLog = nil
	s.score = 0
	s.history = nil
	s.lastAnswer = nil
}

// Start begins a run with the selected configuration and generates the
// first question. On error the session keeps its previous state.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseInProgress {
		return ErrSessionInProgress
	}
	if !s.selection.Complete() {
		return ErrConfigIncomplete
	}

	id := uuid.NewString()
	conv := questiongen.NewConversation(questiongen.SystemPrompt, s.cfg.ContextWindow)
	ordinals := &questiongen.Counter{}

	q, err := s.gen.Generate(llm.WithSessionID(ctx, id), questiongen.GenerateInput{
		Selection:    s.selection,
		Conversation: conv,
		Ordinals:     ordinals,
	})
	if err != nil {
		return err
	}

	s.id = id
	s.conversation = conv
	s.ordinals = ordinals
	s.current = q
	s.questionLog = []string{q.Raw}
	s.score = 0
	s.history = nil
	s.lastAnswer = nil
	s.questionStart = s.clock.Now()
	s.phase = PhaseInProgress

	s.logger.Info("session started",
		zap.String("session_id", id),
		zap.String("topic", s.selection.GeneralTopic),
		zap.String("sub_topic", s.selection.SubTopic),
		zap.String("difficulty", s.selection.Difficulty),
		zap.String("question_type", string(s.selection.QuestionType)),
	)
	return nil
}

// Answer grades text against the current question and moves on to the
// next one. The answer is only recorded once the next question exists;
// on error nothing is recorded and the call can be repeated.
func (s *Session) Answer(ctx context.Context, text string) (AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireQuestion(); err != nil {
		return AnswerRecord{}, err
	}

	elapsed := s.clock.Now().Sub(s.questionStart).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	rec := AnswerRecord{
		Question:      s.current.Raw,
		Prompt:        s.current.Prompt,
		CorrectAnswer: s.current.CorrectContent(),
		UserAnswer:    strings.TrimSpace(text),
		IsCorrect:     s.current.Check(text),
		TimeTaken:     elapsed,
	}
	if err := s.advance(ctx, rec, false); err != nil {
		return AnswerRecord{}, err
	}
	return rec, nil
}

// Skip records the current question as unanswered and moves on.
func (s *Session) Skip(ctx context.Context) (AnswerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireQuestion(); err != nil {
		return AnswerRecord{}, err
	}
	return s.skipLocked(ctx)
}

func (s *Session) skipLocked(ctx context.Context) (AnswerRecord, error) {
	rec := AnswerRecord{
		Question:      s.current.Raw,
		Prompt:        s.current.Prompt,
		CorrectAnswer: s.current.CorrectContent(),
		UserAnswer:    SkippedAnswer,
		IsCorrect:     false,
		TimeTaken:     s.cfg.QuestionTimeout.Seconds(),
	}
	if err := s.advance(ctx, rec, true); err != nil {
		return AnswerRecord{}, err
	}
	return rec, nil
}

func (s *Session) requireQuestion() error {
	switch {
	case s.phase == PhaseEnded:
		return ErrSessionEnded
	case s.phase != PhaseInProgress || s.current == nil:
		return ErrNoActiveQuestion
	}
	return nil
}

// advance generates the next question and, only if that succeeds, commits rec.
func (s *Session) advance(ctx context.Context, rec AnswerRecord, skipped bool) error {
	answered := s.current.Ordinal

	next, err := s.gen.Generate(llm.WithSessionID(ctx, s.id), questiongen.GenerateInput{
		Selection:    s.selection,
		Conversation: s.conversation,
		Ordinals:     s.ordinals,
	})
	if err != nil {
		s.logger.Warn("next question unavailable, answer not recorded",
			zap.String("session_id", s.id),
			zap.Int("ordinal", answered),
			zap.Error(err),
		)
		return err
	}

	s.history = append(s.history, rec)
	if rec.IsCorrect {
		s.score++
	}
	s.lastAnswer = &rec
	s.current = next
	s.questionLog = append(s.questionLog, next.Raw)
	s.questionStart = s.clock.Now()

	if s.answers != nil {
		ev := AnswerEvent{SessionID: s.id, Ordinal: answered, Answer: rec, Skipped: skipped}
		if err := s.answers.RecordAnswer(ctx, ev); err != nil {
			s.logger.Warn("failed to record answer event",
				zap.String("session_id", s.id),
				zap.Error(err),
			)
		}
	}
	return nil
}

// End finishes the session, hands its record to the recorder and returns
// the closing message. Recorder failures are logged, not returned. An idle
// session has nothing to record and fails with ErrConfigIncomplete.
func (s *Session) End(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case PhaseEnded:
		return "", ErrSessionEnded
	case PhaseIdle:
		return "", ErrConfigIncomplete
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}

	rec := s.buildRecord(s.clock.Now())
	s.phase = PhaseEnded
	s.current = nil

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, rec); err != nil {
			s.logger.Error("failed to record session",
				zap.String("session_id", s.id),
				zap.Error(err),
			)
		}
	}

	generated := 0
	if s.ordinals != nil {
		generated = s.ordinals.Last()
	}
	s.logger.Info("session ended",
		zap.String("session_id", s.id),
		zap.Int("score", rec.Score),
		zap.Int("total", rec.TotalQuestions),
		zap.Int("generation_attempts", generated),
	)
	return fmt.Sprintf("Session ended. Final score: %d/%d. Data has been collected and saved.",
		rec.Score, rec.TotalQuestions), nil
}

// History returns a copy of the answer records so far.
func (s *Session) History() []AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AnswerRecord(nil), s.history...)
}

// QuestionLog returns the raw text of every question shown this run.
func (s *Session) QuestionLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questionLog...)
}

// ConversationLen returns the number of messages, system included, that
// the next generation request would carry.
func (s *Session) ConversationLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conversation == nil {
		return 0
	}
	return s.conversation.Len()
}
