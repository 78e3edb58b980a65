package quiz

import (
	"github.com/drdavisdfelix/quiz/internal/session"
)

// Every message carries the id of the screen that issued it, so a screen
// that replaced an earlier quiz ignores its predecessor's tick chain.

// startedMsg is sent once the first question has been generated.
type startedMsg struct {
	id  int
	err error
}

// answeredMsg is sent when an answer or skip has been graded and the
// next question is ready.
type answeredMsg struct {
	id  int
	rec session.AnswerRecord
	err error
}

// tickMsg schedules the next timer tick.
type tickMsg struct {
	id int
}

// tickedMsg carries the result of a session tick.
type tickedMsg struct {
	id  int
	res session.TickResult
	err error
}

// endedMsg is sent after the session has been ended and recorded.
type endedMsg struct {
	id      int
	message string
	err     error
}
