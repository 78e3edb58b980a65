// Package recorder persists finished quiz sessions. Implementations
// satisfy session.Recorder and can be combined with Multi.
package recorder

import (
	"context"
	"errors"

	"github.com/drdavisdfelix/quiz/internal/session"
)

// Multi fans a record out to several recorders.
type Multi struct {
	recorders []session.Recorder
}

// NewMulti combines recorders. Nil entries are dropped.
func NewMulti(recorders ...session.Recorder) *Multi {
	m := &Multi{}
	for _, r := range recorders {
		if r != nil {
			m.recorders = append(m.recorders, r)
		}
	}
	return m
}

// Record hands rec to every recorder, even after a failure, and joins the errors.
func (m *Multi) Record(ctx context.Context, rec session.Record) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.Record(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards records.
type Nop struct{}

func (Nop) Record(context.Context, session.Record) error { return nil }

func (Nop) RecordAnswer(context.Context, session.AnswerEvent) error { return nil }
