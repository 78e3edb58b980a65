// Package timer drives a session's question clock from a host that has no
// event loop of its own.
package timer

import (
	"context"
	"errors"
	"time"

	"github.com/drdavisdfelix/quiz/internal/session"
)

// DefaultInterval is how often the question clock is refreshed.
const DefaultInterval = 100 * time.Millisecond

// Ticker is the part of a session the driver needs.
type Ticker interface {
	Tick(ctx context.Context, now time.Time) (session.TickResult, error)
}

// Driver calls Tick on a fixed interval.
type Driver struct {
	Interval time.Duration
	Clock    session.Clock
}

// Run ticks t until ctx is cancelled or the session ends. Every result,
// including a failed auto-skip, is passed to onTick. Run returns nil when
// the session ended and ctx.Err() when cancelled.
func (d Driver) Run(ctx context.Context, t Ticker, onTick func(session.TickResult, error)) error {
	interval := d.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clock := d.Clock
	if clock == nil {
		clock = session.SystemClock{}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			res, err := t.Tick(ctx, clock.Now())
			if errors.Is(err, session.ErrSessionEnded) {
				return nil
			}
			onTick(res, err)
		}
	}
}
