package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drdavisdfelix/quiz/internal/session"
)

type countingTicker struct {
	mu      sync.Mutex
	calls   int
	endAt   int
	failAt  int
	lastNow time.Time
}

func (c *countingTicker) Tick(_ context.Context, now time.Time) (session.TickResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.lastNow = now
	switch {
	case c.endAt > 0 && c.calls >= c.endAt:
		return session.TickResult{}, session.ErrSessionEnded
	case c.calls == c.failAt:
		return session.TickResult{}, session.ErrGenerationFailed
	}
	return session.TickResult{Text: session.FormatElapsed(time.Duration(c.calls) * time.Second)}, nil
}

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func TestRun_StopsWhenSessionEnds(t *testing.T) {
	tk := &countingTicker{endAt: 4, failAt: 2}
	clock := fixedClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}

	var results []string
	var errs []error
	err := Driver{Interval: time.Millisecond, Clock: clock}.Run(context.Background(), tk,
		func(res session.TickResult, err error) {
			results = append(results, res.Text)
			errs = append(errs, err)
		})
	if err != nil {
		t.Fatalf("Run returned %v, want nil", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 callbacks before the end, got %d", len(results))
	}
	if results[0] != "1.00 seconds" {
		t.Errorf("first result = %q", results[0])
	}
	if !errors.Is(errs[1], session.ErrGenerationFailed) {
		t.Errorf("expected the failed skip to be reported, got %v", errs[1])
	}
	if !tk.lastNow.Equal(clock.t) {
		t.Errorf("tick time = %v, want the clock's %v", tk.lastNow, clock.t)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	tk := &countingTicker{}
	err := Driver{Interval: 5 * time.Millisecond}.Run(ctx, tk, func(session.TickResult, error) {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	tk.mu.Lock()
	defer tk.mu.Unlock()
	if tk.calls == 0 {
		t.Error("expected at least one tick")
	}
}

func TestRun_DrivesRealSession(t *testing.T) {
	s := session.New(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var got []string
	_ = Driver{Interval: 2 * time.Millisecond}.Run(ctx, s, func(res session.TickResult, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		got = append(got, res.Text)
	})
	for _, text := range got {
		if text != "0.00 seconds" {
			t.Fatalf("idle session should read zero, got %q", text)
		}
	}
}
