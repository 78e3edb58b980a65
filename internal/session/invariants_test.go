package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/drdavisdfelix/quiz/internal/questiongen"
)

// flakyGen fails roughly one generation in four.
type flakyGen struct {
	rng   *rand.Rand
	inner scriptedGen
}

func (g *flakyGen) Generate(ctx context.Context, in questiongen.GenerateInput) (*questiongen.Question, error) {
	if g.rng.IntN(4) == 0 {
		in.Ordinals.Next()
		return nil, questiongen.ErrGenerationFailed
	}
	return g.inner.Generate(ctx, in)
}

func TestInvariants_RandomOperations(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		clock := newFakeClock()
		s := New(&flakyGen{rng: rng}, WithClock(clock))
		if err := s.Configure(tfSelection); err != nil {
			t.Fatalf("configure: %v", err)
		}
		for s.Start(context.Background()) != nil {
		}

		lastOrdinal := s.Snapshot().Question.Ordinal
		for step := 0; step < 60; step++ {
			clock.Advance(time.Duration(rng.IntN(40)) * time.Second)

			var err error
			switch rng.IntN(4) {
			case 0:
				_, err = s.Answer(context.Background(), "True")
			case 1:
				_, err = s.Answer(context.Background(), "False")
			case 2:
				_, err = s.Skip(context.Background())
			case 3:
				_, err = s.Tick(context.Background(), clock.Now())
			}
			if err != nil && !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("seed %d step %d: unexpected error %v", seed, step, err)
			}

			v := s.Snapshot()
			history := s.History()
			if v.Total != len(history) {
				t.Fatalf("seed %d step %d: total %d != history %d", seed, step, v.Total, len(history))
			}
			if v.Score > v.Total {
				t.Fatalf("seed %d step %d: score %d > total %d", seed, step, v.Score, v.Total)
			}
			if v.Question.Ordinal < lastOrdinal {
				t.Fatalf("seed %d step %d: ordinal went back from %d to %d", seed, step, lastOrdinal, v.Question.Ordinal)
			}
			lastOrdinal = v.Question.Ordinal

			correct := 0
			for _, r := range history {
				if r.IsCorrect {
					correct++
				}
				if r.UserAnswer == SkippedAnswer && r.TimeTaken != 30.0 {
					t.Fatalf("seed %d: skipped record with time %v", seed, r.TimeTaken)
				}
			}
			if correct != v.Score {
				t.Fatalf("seed %d step %d: score %d but %d correct records", seed, step, v.Score, correct)
			}
		}
	}
}
