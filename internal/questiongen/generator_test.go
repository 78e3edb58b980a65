package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/drdavisdfelix/quiz/internal/llm"
	"github.com/drdavisdfelix/quiz/internal/taxonomy"
)

func testSelection(qt taxonomy.QuestionType) taxonomy.Selection {
	return taxonomy.Selection{
		GeneralTopic: "Computer Science",
		SubTopic:     "DBMS",
		Difficulty:   "Medium",
		QuestionType: qt,
	}
}

func newInput(qt taxonomy.QuestionType) GenerateInput {
	return GenerateInput{
		Selection:    testSelection(qt),
		Conversation: NewConversation(SystemPrompt, 10),
		Ordinals:     &Counter{},
	}
}

func mcReply(n int) string {
	return fmt.Sprintf("Question: DBMS question %d?\nA) one\nB) two\nC) three\nD) four\nCorrect: C", n)
}

func TestGenerate_MultipleChoice(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  " + mcReply(1) + "\n"})
	gen := New(mock, DefaultConfig(), nil)
	input := newInput(taxonomy.MultipleChoice)

	q, err := gen.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Prompt != "DBMS question 1?" {
		t.Errorf("prompt = %q", q.Prompt)
	}
	if q.CorrectAnswer != "C) three" {
		t.Errorf("correct = %q", q.CorrectAnswer)
	}
	if q.Ordinal != 1 || input.Ordinals.Last() != 1 {
		t.Errorf("ordinal = %d, counter = %d", q.Ordinal, input.Ordinals.Last())
	}
	if q.Raw != mcReply(1) {
		t.Errorf("raw text not trimmed: %q", q.Raw)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: mcReply(1)})
	cfg := DefaultConfig()
	gen := New(mock, cfg, nil)
	input := newInput(taxonomy.MultipleChoice)

	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.System != SystemPrompt {
		t.Errorf("system = %q", req.System)
	}
	if req.Temperature != 1.0 || req.MaxTokens != cfg.MaxTokens {
		t.Errorf("temperature/max tokens = %v/%d", req.Temperature, req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected a single user prompt, got %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[0].Content, "question number 1") {
		t.Errorf("prompt = %q", req.Messages[0].Content)
	}

	// Afterwards: prompt, reply, used notice.
	msgs := input.Conversation.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 exchange messages, got %d", len(msgs))
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[1].Content != mcReply(1) {
		t.Errorf("assistant message = %+v", msgs[1])
	}
	if msgs[2].Role != llm.RoleUser || msgs[2].Content != usedNotice {
		t.Errorf("notice message = %+v", msgs[2])
	}
}

func TestGenerate_RetriesParseFailures(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "I cannot do that."},
		llm.MockResponse{Text: "Question: Q\nA) 1\nB) 2\nCorrect: A"},
		llm.MockResponse{Text: mcReply(3)},
	)
	gen := New(mock, DefaultConfig(), nil)
	input := newInput(taxonomy.MultipleChoice)

	q, err := gen.Generate(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
	// Every attempt consumes an ordinal.
	if q.Ordinal != 3 || input.Ordinals.Last() != 3 {
		t.Errorf("ordinal = %d, counter = %d, want 3", q.Ordinal, input.Ordinals.Last())
	}
	if !strings.Contains(mock.Calls[2].Messages[len(mock.Calls[2].Messages)-1].Content, "question number 3") {
		t.Error("third attempt should ask for question number 3")
	}
}

func TestGenerate_Exhausted(t *testing.T) {
	var responses []llm.MockResponse
	for i := 0; i < 10; i++ {
		responses = append(responses, llm.MockResponse{Text: "garbage"})
	}
	mock := llm.NewMockProvider(responses...)
	cfg := DefaultConfig()
	gen := New(mock, cfg, nil)
	input := newInput(taxonomy.TrueFalse)

	_, err := gen.Generate(context.Background(), input)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("expected ErrGenerationExhausted, got %v", err)
	}
	if !errors.Is(err, ErrParseFailure) {
		t.Error("expected the last parse failure to be wrapped")
	}
	var ge *GenerationExhaustedError
	if !errors.As(err, &ge) || ge.Attempts != cfg.MaxAttempts {
		t.Fatalf("expected *GenerationExhaustedError with %d attempts, got %v", cfg.MaxAttempts, err)
	}
	if mock.CallCount() != cfg.MaxAttempts {
		t.Errorf("expected %d calls, got %d", cfg.MaxAttempts, mock.CallCount())
	}
	if input.Ordinals.Last() != cfg.MaxAttempts {
		t.Errorf("ordinal = %d, want %d", input.Ordinals.Last(), cfg.MaxAttempts)
	}
}

func TestGenerate_ProviderErrorRollsBackPrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: mcReply(1)},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	gen := New(mock, DefaultConfig(), nil)
	input := newInput(taxonomy.MultipleChoice)

	if _, err := gen.Generate(context.Background(), input); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	before := input.Conversation.Len()

	_, err := gen.Generate(context.Background(), input)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Error("expected provider error to stay reachable")
	}
	if input.Conversation.Len() != before {
		t.Errorf("conversation length = %d, want %d", input.Conversation.Len(), before)
	}
	if input.Ordinals.Last() != 2 {
		t.Errorf("failed attempt should still consume an ordinal, got %d", input.Ordinals.Last())
	}
}

// stallingProvider blocks until the request context is done.
type stallingProvider struct{}

func (stallingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stallingProvider) ModelID() string { return "stall" }

func TestGenerate_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	gen := New(stallingProvider{}, cfg, nil)

	_, err := gen.Generate(context.Background(), newInput(taxonomy.MultipleChoice))
	if !errors.Is(err, ErrGenerationTimeout) {
		t.Fatalf("expected ErrGenerationTimeout, got %v", err)
	}
}

func TestGenerate_CallerCancellationIsNotATimeout(t *testing.T) {
	gen := New(stallingProvider{}, DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, newInput(taxonomy.MultipleChoice))
	if errors.Is(err, ErrGenerationTimeout) {
		t.Fatal("cancellation reported as timeout")
	}
	if !errors.Is(err, ErrGenerationFailed) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ErrGenerationFailed wrapping context.Canceled, got %v", err)
	}
}

func TestGenerate_ConversationStaysBounded(t *testing.T) {
	mock := &llm.MockProvider{Fallback: func(req llm.Request) string {
		return mcReply(len(req.Messages))
	}}
	gen := New(mock, DefaultConfig(), nil)
	input := newInput(taxonomy.MultipleChoice)

	for i := 1; i <= 12; i++ {
		q, err := gen.Generate(context.Background(), input)
		if err != nil {
			t.Fatalf("generation %d: %v", i, err)
		}
		if q.Ordinal != i {
			t.Fatalf("generation %d returned ordinal %d", i, q.Ordinal)
		}
		if n := input.Conversation.Len(); n > 11 {
			t.Fatalf("conversation grew to %d messages", n)
		}
	}
	if input.Ordinals.Last() != 12 {
		t.Errorf("ordinal = %d, want 12", input.Ordinals.Last())
	}
	if got := mock.Calls[11].System; got != SystemPrompt {
		t.Errorf("system prompt lost after trimming: %q", got)
	}
}

func TestGenerate_PurposeIsTagged(t *testing.T) {
	var purpose string
	p := providerFunc(func(ctx context.Context, _ llm.Request) (*llm.Response, error) {
		purpose = llm.PurposeFrom(ctx)
		return &llm.Response{Text: mcReply(1)}, nil
	})
	gen := New(p, DefaultConfig(), nil)

	if _, err := gen.Generate(context.Background(), newInput(taxonomy.MultipleChoice)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purpose != llm.PurposeQuestion {
		t.Errorf("purpose = %q, want %q", purpose, llm.PurposeQuestion)
	}
}

type providerFunc func(ctx context.Context, req llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }
