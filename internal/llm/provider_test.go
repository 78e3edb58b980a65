package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "first reply", Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "second reply"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != "first reply" {
		t.Fatalf("expected 'first reply', got %q", resp1.Text)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text != "second reply" {
		t.Fatalf("expected 'second reply', got %q", resp2.Text)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "x"})

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_HonoursCancelledContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "never"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDemoProvider_ProducesParsableShapes(t *testing.T) {
	demo := NewDemoProvider()

	mc, err := demo.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Generate 1 unique Multiple Choice question"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Question:", "A) ", "D) ", "Correct: A"} {
		if !strings.Contains(mc.Text, want) {
			t.Errorf("multiple choice demo missing %q:\n%s", want, mc.Text)
		}
	}

	tf, err := demo.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "q1"},
			{Role: RoleAssistant, Content: "a1"},
			{Role: RoleUser, Content: "Generate 1 unique True/False question"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tf.Text, "\nTrue\nFalse\n") || !strings.HasSuffix(tf.Text, "Correct: False") {
		t.Errorf("unexpected true/false demo:\n%s", tf.Text)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestMergeTurns(t *testing.T) {
	in := []Message{
		{Role: RoleAssistant, Content: "orphan"},
		{Role: RoleUser, Content: "used"},
		{Role: RoleUser, Content: "next"},
		{Role: RoleAssistant, Content: "reply"},
	}
	got := mergeTurns(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d: %+v", len(got), got)
	}
	if got[0].Role != RoleUser || got[0].Content != "used\n\nnext" {
		t.Errorf("first turn = %+v", got[0])
	}
	if got[1].Role != RoleAssistant {
		t.Errorf("second turn role = %s", got[1].Role)
	}
	if in[1].Content != "used" {
		t.Error("mergeTurns mutated its input")
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := SessionIDFrom(ctx); id != "" {
		t.Fatalf("expected empty session id, got %q", id)
	}

	ctx = WithSessionID(WithPurpose(ctx, PurposeQuestion), "s-1")
	if p := PurposeFrom(ctx); p != PurposeQuestion {
		t.Fatalf("expected %q, got %q", PurposeQuestion, p)
	}
	if id := SessionIDFrom(ctx); id != "s-1" {
		t.Fatalf("expected 's-1', got %q", id)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "ollama needs a model",
			cfg:     Config{Provider: "ollama"},
			wantErr: true,
		},
		{
			name:    "ollama with model",
			cfg:     Config{Provider: "ollama", Ollama: OllamaConfig{Model: "llama3.2"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig_PrefersOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("got provider %q key %q", cfg.Provider, cfg.OpenAI.APIKey)
	}
}

func TestDemoProvider_NumbersFromPrompt(t *testing.T) {
	demo := NewDemoProvider()

	// A trimmed window holding two past turns, asking for question 7.
	resp, err := demo.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "This is question number 5, Multiple Choice"},
			{Role: RoleAssistant, Content: "a5"},
			{Role: RoleUser, Content: "This is question number 6, Multiple Choice"},
			{Role: RoleAssistant, Content: "a6"},
			{Role: RoleUser, Content: "This is question number 7, Multiple Choice"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Text, "demo answer 7?") || !strings.HasSuffix(resp.Text, "Correct: C") {
		t.Errorf("unexpected demo text:\n%s", resp.Text)
	}
}

func TestNewProvider_MockIsWrapped(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry middleware on the outside, got %T", p)
	}
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "Multiple Choice"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.Text, "Question:") {
		t.Fatalf("unexpected demo text %q", resp.Text)
	}
}
