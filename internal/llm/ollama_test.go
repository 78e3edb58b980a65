package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestOllamaProvider(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{Model: "llama3.2", ServerURL: server.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestOllamaProvider_HappyPath(t *testing.T) {
	var gotPath string
	var gotMessages int
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body struct {
			Messages []map[string]any `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotMessages = len(body.Messages)

		w.Header().Set("Content-Type", "application/x-ndjson")
		json.NewEncoder(w).Encode(map[string]any{
			"model":             "llama3.2",
			"message":           map[string]any{"role": "assistant", "content": "Question: Sky is blue?\nTrue\nFalse\nCorrect: True"},
			"done":              true,
			"prompt_eval_count": 12,
			"eval_count":        8,
		})
	}

	p := newTestOllamaProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:      "You are a helpful assistant that generates quiz questions.",
		Messages:    []Message{{Role: RoleUser, Content: "Generate a question."}},
		Temperature: 1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/chat" {
		t.Fatalf("expected /api/chat, got %q", gotPath)
	}
	if gotMessages != 2 {
		t.Fatalf("expected system and user messages, got %d", gotMessages)
	}
	if resp.Text != "Question: Sky is blue?\nTrue\nFalse\nCorrect: True" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 8 || resp.Usage.TotalTokens != 20 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.Model != "llama3.2" {
		t.Fatalf("expected model 'llama3.2', got %q", resp.Model)
	}
}

func TestOllamaProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"error": "model not found"})
	}

	p := newTestOllamaProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "test"}},
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestNewOllamaProvider_RequiresModel(t *testing.T) {
	if _, err := NewOllamaProvider(OllamaConfig{}); err == nil {
		t.Fatal("expected error for empty model")
	}
}
