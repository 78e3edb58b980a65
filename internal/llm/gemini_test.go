package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleAssistant, Content: "left over from trimming"},
		{Role: RoleUser, Content: "prompt one"},
		{Role: RoleAssistant, Content: "question one"},
		{Role: RoleUser, Content: "used notice"},
		{Role: RoleUser, Content: "prompt two"},
	})

	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	wantRoles := []string{genai.RoleUser, genai.RoleModel, genai.RoleUser}
	for i, c := range contents {
		if c.Role != wantRoles[i] {
			t.Errorf("contents[%d].Role = %q, want %q", i, c.Role, wantRoles[i])
		}
	}
	if got := contents[2].Parts[0].Text; got != "used notice\n\nprompt two" {
		t.Errorf("merged text = %q", got)
	}
}

func TestMapGeminiStopReason(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}},
	}
	if got := mapGeminiStopReason(resp); got != "max_tokens" {
		t.Fatalf("expected 'max_tokens', got %q", got)
	}
	if got := mapGeminiStopReason(&genai.GenerateContentResponse{}); got != "end" {
		t.Fatalf("expected 'end', got %q", got)
	}
}
