package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider implements Provider against a local Ollama server through
// langchaingo. Useful for playing offline.
type OllamaProvider struct {
	client llms.Model
	model  string
}

// NewOllamaProvider creates a provider for the given Ollama model.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client, model: cfg.Model}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	content := make([]llms.MessageContent, 0, len(req.Messages)+1)
	if req.System != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	var opts []llms.CallOption
	if req.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := p.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return nil, mapOllamaError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no content in Ollama response")}
	}

	choice := resp.Choices[0]
	usage := Usage{
		InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
	}
	usage.TotalTokens = usage.InputTokens + usage.OutputTokens

	return &Response{
		Text:       choice.Content,
		Usage:      usage,
		Model:      p.model,
		StopReason: "end",
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func mapOllamaError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ErrProviderUnavailable{Err: err}
}
