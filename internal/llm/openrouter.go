package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	openRouterAppTitle   = "quizgame"
	openRouterAppReferer = "https://github.com/drdavisdfelix/quiz"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API. Model IDs
// are vendor-qualified ("google/gemini-2.0-flash-exp") and passed through.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// attributionDoer adds OpenRouter's app attribution headers to every call.
type attributionDoer struct {
	inner openai.HTTPDoer
}

func (d attributionDoer) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("HTTP-Referer", openRouterAppReferer)
	req.Header.Set("X-Title", openRouterAppTitle)
	return d.inner.Do(req)
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL
	if config.BaseURL == "" {
		config.BaseURL = defaultOpenRouterBaseURL
	}
	config.HTTPClient = attributionDoer{inner: &http.Client{}}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}}, nil
}
