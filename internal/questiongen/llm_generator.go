package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate runs up to MaxAttempts request/parse rounds. Every round
// consumes an ordinal and leaves the prompt, the reply and the "used"
// notice in the conversation, whether or not the reply parsed.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)
	conv := input.Conversation
	qt := input.Selection.QuestionType

	var lastErr error
	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		ordinal := input.Ordinals.Next()

		mark := conv.Len() - 1
		conv.Append(llm.RoleUser, buildUserMessage(input.Selection, ordinal))

		text, err := g.request(ctx, conv)
		if err != nil {
			// Leave no dangling prompt behind so a retry starts clean.
			conv.truncate(mark)
			return nil, err
		}

		conv.Append(llm.RoleAssistant, text)
		conv.Append(llm.RoleUser, usedNotice)
		conv.Trim()

		q, err := Parse(text, qt)
		if err != nil {
			g.logger.Warn("regenerating unparseable question",
				zap.Int("attempt", attempt),
				zap.Int("ordinal", ordinal),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if q.LenientMatch {
			g.logger.Warn("correct answer matched no option, using the first",
				zap.Int("ordinal", ordinal),
				zap.String("correct", q.CorrectAnswer),
			)
		}

		q.Ordinal = ordinal
		return q, nil
	}

	return nil, &GenerationExhaustedError{Attempts: g.config.MaxAttempts, Last: lastErr}
}

func (g *LLMGenerator) request(ctx context.Context, conv *Conversation) (string, error) {
	reqCtx := ctx
	if g.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, g.config.RequestTimeout)
		defer cancel()
	}

	resp, err := g.provider.Generate(reqCtx, llm.Request{
		System:      conv.System(),
		Messages:    conv.Messages(),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		if ctx.Err() == nil && errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s: %w", ErrGenerationTimeout, g.config.RequestTimeout, err)
		}
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return strings.TrimSpace(resp.Text), nil
}
