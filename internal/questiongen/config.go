package questiongen

import "time"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxAttempts bounds how many unparseable replies are tolerated
	// before giving up with ErrGenerationExhausted.
	MaxAttempts int `mapstructure:"max_attempts"`

	// RequestTimeout caps a single provider call, retries included.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature controls LLM output randomness.
	Temperature float64 `mapstructure:"temperature"`
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    5,
		RequestTimeout: 30 * time.Second,
		MaxTokens:      400,
		Temperature:    1.0,
	}
}
