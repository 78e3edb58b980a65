// Package config loads quizgame settings from defaults, an optional YAML
// file, a .env file and QUIZ_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/drdavisdfelix/quiz/internal/llm"
	"github.com/drdavisdfelix/quiz/internal/logging"
	"github.com/drdavisdfelix/quiz/internal/questiongen"
	"github.com/drdavisdfelix/quiz/internal/recorder"
	"github.com/drdavisdfelix/quiz/internal/session"
)

// EnvPrefix prefixes every environment override, e.g. QUIZ_LLM_PROVIDER.
const EnvPrefix = "QUIZ"

// Config is the whole application configuration.
type Config struct {
	LLM    llm.Config           `mapstructure:"llm"`
	Quiz   QuizConfig           `mapstructure:"quiz"`
	Store  StoreConfig          `mapstructure:"store"`
	Log    logging.Config       `mapstructure:"log"`
	Server ServerConfig         `mapstructure:"server"`
	Kafka  recorder.KafkaConfig `mapstructure:"kafka"`
}

// QuizConfig holds the session and generation tunables.
type QuizConfig struct {
	QuestionTimeout time.Duration `mapstructure:"question_timeout"`
	MaxAttempts     int           `mapstructure:"max_attempts"`
	ContextWindow   int           `mapstructure:"context_window"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// StoreConfig locates the SQLite database. An empty Path means the
// default location under the user's data directory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	CookieSecret string        `mapstructure:"cookie_secret"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	gen := questiongen.DefaultConfig()
	return Config{
		LLM: llm.DefaultConfig(),
		Quiz: QuizConfig{
			QuestionTimeout: session.DefaultConfig().QuestionTimeout,
			MaxAttempts:     gen.MaxAttempts,
			ContextWindow:   session.DefaultConfig().ContextWindow,
			RequestTimeout:  gen.RequestTimeout,
		},
		Log: logging.DefaultConfig(),
		Server: ServerConfig{
			Addr:         ":8080",
			TickInterval: 100 * time.Millisecond,
		},
		Kafka: recorder.KafkaConfig{
			Topic:        "quiz-sessions",
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment apply. When the selected LLM provider has
// no key, the provider is picked from the conventional *_API_KEY variables.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, "", reflect.ValueOf(Default()))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(); ok {
			mergeDiscovered(&cfg.LLM, found)
		}
	}
	return cfg, nil
}

// mergeDiscovered switches to the discovered provider, keeping any model
// and tuning already configured.
func mergeDiscovered(dst *llm.Config, found llm.Config) {
	dst.Provider = found.Provider
	switch found.Provider {
	case "openai":
		dst.OpenAI.APIKey = found.OpenAI.APIKey
	case "gemini":
		dst.Gemini.APIKey = found.Gemini.APIKey
	case "anthropic":
		dst.Anthropic.APIKey = found.Anthropic.APIKey
	case "openrouter":
		dst.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
}

// setDefaults registers every leaf of the default struct so that
// AutomaticEnv can override keys that no file mentions.
func setDefaults(v *viper.Viper, prefix string, val reflect.Value) {
	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" || tag == "-" || !f.IsExported() {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		fv := val.Field(i)
		if fv.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Time{}) {
			setDefaults(v, key, fv)
			continue
		}
		v.SetDefault(key, fv.Interface())
	}
}

// SessionConfig returns the session tunables.
func (c Config) SessionConfig() session.Config {
	return session.Config{
		QuestionTimeout: c.Quiz.QuestionTimeout,
		ContextWindow:   c.Quiz.ContextWindow,
	}
}

// GeneratorConfig returns the question generator tunables.
func (c Config) GeneratorConfig() questiongen.Config {
	return questiongen.Config{
		MaxAttempts:    c.Quiz.MaxAttempts,
		RequestTimeout: c.Quiz.RequestTimeout,
		MaxTokens:      c.LLM.MaxTokens,
		Temperature:    c.LLM.Temperature,
	}
}
