package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/app"
	"github.com/drdavisdfelix/quiz/internal/config"
	"github.com/drdavisdfelix/quiz/internal/llm"
	"github.com/drdavisdfelix/quiz/internal/logging"
	"github.com/drdavisdfelix/quiz/internal/questiongen"
	"github.com/drdavisdfelix/quiz/internal/recorder"
	"github.com/drdavisdfelix/quiz/internal/screens/quiz"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/store"
)

// env is everything a host needs to build quiz sessions.
type env struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	gen      questiongen.Generator
	recorder session.Recorder
	answers  session.AnswerSink
	demo     bool
	closers  []func() error
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// newEnv loads configuration and opens the store, the LLM provider and
// the recorders. quiet routes logs to a file so the TUI keeps the screen.
func newEnv(cmd *cobra.Command, quiet bool) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	if quiet {
		cfg.Log.Quiet = true
		if cfg.Log.OutputPath == "" {
			cfg.Log.OutputPath = filepath.Join(filepath.Dir(dbPath), "quizgame.log")
		}
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		logger.Warn("LLM provider not configured, using demo questions", zap.Error(err))
		cfg.LLM.Provider = "mock"
	}
	rt := &env{cfg: cfg, logger: logger, store: st, demo: cfg.LLM.Provider == "mock"}
	rt.closers = append(rt.closers, st.Close)

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.gen = questiongen.New(provider, cfg.GeneratorConfig(), logger)

	local := recorder.NewStoreRecorder(st.SessionRepo(), st.EventRepo(), logger)
	rt.answers = local
	rt.recorder = local
	if cfg.Kafka.Enabled() {
		kafka := recorder.NewKafkaRecorder(cfg.Kafka, logger)
		rt.closers = append(rt.closers, kafka.Close)
		rt.recorder = recorder.NewMulti(local, kafka)
		logger.Info("publishing sessions to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	return rt, nil
}

// NewSession builds an idle session wired to the shared generator and recorders.
func (rt *env) NewSession() *session.Session {
	return session.New(rt.gen,
		session.WithConfig(rt.cfg.SessionConfig()),
		session.WithRecorder(rt.recorder),
		session.WithAnswerSink(rt.answers),
		session.WithLogger(rt.logger),
	)
}

// Close releases everything newEnv opened, in reverse order.
func (rt *env) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	rt.logger.Sync()
	return errors.Join(errs...)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := newEnv(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	if rt.demo {
		fmt.Fprintln(os.Stderr, "No LLM API key found; playing with demo questions.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.Run(ctx, app.Options{
		Session:     rt.NewSession(),
		Sessions:    rt.store.SessionRepo(),
		Events:      rt.store.EventRepo(),
		Quiz:        quiz.Options{QuestionTimeout: rt.cfg.Quiz.QuestionTimeout},
		DemoMode:    rt.demo,
		SkipWelcome: skip,
		Logger:      rt.logger,
	})
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")
}
