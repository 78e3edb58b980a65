package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drdavisdfelix/quiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "quizgame",
	Short:        "LLM-generated trivia quizzes in the terminal",
	Long:         "quizgame: pick a topic, a difficulty and a format, then answer timed questions written by a language model.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured store path, then QUIZ_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

// openStore loads the configuration only to locate the database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// withStore runs fn against the configured database and closes it after.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, st)
}
