// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log level, encoding and destination.
type Config struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `mapstructure:"format"`

	// OutputPath is a log file to write to. Empty means stderr.
	OutputPath string `mapstructure:"output_path"`

	// Quiet drops the stderr output when OutputPath is set, for the
	// terminal UI which owns the screen.
	Quiet bool `mapstructure:"-"`
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// New builds a logger from cfg. An unparseable level falls back to info.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		if cfg.Quiet {
			zc.OutputPaths = nil
			zc.ErrorOutputPaths = nil
			if zc.Encoding == "console" {
				// Colour codes make no sense in a file.
				zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
			}
		}
		zc.OutputPaths = append(zc.OutputPaths, cfg.OutputPath)
		zc.ErrorOutputPaths = append(zc.ErrorOutputPaths, cfg.OutputPath)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
