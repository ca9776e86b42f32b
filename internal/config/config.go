// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/hunter-protocol/internal/journal"
	"github.com/rcliao/hunter-protocol/internal/store"
)

// Config controls where saves live and how loudly the CLI logs.
type Config struct {
	Home     string `env:"HOME"`
	LogLevel string `env:"HUNTER_LOG_LEVEL" envDefault:"warn"`
	Journal  bool   `env:"HUNTER_JOURNAL"   envDefault:"true"`
	Catalog  string `env:"HUNTER_CATALOG"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// JournalPath returns the journal database path next to the save file.
func (c Config) JournalPath() (string, error) {
	save, err := store.ResolvePath(c.Home)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(save), journal.FileName), nil
}

// NewLogger builds a console logger at the configured level writing to w.
func (c Config) NewLogger(w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	)
	return zap.New(core), nil
}
