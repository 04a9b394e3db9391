// Package config loads engine configuration from defaults, an optional YAML
// file, and GOALVALUE_-prefixed environment variables, in that precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nicoh/go-goal-value/internal/engine"
	"github.com/nicoh/go-goal-value/internal/model"
)

// Config holds the engine's tunables.
type Config struct {
	// DBPath locates the SQLite database file.
	DBPath string `koanf:"db_path"`

	// WindowSize is the smoothing window in minutes. Even values are coerced
	// up to the next odd value by the smoothing stage.
	WindowSize int `koanf:"window_size"`

	// Version tags run-metadata records.
	Version string `koanf:"version"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DBPath:     filepath.Join(home, ".goalvalue", "goalvalue.db"),
		WindowSize: engine.DefaultWindowSize,
		Version:    model.DefaultVersion,
		LogLevel:   "info",
	}
}

// Load layers an optional YAML file and GOALVALUE_ env vars over the
// defaults. An empty path skips the file layer; GOALVALUE_CONFIG is honored
// when the path is empty.
func Load(path string) (Config, error) {
	cfg := Default()

	k := koanf.New(".")
	if path == "" {
		path = os.Getenv("GOALVALUE_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// GOALVALUE_WINDOW_SIZE -> window_size, etc.
	envProvider := env.Provider("GOALVALUE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "goalvalue_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.WindowSize < 1 {
		return cfg, fmt.Errorf("window_size must be >= 1, got %d", cfg.WindowSize)
	}
	return cfg, nil
}

// NewLogger builds a zap logger at the configured level.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
