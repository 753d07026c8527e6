package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt      = "user> "
	DefaultHistoryFile = ".mal_history"
)

type Config struct {
	Prompt      string   `yaml:"prompt"`
	HistoryFile string   `yaml:"history_file"`
	LogLevel    string   `yaml:"log_level"`
	Prelude     []string `yaml:"prelude"`
}

func Default() *Config {
	history := DefaultHistoryFile
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, DefaultHistoryFile)
	}
	return &Config{
		Prompt:      DefaultPrompt,
		HistoryFile: history,
		LogLevel:    "warn",
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error; an empty path just returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := Parse(raw, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes raw YAML into cfg, keeping cfg's values for absent keys.
func Parse(raw []byte, cfg *Config) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return err
	}
	if _, err := cfg.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
}
