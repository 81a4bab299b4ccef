package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for one render run. Every field can come from a
// YAML config file and be overridden by a flag.
type Config struct {
	Template string   `yaml:"template"`
	Data     string   `yaml:"data"`
	Props    string   `yaml:"props"`
	Output   string   `yaml:"output"`
	Plugins  []string `yaml:"plugins"`
	Ignore   []string `yaml:"ignore"`
	Each     bool     `yaml:"each"`
	LogLevel string   `yaml:"logLevel"`
}

// DefaultConfig returns the configuration used when no file is given.
// STRIF_LOG_LEVEL overrides the default log level.
func DefaultConfig() Config {
	cfg := Config{LogLevel: "info"}
	if lvl := os.Getenv("STRIF_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Template == "" {
		return fmt.Errorf("template path is required")
	}
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitList turns a comma separated flag value into its non-empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
