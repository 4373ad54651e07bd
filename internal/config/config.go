package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for jsoncmp
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
}

// LogConfig controls the run log file
type LogConfig struct {
	// File is the append-only log destination.
	File string `yaml:"file"`
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Disabled turns the run log off entirely.
	Disabled bool `yaml:"disabled"`
}

// ReportConfig controls report rendering
type ReportConfig struct {
	// MaxValueLength truncates rendered values in difference lines;
	// zero disables truncation.
	MaxValueLength int `yaml:"max_value_length"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Log: LogConfig{
			File:  "jsoncmp.log",
			Level: "info",
		},
		Report: ReportConfig{
			MaxValueLength: 120,
		},
	}
}

// SlogLevel maps the configured level name to a slog.Level, defaulting to
// info for anything unrecognized.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
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

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults so a partial file only overrides what it names.
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.Log.Level)
	}
	if c.Report.MaxValueLength < 0 {
		return fmt.Errorf("report.max_value_length must not be negative")
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncmp.yml", ".jsoncmp.yaml", "jsoncmp.yml", "jsoncmp.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}
