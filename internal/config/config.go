// Package config reads and writes the finman.yaml application config. The
// account's own settings (auto-save, language) live inside the save file;
// this file only locates the data and controls git integration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config location relative to the working directory.
const DefaultPath = "finman.yaml"

// Config is the top-level finman.yaml configuration.
type Config struct {
	DataFile   string    `yaml:"data_file"`
	LocalesDir string    `yaml:"locales_dir,omitempty"`
	Git        GitConfig `yaml:"git"`
}

// GitConfig controls git integration for the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Default returns the configuration used when no finman.yaml exists.
func Default() *Config {
	return &Config{
		DataFile:   "data/save/finance_save.txt",
		LocalesDir: "config/locales",
		Git: GitConfig{
			AuthorName:  "finman",
			AuthorEmail: "finman@localhost",
		},
	}
}

// Load reads a finman.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DataFile == "" {
		cfg.DataFile = Default().DataFile
	}
	return &cfg, nil
}

// LoadOrDefault reads the config, falling back to defaults when the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
