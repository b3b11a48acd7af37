package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// DefaultSort is the within-group sort applied when --sort is not given.
	// One of: date, name, stars.
	DefaultSort string `json:"default_sort,omitempty"`

	// DefaultFormat is the section format applied when --type is not given.
	// One of: table, list.
	DefaultFormat string `json:"default_format,omitempty"`

	// Username is the GitHub account whose stars are listed, used when
	// --username is not given.
	Username string `json:"username,omitempty"`

	// Repository is the default publish target, used when --repository is
	// not given. Empty means local output.
	Repository string `json:"repository,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultSort:   "date",
		DefaultFormat: "table",
	}
}

// BaseDir returns the application base directory (~/.starred).
func BaseDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".starred"), nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.starred.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values win when non-empty.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DefaultSort = overlay.DefaultSort
	if result.DefaultSort == "" {
		result.DefaultSort = base.DefaultSort
	}

	result.DefaultFormat = overlay.DefaultFormat
	if result.DefaultFormat == "" {
		result.DefaultFormat = base.DefaultFormat
	}

	result.Username = overlay.Username
	if result.Username == "" {
		result.Username = base.Username
	}

	result.Repository = overlay.Repository
	if result.Repository == "" {
		result.Repository = base.Repository
	}

	return result
}
