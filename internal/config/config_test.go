package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultSort != "date" {
		t.Fatalf("DefaultSort = %q, want %q", cfg.DefaultSort, "date")
	}
	if cfg.DefaultFormat != "table" {
		t.Fatalf("DefaultFormat = %q, want %q", cfg.DefaultFormat, "table")
	}
	if cfg.Username != "" {
		t.Fatalf("Username = %q, want empty", cfg.Username)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"default_sort": "stars", "username": "octocat"}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultSort != "stars" {
		t.Fatalf("DefaultSort = %q, want %q", cfg.DefaultSort, "stars")
	}
	if cfg.Username != "octocat" {
		t.Fatalf("Username = %q, want %q", cfg.Username, "octocat")
	}
	// Unset fields keep defaults.
	if cfg.DefaultFormat != "table" {
		t.Fatalf("DefaultFormat = %q, want %q", cfg.DefaultFormat, "table")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := &Config{DefaultSort: "date", DefaultFormat: "table", Repository: "awesome-stars"}
	overlay := &Config{DefaultSort: "name"}

	merged := Merge(base, overlay)

	if merged.DefaultSort != "name" {
		t.Errorf("DefaultSort = %q, want %q", merged.DefaultSort, "name")
	}
	if merged.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want %q", merged.DefaultFormat, "table")
	}
	if merged.Repository != "awesome-stars" {
		t.Errorf("Repository = %q, want %q", merged.Repository, "awesome-stars")
	}
}
