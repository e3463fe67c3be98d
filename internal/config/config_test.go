package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Category != "all" {
		t.Fatalf("expected default category 'all', got %q", cfg.Category)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Config{
		BaseURL:  "https://tasks.example.test/todo3/",
		DBPath:   "/tmp/memo.db",
		LogLevel: "debug",
		Category: "important",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFillPaths(t *testing.T) {
	cfg := Config{}
	cfg.FillPaths("/home/me/.config/lazymemo/config.json")
	if cfg.DBPath != "/home/me/.config/lazymemo/lazymemo.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.LogPath != "/home/me/.config/lazymemo/lazymemo.log" {
		t.Fatalf("unexpected log path %q", cfg.LogPath)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", cfg.BaseURL)
	}
}
