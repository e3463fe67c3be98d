package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const DefaultBaseURL = "http://localhost:3000/todo/"

type Config struct {
	BaseURL  string `json:"base_url"`
	DBPath   string `json:"db_path"`
	LogPath  string `json:"log_path"`
	LogLevel string `json:"log_level"`
	Category string `json:"category"`
}

func Default() Config {
	return Config{BaseURL: DefaultBaseURL, LogLevel: "info", Category: "all"}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazymemo", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// FillPaths places the journal and log next to the config file when unset.
func (c *Config) FillPaths(configPath string) {
	dir := filepath.Dir(configPath)
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "lazymemo.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, "lazymemo.log")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
}
