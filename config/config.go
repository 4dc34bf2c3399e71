// Package config loads the application configuration from YAML.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// DatabaseConfig holds the storage settings.
type DatabaseConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// AIConfig holds the model tier settings.
// APIKeyEnv names the environment variable the key is read from, so the
// key itself never lands in a config file.
type AIConfig struct {
	EmbeddingHost  string `yaml:"embedding_host"`
	ChatHost       string `yaml:"chat_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	ExplainRPM     int    `yaml:"explain_rpm"`
	MaxAttempts    int    `yaml:"max_attempts"`
}

// SearchConfig holds the ranking settings.
type SearchConfig struct {
	MaxHits int `yaml:"max_hits"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
	Search   SearchConfig   `yaml:"search"`
}

// APIKey resolves the model tier API key from the configured environment
// variable. Returns "none" when unset, which suits local OpenAI-compatible
// services that skip authentication.
func (c *AIConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return "none"
	}
	if key := os.Getenv(c.APIKeyEnv); key != "" {
		return key
	}
	return "none"
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/caselens/config.yaml.
// If neither exists, it writes defaults to ~/.config/caselens/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "caselens", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:        ":8080",
			MaxUploadMB: 10,
		},
		Database: DatabaseConfig{
			Path: "caselens.db",
		},
		AI: AIConfig{
			EmbeddingHost:  "http://localhost:11434",
			ChatHost:       "http://localhost:11434",
			EmbeddingModel: "embeddinggemma",
			ChatModel:      "qwen2.5:3b",
			APIKeyEnv:      "CASELENS_API_KEY",
			ExplainRPM:     10,
			MaxAttempts:    3,
		},
		Search: SearchConfig{
			MaxHits: 5,
		},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = def.Server.MaxUploadMB
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = def.AI.EmbeddingHost
	}
	if cfg.AI.ChatHost == "" {
		cfg.AI.ChatHost = def.AI.ChatHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = def.AI.EmbeddingModel
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = def.AI.ChatModel
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = def.AI.APIKeyEnv
	}
	if cfg.AI.ExplainRPM == 0 {
		cfg.AI.ExplainRPM = def.AI.ExplainRPM
	}
	if cfg.AI.MaxAttempts == 0 {
		cfg.AI.MaxAttempts = def.AI.MaxAttempts
	}
	if cfg.Search.MaxHits == 0 {
		cfg.Search.MaxHits = def.Search.MaxHits
	}
}
