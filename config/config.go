// Package config loads the application configuration from YAML, filling in
// defaults for anything the file leaves out. A missing file is not an
// error; it yields the default configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataConfig locates the recipe dataset and the persisted vector index.
type DataConfig struct {
	CSVPath   string `yaml:"csv_path"`
	IndexPath string `yaml:"index_path"`
	Watch     bool   `yaml:"watch"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI embedder.
type OpenAIEmbedderConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"` // "tfidf" or "openai"
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// RetrieverConfig tunes the similarity search fan-out.
type RetrieverConfig struct {
	K int `yaml:"k"`
}

// ModelConfig selects and configures the chat model provider.
type ModelConfig struct {
	Provider    string  `yaml:"provider"` // "openai", "anthropic" or "mock"
	Name        string  `yaml:"name"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// AgentConfig bounds the conversational turn graph.
type AgentConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// SessionConfig tunes conversation state retention.
type SessionConfig struct {
	MemoryWindow int    `yaml:"memory_window"`
	TTLMins      int    `yaml:"ttl_mins"`
	DefaultMood  string `yaml:"default_mood"` // "baik", "galak" or "random"
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data      DataConfig      `yaml:"data"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Retriever RetrieverConfig `yaml:"retriever"`
	Model     ModelConfig     `yaml:"model"`
	Agent     AgentConfig     `yaml:"agent"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config from path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
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

// Default returns the configuration used when no file is present.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Data.CSVPath == "" {
		cfg.Data.CSVPath = "database/df_resep_cleaned.csv"
	}
	if cfg.Data.IndexPath == "" {
		cfg.Data.IndexPath = "database/recipe_index.json"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}
	if cfg.Retriever.K == 0 {
		cfg.Retriever.K = 4
	}
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = "openai"
	}
	if cfg.Model.APIKeyEnv == "" {
		switch cfg.Model.Provider {
		case "anthropic":
			cfg.Model.APIKeyEnv = "ANTHROPIC_API_KEY"
		default:
			cfg.Model.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = 0.3
	}
	if cfg.Model.TimeoutSecs == 0 {
		cfg.Model.TimeoutSecs = 60
	}
	if cfg.Agent.MaxSteps == 0 {
		cfg.Agent.MaxSteps = 6
	}
	if cfg.Session.MemoryWindow == 0 {
		cfg.Session.MemoryWindow = 8
	}
	if cfg.Session.TTLMins == 0 {
		cfg.Session.TTLMins = 120
	}
	if cfg.Session.DefaultMood == "" {
		cfg.Session.DefaultMood = "baik"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func validate(cfg *AppConfig) error {
	switch cfg.Embedder.Type {
	case "tfidf", "openai":
	default:
		return fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
	switch cfg.Model.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
	switch cfg.Session.DefaultMood {
	case "baik", "galak", "random":
	default:
		return fmt.Errorf("unknown default mood %q", cfg.Session.DefaultMood)
	}
	return nil
}
