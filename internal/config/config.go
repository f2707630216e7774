// Package config loads consentlens configuration from YAML.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds consentlens configuration.
type Config struct {
	Service     ServiceConfig `yaml:"service"`
	Permissions []string      `yaml:"permissions"`
	Server      ServerConfig  `yaml:"server"`
	Logging     LoggingConfig `yaml:"logging"`
}

// ServiceConfig describes the remote analysis service the client talks to.
type ServiceConfig struct {
	URL     string        `yaml:"url"`      // e.g. "http://127.0.0.1:8000"
	Timeout time.Duration `yaml:"timeout"`  // per request, e.g. "30s"
	AppName string        `yaml:"app_name"` // sent as app_name
}

// ServerConfig configures the reference analysis service.
type ServerConfig struct {
	Addr  string         `yaml:"addr"`  // listen address, e.g. "127.0.0.1:8000"
	Rules map[string]int `yaml:"rules"` // risk weight per permission or flag
	LLM   LLMConfig      `yaml:"llm"`
}

// LLMConfig configures the optional LLM summarizer.
type LLMConfig struct {
	Model     string        `yaml:"model"`       // e.g. "gpt-4o-mini"; empty disables the LLM
	BaseURL   string        `yaml:"base_url"`    // OpenAI-compatible endpoint
	APIKeyEnv string        `yaml:"api_key_env"` // e.g. "OPENAI_API_KEY"
	Timeout   time.Duration `yaml:"timeout"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // interactive sessions log here; empty discards
}

// DefaultPermissions are the permission ids offered by the form.
var DefaultPermissions = []string{
	"location",
	"contacts",
	"camera",
	"microphone",
	"storage",
	"sms",
	"call_logs",
	"calendar",
}

// Load reads configuration from a YAML file.
// If path is empty or the file doesn't exist, it returns the default config.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Service.URL == "" {
		cfg.Service.URL = "http://127.0.0.1:8000"
	}
	if cfg.Service.Timeout == 0 {
		cfg.Service.Timeout = 60 * time.Second
	}
	if cfg.Service.AppName == "" {
		cfg.Service.AppName = "User Submitted App"
	}

	if len(cfg.Permissions) == 0 {
		cfg.Permissions = append([]string(nil), DefaultPermissions...)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8000"
	}
	if cfg.Server.LLM.APIKeyEnv == "" {
		cfg.Server.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Server.LLM.Timeout == 0 {
		cfg.Server.LLM.Timeout = 30 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
