// Package config loads SmartQA configuration from ~/.smartqa/config.yaml with
// environment variable overrides. Secrets only come from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AI provider names
const (
	ProviderMock      = "mock"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config is the flat SmartQA configuration.
type Config struct {
	DatabasePath string `yaml:"database_path" env:"SMARTQA_DB" env-default:""`
	LogLevel     string `yaml:"log_level" env:"SMARTQA_LOG_LEVEL" env-default:"info"`
	HTTPAddr     string `yaml:"http_addr" env:"SMARTQA_HTTP_ADDR" env-default:"127.0.0.1:8501"`

	Jira JiraConfig `yaml:"jira"`
	AI   AIConfig   `yaml:"ai"`
}

// JiraConfig configures the issue tracker. Leaving any of URL, Email,
// APIToken or ProjectKey empty puts the client in offline/demo mode.
type JiraConfig struct {
	URL        string        `yaml:"url" env:"JIRA_URL" env-default:""`
	Email      string        `yaml:"email" env:"JIRA_EMAIL" env-default:""`
	APIToken   string        `yaml:"-" env:"JIRA_API_TOKEN"`
	ProjectKey string        `yaml:"project_key" env:"JIRA_PROJECT_KEY" env-default:""`
	Timeout    time.Duration `yaml:"timeout" env:"JIRA_TIMEOUT" env-default:"10s"`
}

// Configured returns true when every field needed for live calls is set.
func (j JiraConfig) Configured() bool {
	return j.URL != "" && j.Email != "" && j.APIToken != "" && j.ProjectKey != ""
}

// AIConfig selects the drafting backend for scenarios and bug reports.
type AIConfig struct {
	Provider        string `yaml:"provider" env:"AI_PROVIDER" env-default:"mock"`
	Model           string `yaml:"model" env:"AI_MODEL" env-default:""`
	BaseURL         string `yaml:"base_url" env:"AI_BASE_URL" env-default:""`
	MaxTokens       int    `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"2000"`
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`
}

// Dir returns ~/.smartqa.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".smartqa"), nil
}

// DefaultPath returns the config file location, honoring SMARTQA_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv("SMARTQA_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads .env from the working directory (if present), then the YAML file
// at path (if present), then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.DatabasePath == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		cfg.DatabasePath = filepath.Join(dir, "smartqa.db")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case ProviderMock, ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown ai provider %q (valid: mock, anthropic, openai)", c.AI.Provider)
	}
	if c.Jira.Timeout <= 0 {
		return fmt.Errorf("jira timeout must be positive")
	}
	return nil
}

// Save writes cfg as YAML to path, creating the parent directory.
// Secrets are never written.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Default returns the configuration written by `smartqa init`.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		HTTPAddr: "127.0.0.1:8501",
		Jira:     JiraConfig{Timeout: 10 * time.Second},
		AI:       AIConfig{Provider: ProviderMock, MaxTokens: 2000},
	}
}
