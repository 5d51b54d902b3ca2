// Package sheetsmith generates, imports, edits and exports spreadsheets, with
// optional LLM-backed generation and transformation.
package sheetsmith

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/assist"
	"github.com/ukaji3/sheetsmith-go/pkg/sheetsmith/llm"
)

// Config holds all sheetsmith configuration.
type Config struct {
	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// Transform request shaping
	Transform TransformConfig `yaml:"transform"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig selects the chat-completion provider.
type LLMConfig struct {
	Provider string `yaml:"provider"` // groq, openai, ollama, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"` // e.g. "60s"
}

// TransformConfig bounds what a transform request sends.
type TransformConfig struct {
	SampleLimit int  `yaml:"sample_limit"`
	Batch       bool `yaml:"batch"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // json, console
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: llm.ProviderGroq,
			Timeout:  "60s",
		},
		Transform: TransformConfig{
			SampleLimit: assist.DefaultSampleLimit,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig loads configuration from a YAML file. An empty path or a missing
// file yields the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("SHEETSMITH_LLM_PROVIDER"); p != "" {
		c.LLM.Provider = strings.ToLower(p)
	}
	if m := os.Getenv("SHEETSMITH_LLM_MODEL"); m != "" {
		c.LLM.Model = m
	}

	// API keys only apply to the provider they belong to
	switch c.LLM.Provider {
	case "", llm.ProviderGroq:
		if key := os.Getenv("GROQ_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	case llm.ProviderOpenAI:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	case llm.ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.LLM.APIKey = key
		}
	case llm.ProviderOllama:
		if host := os.Getenv("OLLAMA_HOST"); host != "" && c.LLM.BaseURL == "" {
			c.LLM.BaseURL = host
		}
	}
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.LLMTimeout(); err != nil {
		return err
	}
	if c.Transform.SampleLimit < 0 {
		return fmt.Errorf("transform.sample_limit must not be negative, got %d", c.Transform.SampleLimit)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// LLMTimeout returns the LLM transport timeout. An empty value means the default.
func (c *Config) LLMTimeout() (time.Duration, error) {
	if c.LLM.Timeout == "" {
		return llm.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid llm.timeout %q: %w", c.LLM.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("llm.timeout must be positive, got %s", d)
	}
	return d, nil
}

// ProviderConfig converts the LLM section into an llm.ProviderConfig.
func (c *Config) ProviderConfig() (llm.ProviderConfig, error) {
	timeout, err := c.LLMTimeout()
	if err != nil {
		return llm.ProviderConfig{}, err
	}
	return llm.ProviderConfig{
		Provider: c.LLM.Provider,
		APIKey:   c.LLM.APIKey,
		Model:    c.LLM.Model,
		BaseURL:  c.LLM.BaseURL,
		Timeout:  timeout,
	}, nil
}
