package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Defaults applied by ProviderConfig.Validate.
const (
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultGroqModel     = "llama-3.3-70b-versatile"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOllamaModel   = "llama3.2"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultTimeout       = 60 * time.Second
)

// ProviderConfig selects and configures a Completer.
type ProviderConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// Validate checks cfg and fills in provider defaults.
func (cfg *ProviderConfig) Validate() error {
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderGroq
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	switch cfg.Provider {
	case ProviderGroq:
		setDefault(&cfg.BaseURL, DefaultGroqBaseURL)
		setDefault(&cfg.Model, DefaultGroqModel)
	case ProviderOpenAI:
		setDefault(&cfg.BaseURL, DefaultOpenAIBaseURL)
		setDefault(&cfg.Model, DefaultOpenAIModel)
	case ProviderOllama:
		setDefault(&cfg.Model, DefaultOllamaModel)
		return nil
	case ProviderGemini:
		setDefault(&cfg.Model, DefaultGeminiModel)
	default:
		return fmt.Errorf("unknown LLM provider %q (must be groq, openai, ollama or gemini)", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required for %s provider", cfg.Provider)
	}
	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// New builds the Completer described by cfg.
func New(ctx context.Context, cfg ProviderConfig) (Completer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllama(cfg)
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return NewOpenAI(cfg), nil
	}
}
