package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// Ollama runs completions against a local or remote Ollama server.
type Ollama struct {
	client *ollama.Client
	model  string
}

// NewOllama creates an Ollama provider. An empty BaseURL falls back to OLLAMA_HOST.
func NewOllama(cfg ProviderConfig) (*Ollama, error) {
	var client *ollama.Client
	if cfg.BaseURL == "" {
		c, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("could not create ollama client: %w", err)
		}
		client = c
	} else {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama base URL %q: %w", cfg.BaseURL, err)
		}
		client = ollama.NewClient(base, &http.Client{Timeout: cfg.Timeout})
	}
	return &Ollama{client: client, model: cfg.Model}, nil
}

// Complete runs a non-streaming chat request and returns the assistant message.
func (p *Ollama) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	stream := false
	req := &ollama.ChatRequest{
		Model:    p.model,
		Messages: []ollama.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  map[string]interface{}{},
	}
	if opts.Temperature > 0 {
		req.Options["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		req.Options["num_predict"] = opts.MaxTokens
	}
	if opts.JSON {
		req.Format = json.RawMessage(`"json"`)
	}

	var content strings.Builder
	err := p.client.Chat(ctx, req, func(res ollama.ChatResponse) error {
		content.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	if content.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return content.String(), nil
}
