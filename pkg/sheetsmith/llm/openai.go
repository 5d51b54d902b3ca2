package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAI talks to any OpenAI-compatible chat/completions endpoint (Groq by default).
type OpenAI struct {
	config     ProviderConfig
	httpClient *http.Client
}

// NewOpenAI creates an OpenAI-compatible provider. cfg must already be validated.
func NewOpenAI(cfg ProviderConfig) *OpenAI {
	return &OpenAI{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete sends prompt as a single user message and returns the first choice.
func (p *OpenAI) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	body, err := p.buildRequest(prompt, opts)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(p.config.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(responseData)))
	}

	var apiResponse chatResponse
	if err := json.Unmarshal(responseData, &apiResponse); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(apiResponse.Choices) == 0 || apiResponse.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return apiResponse.Choices[0].Message.Content, nil
}

func (p *OpenAI) buildRequest(prompt string, opts Options) ([]byte, error) {
	request := chatRequest{
		Model:    p.config.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if opts.MaxTokens > 0 {
		request.MaxTokens = &opts.MaxTokens
	}
	if opts.Temperature > 0 {
		request.Temperature = &opts.Temperature
	}
	if opts.JSON {
		request.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return json.Marshal(request)
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}
