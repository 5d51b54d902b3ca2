// Package llm provides the text-completion collaborators used for AI generation
// and transformation.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any content.
var ErrEmptyResponse = errors.New("no content received from AI")

// Options tunes a single completion.
type Options struct {
	// Temperature is passed through when > 0.
	Temperature float64
	// MaxTokens caps the completion length when > 0.
	MaxTokens int
	// JSON asks the provider to constrain the output to a JSON object.
	JSON bool
}

// Completer turns a prompt into completion text.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Func adapts a function to the Completer interface.
type Func func(ctx context.Context, prompt string, opts Options) (string, error)

// Complete calls f.
func (f Func) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	return f(ctx, prompt, opts)
}
