// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"
	"errors"
)

// ErrRateLimited marks a generation failure caused by provider throttling (HTTP 429).
// Adapters wrap it so rate limiters can back off.
var ErrRateLimited = errors.New("rate limited by provider")

// TextGenerator turns a prompt into generated text.
// This is an optional service - when nil, AI capabilities fail with a
// transport failure and their fallbacks apply.
//
// Implementations may include:
//   - Gemini (generateContent REST API)
//   - OpenAI (GPT-4o family)
//   - Anthropic (Claude)
//   - Ollama (local models)
type TextGenerator interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
