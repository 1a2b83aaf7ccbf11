// Package ai provides factory functions for creating text generator adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/docdeck/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/docdeck/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/docdeck/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/docdeck/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateTextGenerator creates a text generator and validates connectivity.
// Returns nil without error when no provider is configured.
func CreateAndValidateTextGenerator(ctx context.Context, settings *domain.LLMSettings) (driven.TextGenerator, error) {
	svc, err := CreateTextGenerator(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docdeck settings set' to fix",
			domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'docdeck settings set' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig validates a configuration by creating a generator and pinging it.
// Used by the settings command to check credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	svc, err := CreateTextGenerator(ctx, settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	return svc.Ping(ctx)
}

// CreateTextGenerator creates the generator for the configured provider,
// rate limited per settings. Returns nil if the provider is not configured.
func CreateTextGenerator(ctx context.Context, settings *domain.LLMSettings) (driven.TextGenerator, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		gen driven.TextGenerator
		err error
	)
	switch settings.Provider {
	case domain.AIProviderGemini:
		gen, err = geminillm.New(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		gen, err = openaillm.New(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		gen, err = anthropicllm.New(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOllama:
		gen = ollamallm.New(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	return ratelimit.Wrap(gen, ratelimit.Config{
		RequestsPerSecond: settings.RequestsPerSecond,
		Burst:             settings.Burst,
	}), nil
}
