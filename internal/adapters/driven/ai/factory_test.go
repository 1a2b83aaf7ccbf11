package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/llm/ratelimit"
	"github.com/custodia-labs/docdeck/internal/core/domain"
)

func TestCreateTextGenerator(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "missing api key returns nil",
			settings: &domain.LLMSettings{Provider: domain.AIProviderGemini},
			wantNil:  true,
		},
		{
			name:     "unknown provider returns nil (not configured)",
			settings: &domain.LLMSettings{Provider: "unknown", APIKey: "k"},
			wantNil:  true,
		},
		{
			name:      "gemini",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderGemini, APIKey: "k", Model: "gemini-1.5-pro"},
			wantModel: "gemini-1.5-pro",
		},
		{
			name:      "openai default model",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k"},
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "anthropic",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k", Model: "claude-x"},
			wantModel: "claude-x",
		},
		{
			name:      "ollama needs no key",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama},
			wantModel: "llama3.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := CreateTextGenerator(context.Background(), tt.settings)

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, gen)
				return
			}
			require.NotNil(t, gen)
			assert.Equal(t, tt.wantModel, gen.ModelName())
			assert.NoError(t, gen.Close())
		})
	}
}

func TestCreateTextGenerator_RateLimited(t *testing.T) {
	limited, err := CreateTextGenerator(context.Background(), &domain.LLMSettings{
		Provider:          domain.AIProviderOllama,
		RequestsPerSecond: 1,
		Burst:             3,
	})
	require.NoError(t, err)
	assert.IsType(t, &ratelimit.Generator{}, limited)

	unlimited, err := CreateTextGenerator(context.Background(), &domain.LLMSettings{Provider: domain.AIProviderOllama})
	require.NoError(t, err)
	_, isLimited := unlimited.(*ratelimit.Generator)
	assert.False(t, isLimited)
}

func TestCreateAndValidateTextGenerator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[]}`))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gen, err := CreateAndValidateTextGenerator(context.Background(),
		&domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL})
	require.NoError(t, err)
	require.NotNil(t, gen)

	_, err = CreateAndValidateTextGenerator(context.Background(),
		&domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL + "/down"})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	gen, err = CreateAndValidateTextGenerator(context.Background(), &domain.LLMSettings{})
	assert.NoError(t, err)
	assert.Nil(t, gen)
}
