package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.LLMValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	err := NewConfigValidator().ValidateLLM(nil)

	// nothing to validate
	assert.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	config := &domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "test-model",
	}

	err := NewConfigValidator().ValidateLLM(config)

	assert.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_Ollama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ok := &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL}
	assert.NoError(t, NewConfigValidator().ValidateLLM(ok))

	bad := &domain.LLMSettings{Provider: domain.AIProviderOllama, BaseURL: server.URL + "/nope"}
	assert.Error(t, NewConfigValidator().ValidateLLM(bad))
}
