package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

func TestNew_Defaults(t *testing.T) {
	g := New(Config{})

	assert.Equal(t, DefaultBaseURL, g.baseURL)
	assert.Equal(t, DefaultModel, g.ModelName())
	assert.Equal(t, DefaultTimeout, g.client.Timeout)
}

func TestGenerator_Generate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Response: `["a"]`, Done: true})
	}))
	defer server.Close()

	g := New(Config{BaseURL: server.URL, Model: "mistral"})
	text, err := g.Generate(context.Background(), "hello", driven.GenerateOptions{MaxTokens: 1024, Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, `["a"]`, text)
	assert.Equal(t, "mistral", got.Model)
	assert.Equal(t, "hello", got.Prompt)
	assert.False(t, got.Stream)
	require.NotNil(t, got.Options)
	assert.Equal(t, 1024, got.Options.NumPredict)
	assert.InDelta(t, 0.2, got.Options.Temperature, 1e-9)
}

func TestGenerator_Generate_ErrorStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
	}{
		{"server error", http.StatusInternalServerError, false},
		{"throttled", http.StatusTooManyRequests, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", tt.status)
			}))
			defer server.Close()

			_, err := New(Config{BaseURL: server.URL}).Generate(context.Background(), "x", driven.GenerateOptions{})

			require.Error(t, err)
			assert.Equal(t, tt.rateLimited, errors.Is(err, driven.ErrRateLimited))
		})
	}
}

func TestGenerator_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"mistral:7b"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.NoError(t, New(Config{BaseURL: server.URL}).Ping(context.Background()))
	assert.NoError(t, New(Config{BaseURL: server.URL + "/", Model: "mistral:7b"}).Ping(context.Background()))

	err := New(Config{BaseURL: server.URL, Model: "phi3"}).Ping(context.Background())
	assert.ErrorIs(t, err, ErrModelNotPulled)
	assert.Contains(t, err.Error(), "ollama pull phi3")

	assert.Error(t, New(Config{BaseURL: server.URL + "/missing"}).Ping(context.Background()))
}

func TestGenerator_ErrorBodyQuoted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model 'x' not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(Config{BaseURL: server.URL}).Generate(context.Background(), "x", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model 'x' not found")
}
