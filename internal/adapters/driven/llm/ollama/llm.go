// Package ollama provides a text generator adapter using a local Ollama instance.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.TextGenerator = (*Generator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// ErrModelNotPulled is returned by Ping when the server does not have the model.
var ErrModelNotPulled = errors.New("model not pulled")

// maxErrorBody caps how much of an error response is quoted.
const maxErrorBody = 512

// Config holds configuration for the Ollama generator.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Generator produces text with a model served by Ollama.
type Generator struct {
	client  *http.Client
	baseURL string
	model   string
}

type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Options *options `json:"options,omitempty"`
}

type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// New creates a generator. Zero config fields take the defaults.
func New(cfg Config) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Generator{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
	}
}

// Generate runs one non-streaming completion.
func (g *Generator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	body := generateRequest{Model: g.model, Prompt: prompt}
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		body.Options = &options{NumPredict: opts.MaxTokens, Temperature: opts.Temperature}
	}

	var out generateResponse
	if err := g.call(ctx, http.MethodPost, "/api/generate", body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// ModelName returns the configured model.
func (g *Generator) ModelName() string {
	return g.model
}

// Ping lists the local models without running inference and checks that the
// configured one is among them. "llama3.2" matches "llama3.2:latest".
func (g *Generator) Ping(ctx context.Context) error {
	var tags tagsResponse
	if err := g.call(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	for _, m := range tags.Models {
		if m.Name == g.model || strings.TrimSuffix(m.Name, ":latest") == g.model {
			return nil
		}
	}
	return fmt.Errorf("ollama: %w: run 'ollama pull %s'", ErrModelNotPulled, g.model)
}

// Close releases resources.
func (g *Generator) Close() error {
	return nil
}

// call sends in as JSON (when non-nil) and decodes the reply into out.
func (g *Generator) call(ctx context.Context, method, path string, in, out any) error {
	reqBody := io.Reader(http.NoBody)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	err := fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", err, driven.ErrRateLimited)
	}
	return err
}
