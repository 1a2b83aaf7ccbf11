package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// --- Mock implementations ---

// generateCall records one request to the mock generator.
type generateCall struct {
	prompt string
	opts   driven.GenerateOptions
}

// mockTextGenerator implements driven.TextGenerator for testing.
// Responses are served in order; the last one repeats.
type mockTextGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []generateCall

	// respond, when set, overrides responses and err.
	respond func(prompt string) (string, error)
}

func newMockGenerator(responses ...string) *mockTextGenerator {
	return &mockTextGenerator{responses: responses}
}

func (m *mockTextGenerator) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, generateCall{prompt: prompt, opts: opts})
	if m.respond != nil {
		return m.respond(prompt)
	}
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	i := len(m.calls) - 1
	if i >= len(m.responses) {
		i = len(m.responses) - 1
	}
	return m.responses[i], nil
}

func (m *mockTextGenerator) ModelName() string {
	return "mock-model"
}

func (m *mockTextGenerator) Ping(_ context.Context) error {
	return m.err
}

func (m *mockTextGenerator) Close() error {
	return nil
}

func (m *mockTextGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockTextGenerator) lastCall() generateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return generateCall{}
	}
	return m.calls[len(m.calls)-1]
}

// errTransport simulates a network failure.
var errTransport = errors.New("API request failed with status 503")

// routeByPrompt answers each capability by a distinguishing phrase of its built-in prompt.
func routeByPrompt(routes map[string]string, fallback error) func(string) (string, error) {
	return func(prompt string) (string, error) {
		for phrase, response := range routes {
			if strings.Contains(prompt, phrase) {
				return response, nil
			}
		}
		return "", fallback
	}
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loads   int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	m.loads++
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("prompt not found: " + name)
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockMetrics implements driven.GatewayMetrics for testing.
type mockMetrics struct {
	mu       sync.Mutex
	outcomes map[domain.Capability][]string
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{outcomes: make(map[domain.Capability][]string)}
}

func (m *mockMetrics) ObserveCall(c domain.Capability, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[c] = append(m.outcomes[c], outcome)
}

// mockExtractors implements driven.ExtractorRegistry for testing.
// Extract returns the upload bytes as text.
type mockExtractors struct {
	err error
}

func (m *mockExtractors) Register(_ driven.TextExtractor) {}

func (m *mockExtractors) Extract(_ context.Context, docType domain.DocumentType, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if !docType.IsValid() {
		return "", domain.ErrUnsupportedType
	}
	return string(data), nil
}

func (m *mockExtractors) SupportedTypes() []domain.DocumentType {
	return domain.DocumentTypes()
}

// mockExporter implements driven.PresentationExporter for testing.
type mockExporter struct {
	exported []string
	err      error
}

func (m *mockExporter) ExportPDF(_ context.Context, w io.Writer, p *domain.Presentation) error {
	if m.err != nil {
		return m.err
	}
	m.exported = append(m.exported, p.ID)
	_, err := io.WriteString(w, "%PDF-1.3 "+p.Title)
	return err
}
