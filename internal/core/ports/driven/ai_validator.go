package driven

import "github.com/custodia-labs/docdeck/internal/core/domain"

// LLMValidator validates text generation provider configurations by testing
// connectivity to the underlying service.
type LLMValidator interface {
	// ValidateLLM pings the configured provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
