package driving

import "github.com/custodia-labs/docdeck/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the text generation provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetStorage configures the record storage backend.
	SetStorage(backend domain.StorageBackend, dir string) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
