package driving

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search performs lexical search across all documents, best match first.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// EnhancedSearch uses the AI gateway for longer queries and falls back
	// to lexical search for short queries or on failure.
	EnhancedSearch(ctx context.Context, query string) ([]domain.SearchResult, error)
}
