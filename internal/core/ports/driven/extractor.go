package driven

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// TextExtractor reduces an uploaded file to plain text.
// Each extractor handles specific document types.
type TextExtractor interface {
	// SupportedTypes returns the document types this extractor handles.
	SupportedTypes() []domain.DocumentType

	// Extract returns the plain text of the file contents.
	Extract(ctx context.Context, data []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a document type.
type ExtractorRegistry interface {
	// Register adds an extractor. Later registrations win for shared types.
	Register(extractor TextExtractor)

	// Extract dispatches to the registered extractor for docType.
	// Returns ErrUnsupportedType when no extractor handles it.
	Extract(ctx context.Context, docType domain.DocumentType, data []byte) (string, error)

	// SupportedTypes returns every type with a registered extractor.
	SupportedTypes() []domain.DocumentType
}
