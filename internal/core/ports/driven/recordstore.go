package driven

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// RecordStore persists documents, presentations and summaries.
// Collections are unordered; lookups are by id.
type RecordStore interface {
	// SaveDocument upserts a document by id.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// ListDocuments returns all documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetDocument returns a document by id, or ErrNotFound.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// DeleteDocument removes a document and every summary that references it.
	DeleteDocument(ctx context.Context, id string) error

	// SavePresentation upserts a presentation, stamping DateModified.
	// DateCreated of an existing record is preserved. Returns the stored value.
	SavePresentation(ctx context.Context, p domain.Presentation) (domain.Presentation, error)

	// ListPresentations returns all presentations.
	ListPresentations(ctx context.Context) ([]domain.Presentation, error)

	// GetPresentation returns a presentation by id, or ErrNotFound.
	GetPresentation(ctx context.Context, id string) (*domain.Presentation, error)

	// DeletePresentation removes a presentation.
	DeletePresentation(ctx context.Context, id string) error

	// SaveSummary upserts a summary by its document id.
	SaveSummary(ctx context.Context, s domain.Summary) error

	// GetSummaryByDocument returns the summary for a document, or ErrNotFound.
	GetSummaryByDocument(ctx context.Context, documentID string) (*domain.Summary, error)
}
