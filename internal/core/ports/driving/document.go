package driving

import (
	"context"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// Upload is a file submitted for ingestion.
type Upload struct {
	// Name is the original file name. Only the base name is kept.
	Name string

	// MIMEType is the declared content type. May be empty.
	MIMEType string

	// Data is the raw file contents.
	Data []byte
}

// DocumentService manages uploaded documents and their AI-derived views.
type DocumentService interface {
	// Ingest extracts, stores and returns a new document.
	// Returns ErrUnsupportedType for files that are not an accepted type.
	Ingest(ctx context.Context, upload Upload) (*domain.Document, error)

	// List returns all documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// Delete removes a document and its summary.
	Delete(ctx context.Context, documentID string) error

	// Paragraphs returns the classified paragraphs of a document.
	Paragraphs(ctx context.Context, documentID string) ([]domain.Paragraph, error)

	// GetSummary returns the stored summary of a document, or ErrNotFound.
	GetSummary(ctx context.Context, documentID string) (*domain.Summary, error)

	// GenerateSummary summarises a document and stores the result,
	// replacing any previous summary.
	GenerateSummary(ctx context.Context, documentID string) (*domain.Summary, error)

	// Insights returns key insights of a document. Failures surface as a
	// single placeholder message rather than an error.
	Insights(ctx context.Context, documentID string) ([]string, error)

	// Related returns other documents judged similar to a document.
	Related(ctx context.Context, documentID string) ([]domain.RelatedDocument, error)

	// ExportInsights renders insights as a downloadable text file.
	ExportInsights(ctx context.Context, documentID string, insights []string) (*TextExport, error)

	// ExportSummary renders the stored summary as a downloadable text file.
	ExportSummary(ctx context.Context, documentID string) (*TextExport, error)
}

// TextExport is a named plain-text file.
type TextExport struct {
	FileName string
	Content  string
}
