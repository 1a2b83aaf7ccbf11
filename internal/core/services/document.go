package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService ingests documents and serves their AI-derived views.
type DocumentService struct {
	records    driven.RecordStore
	extractors driven.ExtractorRegistry
	gateway    *Gateway
	ids        driven.IDGenerator
	now        func() time.Time
}

// DocumentOption configures a DocumentService.
type DocumentOption func(*DocumentService)

// WithDocumentClock overrides the time source for DateAdded and DateGenerated.
func WithDocumentClock(now func() time.Time) DocumentOption {
	return func(s *DocumentService) {
		s.now = now
	}
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	records driven.RecordStore,
	extractors driven.ExtractorRegistry,
	gateway *Gateway,
	ids driven.IDGenerator,
	opts ...DocumentOption,
) *DocumentService {
	s := &DocumentService{
		records:    records,
		extractors: extractors,
		gateway:    gateway,
		ids:        ids,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest validates the upload type, extracts its text and stores it as a new document.
func (s *DocumentService) Ingest(ctx context.Context, upload driving.Upload) (*domain.Document, error) {
	logger.Section("Ingest")

	name := strings.TrimSpace(filepath.Base(upload.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}

	docType, err := domain.ResolveDocumentType(upload.MIMEType, name)
	if err != nil {
		return nil, fmt.Errorf("ingest %s (%s): %w", name, upload.MIMEType, err)
	}
	logger.Debug("Resolved %s as %s (%d bytes)", name, docType, len(upload.Data))

	content, err := s.extractors.Extract(ctx, docType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}

	doc := domain.Document{
		ID:        s.ids.NewID(),
		Name:      name,
		FileType:  docType,
		Content:   content,
		DateAdded: s.now().UTC(),
	}
	if err := s.records.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	logger.Info("Ingested %s as %s (%d chars)", name, doc.ID, len(content))
	return &doc, nil
}

// List returns all documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.records.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.records.GetDocument(ctx, documentID)
}

// Delete removes a document and its summary.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	return s.records.DeleteDocument(ctx, documentID)
}

// Paragraphs returns the classified paragraphs of a document.
func (s *DocumentService) Paragraphs(ctx context.Context, documentID string) ([]domain.Paragraph, error) {
	doc, err := s.records.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return domain.Paragraphs(doc.Content), nil
}

// GetSummary returns the stored summary of a document.
func (s *DocumentService) GetSummary(ctx context.Context, documentID string) (*domain.Summary, error) {
	return s.records.GetSummaryByDocument(ctx, documentID)
}

// GenerateSummary summarises a document and stores the result.
// Gateway failures are returned and nothing is stored.
func (s *DocumentService) GenerateSummary(ctx context.Context, documentID string) (*domain.Summary, error) {
	doc, err := s.records.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	content, err := s.gateway.Summarize(ctx, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("summarise %s: %w", doc.Name, err)
	}

	summary := domain.Summary{
		ID:            s.ids.NewID(),
		DocumentID:    doc.ID,
		Content:       content,
		DateGenerated: s.now().UTC(),
	}
	if err := s.records.SaveSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("save summary: %w", err)
	}
	return &summary, nil
}

// Insights returns key insights of a document.
func (s *DocumentService) Insights(ctx context.Context, documentID string) ([]string, error) {
	doc, err := s.records.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.gateway.Insights(ctx, doc.Content), nil
}

// Related returns the other documents judged similar to a document.
func (s *DocumentService) Related(ctx context.Context, documentID string) ([]domain.RelatedDocument, error) {
	docs, err := s.records.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	var source *domain.Document
	others := make([]domain.Document, 0, len(docs))
	for i := range docs {
		if docs[i].ID == documentID {
			source = &docs[i]
			continue
		}
		others = append(others, docs[i])
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}

	return s.gateway.FindRelated(ctx, *source, others), nil
}
