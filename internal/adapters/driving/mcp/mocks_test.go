package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	enhanced bool
}

func (m *mockSearchService) Search(_ context.Context, _ string) ([]domain.SearchResult, error) {
	return m.results, m.err
}

func (m *mockSearchService) EnhancedSearch(_ context.Context, _ string) ([]domain.SearchResult, error) {
	m.enhanced = true
	return m.results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	summary   *domain.Summary
	insights  []string
	related   []domain.RelatedDocument
	err       error
}

func (m *mockDocumentService) Ingest(_ context.Context, _ driving.Upload) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) Paragraphs(_ context.Context, _ string) ([]domain.Paragraph, error) {
	return nil, m.err
}

func (m *mockDocumentService) GetSummary(_ context.Context, _ string) (*domain.Summary, error) {
	return m.summary, m.err
}

func (m *mockDocumentService) GenerateSummary(_ context.Context, _ string) (*domain.Summary, error) {
	return m.summary, m.err
}

func (m *mockDocumentService) Insights(_ context.Context, _ string) ([]string, error) {
	return m.insights, m.err
}

func (m *mockDocumentService) Related(_ context.Context, _ string) ([]domain.RelatedDocument, error) {
	return m.related, m.err
}

func (m *mockDocumentService) ExportInsights(
	_ context.Context,
	_ string,
	_ []string,
) (*driving.TextExport, error) {
	return nil, m.err
}

func (m *mockDocumentService) ExportSummary(_ context.Context, _ string) (*driving.TextExport, error) {
	return nil, m.err
}

// mockPresentationService is a mock implementation of driving.PresentationService.
type mockPresentationService struct {
	presentation *domain.Presentation
	lastRequest  driving.GenerateRequest
	err          error
}

func (m *mockPresentationService) Generate(
	_ context.Context,
	req driving.GenerateRequest,
) (*domain.Presentation, error) {
	m.lastRequest = req
	return m.presentation, m.err
}

func (m *mockPresentationService) List(_ context.Context) ([]domain.Presentation, error) {
	return nil, m.err
}

func (m *mockPresentationService) Get(_ context.Context, _ string) (*domain.Presentation, error) {
	return m.presentation, m.err
}

func (m *mockPresentationService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockPresentationService) Themes() []domain.Theme {
	return domain.ThemeCatalog()
}

func (m *mockPresentationService) ExportPDF(_ context.Context, _ string, _ io.Writer) (string, error) {
	return "", m.err
}
