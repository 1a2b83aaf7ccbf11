package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Search == nil {
		ports.Search = &mockSearchService{}
	}
	if ports.Document == nil {
		ports.Document = &mockDocumentService{}
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{{
				DocumentID:     "doc-1",
				DocumentName:   "report.pdf",
				DocumentType:   domain.DocumentTypePDF,
				Snippet:        "matched text",
				RelevanceScore: 3,
			}},
		}
		server := newTestServer(t, &Ports{Search: mockSearch})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.False(t, mockSearch.enhanced)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, SearchResultOutput{
			DocumentID:   "doc-1",
			DocumentName: "report.pdf",
			DocumentType: "pdf",
			Snippet:      "matched text",
			Score:        3,
		}, output.Results[0])
	})

	t.Run("ai flag uses enhanced search", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server := newTestServer(t, &Ports{Search: mockSearch})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "what drives revenue growth", AI: true})

		require.NoError(t, err)
		assert.True(t, mockSearch.enhanced)
	})

	t.Run("limit truncates results", func(t *testing.T) {
		results := make([]domain.SearchResult, 15)
		server := newTestServer(t, &Ports{Search: &mockSearchService{results: results}})

		_, limited, err := server.handleSearch(ctx, nil, SearchInput{Query: "q", Limit: 2})
		require.NoError(t, err)
		_, defaulted, err := server.handleSearch(ctx, nil, SearchInput{Query: "q"})
		require.NoError(t, err)

		assert.Equal(t, 2, limited.Count)
		assert.Equal(t, defaultSearchLimit, defaulted.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Search: &mockSearchService{err: errors.New("search failed")}})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleListDocuments(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	docs := &mockDocumentService{documents: []domain.Document{
		{ID: "doc-1", Name: "a.txt", FileType: domain.DocumentTypeTXT, Content: "x", DateAdded: added},
	}}
	server := newTestServer(t, &Ports{Document: docs})

	_, output, err := server.handleListDocuments(context.Background(), nil, ListDocumentsInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, DocumentOutput{ID: "doc-1", Name: "a.txt", Type: "txt", DateAdded: "2024-03-01T12:00:00Z"},
		output.Documents[0])
}

func TestServer_handleSummarise(t *testing.T) {
	t.Run("returns summary", func(t *testing.T) {
		docs := &mockDocumentService{summary: &domain.Summary{DocumentID: "doc-1", Content: "Short."}}
		server := newTestServer(t, &Ports{Document: docs})

		_, output, err := server.handleSummarise(context.Background(), nil, DocumentInput{DocumentID: "doc-1"})

		require.NoError(t, err)
		assert.Equal(t, "Short.", output.Summary)
	})

	t.Run("propagates errors", func(t *testing.T) {
		server := newTestServer(t, &Ports{Document: &mockDocumentService{err: domain.ErrNotFound}})

		_, _, err := server.handleSummarise(context.Background(), nil, DocumentInput{DocumentID: "nope"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleInsights(t *testing.T) {
	docs := &mockDocumentService{insights: []string{"one", "two"}}
	server := newTestServer(t, &Ports{Document: docs})

	_, output, err := server.handleInsights(context.Background(), nil, DocumentInput{DocumentID: "doc-1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, output.Insights)
}

func TestServer_handleRelated(t *testing.T) {
	docs := &mockDocumentService{related: []domain.RelatedDocument{
		{ID: "doc-2", Name: "b.docx", Similarity: 0.8, FileType: domain.DocumentTypeDOCX},
	}}
	server := newTestServer(t, &Ports{Document: docs})

	_, output, err := server.handleRelated(context.Background(), nil, DocumentInput{DocumentID: "doc-1"})

	require.NoError(t, err)
	require.Len(t, output.Documents, 1)
	assert.Equal(t, RelatedItem{ID: "doc-2", Name: "b.docx", Type: "docx", Similarity: 0.8}, output.Documents[0])
}

func TestServer_handleGeneratePresentation(t *testing.T) {
	t.Run("passes request and returns slides", func(t *testing.T) {
		pres := &mockPresentationService{presentation: &domain.Presentation{
			ID:     "p-1",
			Title:  "Roadmap",
			Theme:  domain.CatalogTheme("creative"),
			Slides: []domain.Slide{{Title: "Intro", Content: "Hello"}},
		}}
		server := newTestServer(t, &Ports{Presentation: pres})

		_, output, err := server.handleGeneratePresentation(context.Background(), nil, GeneratePresentationInput{
			Title:     "Roadmap",
			Text:      "Some text",
			Theme:     " creative ",
			NumSlides: 4,
			Enhance:   true,
			Layout:    "modern",
		})

		require.NoError(t, err)
		assert.Equal(t, "creative", pres.lastRequest.ThemeChoice)
		assert.Equal(t, 4, pres.lastRequest.NumSlides)
		assert.True(t, pres.lastRequest.UseEnhancement)
		assert.Equal(t, domain.LayoutModern, pres.lastRequest.LayoutStyle)
		assert.Equal(t, "p-1", output.ID)
		assert.Equal(t, []SlideOutput{{Title: "Intro", Content: "Hello"}}, output.Slides)
	})

	t.Run("without presentation service", func(t *testing.T) {
		server := newTestServer(t, &Ports{})

		_, _, err := server.handleGeneratePresentation(context.Background(), nil, GeneratePresentationInput{Text: "x"})

		assert.ErrorIs(t, err, ErrPresentationsDisabled)
	})

	t.Run("propagates pipeline errors", func(t *testing.T) {
		server := newTestServer(t, &Ports{Presentation: &mockPresentationService{err: domain.ErrInvalidInput}})

		_, _, err := server.handleGeneratePresentation(context.Background(), nil, GeneratePresentationInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
