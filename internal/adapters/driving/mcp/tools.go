package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find documents"`
	AI    bool   `json:"ai,omitempty" jsonschema:"use AI-enhanced search for queries longer than three words"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
	DocumentType string  `json:"document_type"`
	Snippet      string  `json:"snippet"`
	Score        float64 `json:"score"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput describes a stored document without its content.
type DocumentOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	DateAdded string `json:"date_added"`
}

// DocumentInput identifies a document.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document ID"`
}

// SummaryOutput is the output schema for the summarise tool.
type SummaryOutput struct {
	DocumentID string `json:"document_id"`
	Summary    string `json:"summary"`
}

// InsightsOutput is the output schema for the insights tool.
type InsightsOutput struct {
	DocumentID string   `json:"document_id"`
	Insights   []string `json:"insights"`
}

// RelatedOutput is the output schema for the related tool.
type RelatedOutput struct {
	DocumentID string        `json:"document_id"`
	Documents  []RelatedItem `json:"documents"`
}

// RelatedItem is one related document.
type RelatedItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Similarity float64 `json:"similarity"`
}

// GeneratePresentationInput is the input schema for the generate_presentation tool.
type GeneratePresentationInput struct {
	Title     string `json:"title,omitempty" jsonschema:"presentation title"`
	Text      string `json:"text" jsonschema:"source text to build slides from"`
	Theme     string `json:"theme,omitempty" jsonschema:"theme id (professional, creative, minimal, vibrant) or ai"`
	NumSlides int    `json:"num_slides,omitempty" jsonschema:"number of slides, 1 to 10 (default 3)"`
	Enhance   bool   `json:"enhance,omitempty" jsonschema:"polish generated slides with a second AI pass"`
	Layout    string `json:"layout,omitempty" jsonschema:"layout style: standard, modern or minimal"`
}

// PresentationOutput is the output schema for the generate_presentation tool.
type PresentationOutput struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Theme  string        `json:"theme"`
	Slides []SlideOutput `json:"slides"`
}

// SlideOutput is one generated slide.
type SlideOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// defaultSearchLimit caps search results when the caller sets no limit.
const defaultSearchLimit = 10

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all uploaded documents",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all uploaded documents",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise",
		Description: "Generate and store a summary of a document",
	}, s.handleSummarise)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "insights",
		Description: "Extract key insights from a document",
	}, s.handleInsights)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "related",
		Description: "Find documents related to a document",
	}, s.handleRelated)

	if s.ports.Presentation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_presentation",
			Description: "Generate a slide presentation from text",
		}, s.handleGeneratePresentation)
	}
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	var (
		results []domain.SearchResult
		err     error
	)
	if input.AI {
		results, err = s.ports.Search.EnhancedSearch(ctx, input.Query)
	} else {
		results, err = s.ports.Search.Search(ctx, input.Query)
	}
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID:   results[i].DocumentID,
			DocumentName: results[i].DocumentName,
			DocumentType: results[i].DocumentType.String(),
			Snippet:      results[i].Snippet,
			Score:        results[i].RelevanceScore,
		}
	}

	return nil, output, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = documentOutput(&docs[i])
	}
	return nil, output, nil
}

func (s *Server) handleSummarise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	summary, err := s.ports.Document.GenerateSummary(ctx, input.DocumentID)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	return nil, SummaryOutput{DocumentID: input.DocumentID, Summary: summary.Content}, nil
}

func (s *Server) handleInsights(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, InsightsOutput, error) {
	insights, err := s.ports.Document.Insights(ctx, input.DocumentID)
	if err != nil {
		return nil, InsightsOutput{}, err
	}
	return nil, InsightsOutput{DocumentID: input.DocumentID, Insights: insights}, nil
}

func (s *Server) handleRelated(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	related, err := s.ports.Document.Related(ctx, input.DocumentID)
	if err != nil {
		return nil, RelatedOutput{}, err
	}

	output := RelatedOutput{
		DocumentID: input.DocumentID,
		Documents:  make([]RelatedItem, len(related)),
	}
	for i, r := range related {
		output.Documents[i] = RelatedItem{
			ID:         r.ID,
			Name:       r.Name,
			Type:       r.FileType.String(),
			Similarity: r.Similarity,
		}
	}
	return nil, output, nil
}

func (s *Server) handleGeneratePresentation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GeneratePresentationInput,
) (*mcp.CallToolResult, PresentationOutput, error) {
	if s.ports.Presentation == nil {
		return nil, PresentationOutput{}, ErrPresentationsDisabled
	}

	p, err := s.ports.Presentation.Generate(ctx, driving.GenerateRequest{
		Title:          input.Title,
		Text:           input.Text,
		ThemeChoice:    strings.TrimSpace(input.Theme),
		NumSlides:      input.NumSlides,
		UseEnhancement: input.Enhance,
		LayoutStyle:    domain.LayoutStyle(strings.TrimSpace(input.Layout)),
	})
	if err != nil {
		return nil, PresentationOutput{}, err
	}

	output := PresentationOutput{
		ID:     p.ID,
		Title:  p.Title,
		Theme:  p.Theme.Name,
		Slides: make([]SlideOutput, len(p.Slides)),
	}
	for i, slide := range p.Slides {
		output.Slides[i] = SlideOutput{Title: slide.Title, Content: slide.Content}
	}
	return nil, output, nil
}

func documentOutput(d *domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:        d.ID,
		Name:      d.Name,
		Type:      d.FileType.String(),
		DateAdded: d.DateAdded.UTC().Format(time.RFC3339),
	}
}
