package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// lexicalTokenLimit is the largest query, in whitespace-separated tokens,
// answered without calling the gateway.
const lexicalTokenLimit = 3

// SearchService searches across all stored documents.
type SearchService struct {
	records driven.RecordStore
	gateway *Gateway
}

// NewSearchService creates a new search service.
// gateway may be nil, in which case every search is lexical.
func NewSearchService(records driven.RecordStore, gateway *Gateway) *SearchService {
	return &SearchService{
		records: records,
		gateway: gateway,
	}
}

// Search performs lexical search across all documents.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	docs, err := s.records.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return LexicalSearch(query, docs), nil
}

// EnhancedSearch answers short queries lexically and longer ones through the
// gateway, falling back to lexical search when the gateway fails.
func (s *SearchService) EnhancedSearch(ctx context.Context, query string) ([]domain.SearchResult, error) {
	logger.Section("Enhanced Search")
	logger.Debug("Query: %q", query)

	docs, err := s.records.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(docs) == 0 {
		return []domain.SearchResult{}, nil
	}

	tokens := len(strings.Fields(query))
	if tokens <= lexicalTokenLimit || s.gateway == nil {
		logger.Debug("Lexical path (%d tokens)", tokens)
		return LexicalSearch(query, docs), nil
	}

	logger.Debug("AI path (%d tokens, %d documents)", tokens, len(docs))
	results, err := s.gateway.Search(ctx, query, docs)
	if err != nil {
		logger.Warn("Enhanced search failed, using lexical search: %v", err)
		return LexicalSearch(query, docs), nil
	}
	return results, nil
}

// LexicalSearch collects matching paragraphs from every document, scores each
// paragraph, and orders the results best first. Equal scores keep document order.
func LexicalSearch(query string, docs []domain.Document) []domain.SearchResult {
	results := []domain.SearchResult{}
	for _, doc := range docs {
		for _, snippet := range SearchInDocument(doc, query) {
			results = append(results, domain.SearchResult{
				DocumentID:     doc.ID,
				DocumentName:   doc.Name,
				DocumentType:   doc.FileType,
				Snippet:        truncateRunes(snippet, snippetLimit, "..."),
				RelevanceScore: ScoreRelevance(snippet, query),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	logger.Debug("Lexical results: %d", len(results))
	return results
}
