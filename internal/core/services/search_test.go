package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/ids"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/records"
	"github.com/custodia-labs/docdeck/internal/core/domain"
)

func newSearchFixture(t *testing.T, llm *mockTextGenerator, docs ...domain.Document) *SearchService {
	t.Helper()
	store := records.New(memory.NewKVStore())
	for _, d := range docs {
		require.NoError(t, store.SaveDocument(context.Background(), d))
	}
	var gw *Gateway
	if llm != nil {
		gw = NewGateway(llm, nil, ids.NewSequence("id"))
	}
	return NewSearchService(store, gw)
}

var searchDocs = []domain.Document{
	{ID: "d1", Name: "report.pdf", FileType: domain.DocumentTypePDF, Content: "Intro text.\n\nThe budget was approved. Budget details follow."},
	{ID: "d2", Name: "notes.txt", FileType: domain.DocumentTypeTXT, Content: strings.Repeat("filler ", 20) + "budget mentioned late.\n\nUnrelated."},
}

func TestSearch_LexicalRanking(t *testing.T) {
	svc := newSearchFixture(t, nil, searchDocs...)

	results, err := svc.Search(context.Background(), "budget")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "d1", results[0].DocumentID)
	assert.Equal(t, "The budget was approved. Budget details follow.", results[0].Snippet)
	assert.Greater(t, results[0].RelevanceScore, results[1].RelevanceScore)
	assert.Equal(t, domain.DocumentTypeTXT, results[1].DocumentType)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newSearchFixture(t, nil, searchDocs...)

	results, err := svc.Search(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestLexicalSearch_TruncatesLongSnippets(t *testing.T) {
	long := "needle " + strings.Repeat("x", 300)
	results := LexicalSearch("needle", []domain.Document{{ID: "d", Content: long}})

	require.Len(t, results, 1)
	assert.Equal(t, long[:200]+"...", results[0].Snippet)
	// scored on the full paragraph
	assert.InDelta(t, ScoreRelevance(long, "needle"), results[0].RelevanceScore, 1e-9)
}

func TestLexicalSearch_StableTies(t *testing.T) {
	docs := []domain.Document{
		{ID: "a", Content: "same"},
		{ID: "b", Content: "same"},
		{ID: "c", Content: "same"},
	}

	results := LexicalSearch("same", docs)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{results[0].DocumentID, results[1].DocumentID, results[2].DocumentID})
}

func TestEnhancedSearch_ThreeTokensStaysLexical(t *testing.T) {
	llm := newMockGenerator(`[{"documentIndex":1,"snippet":"ai","relevanceScore":0.9}]`)
	svc := newSearchFixture(t, llm, searchDocs...)

	results, err := svc.EnhancedSearch(context.Background(), "the budget was")

	require.NoError(t, err)
	assert.Zero(t, llm.callCount())
	require.Len(t, results, 1)
	assert.Equal(t, "d1", results[0].DocumentID)
}

func TestEnhancedSearch_FourTokensCallsGateway(t *testing.T) {
	llm := newMockGenerator(`[{"documentIndex":2,"snippet":"ai snippet","relevanceScore":0.9}]`)
	svc := newSearchFixture(t, llm, searchDocs...)

	results, err := svc.EnhancedSearch(context.Background(), "when was the budget approved")

	require.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, []domain.SearchResult{{
		DocumentID: "d2", DocumentName: "notes.txt", DocumentType: domain.DocumentTypeTXT,
		Snippet: "ai snippet", RelevanceScore: 0.9,
	}}, results)
}

func TestEnhancedSearch_GatewayFailureFallsBackToLexical(t *testing.T) {
	for name, llm := range map[string]*mockTextGenerator{
		"transport": {err: errTransport},
		"malformed": newMockGenerator("no idea"),
	} {
		t.Run(name, func(t *testing.T) {
			svc := newSearchFixture(t, llm, searchDocs...)

			results, err := svc.EnhancedSearch(context.Background(), "budget approved by the board")

			require.NoError(t, err)
			assert.Equal(t, 1, llm.callCount())
			assert.Equal(t, LexicalSearch("budget approved by the board", searchDocs), results)
		})
	}
}

func TestEnhancedSearch_NoDocuments(t *testing.T) {
	llm := newMockGenerator("[]")
	svc := newSearchFixture(t, llm)

	results, err := svc.EnhancedSearch(context.Background(), "a long query with many words")

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, llm.callCount())
}

func TestEnhancedSearch_ExtraWhitespaceDoesNotCountAsTokens(t *testing.T) {
	llm := newMockGenerator("[]")
	svc := newSearchFixture(t, llm, searchDocs...)

	_, err := svc.EnhancedSearch(context.Background(), "  budget   was  approved ")

	require.NoError(t, err)
	assert.Zero(t, llm.callCount())
}
