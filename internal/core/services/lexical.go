package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// Relevance weights for lexical scoring.
const (
	occurrenceWeight = 0.6
	positionWeight   = 0.4

	// positionScale is the character distance at which the position factor halves.
	positionScale = 100.0
)

// snippetLimit is the display length of a lexical search snippet.
const snippetLimit = 200

// SearchInDocument returns the paragraphs of a document containing query,
// compared case-insensitively, in document order. A blank query matches nothing.
func SearchInDocument(doc domain.Document, query string) []string {
	if strings.TrimSpace(query) == "" {
		return []string{}
	}

	q := strings.ToLower(query)
	matches := []string{}
	for _, p := range domain.SplitParagraphs(doc.Content) {
		if strings.Contains(strings.ToLower(p), q) {
			matches = append(matches, p)
		}
	}
	return matches
}

// ScoreRelevance weighs how well text matches query.
// It combines the count of non-overlapping case-insensitive occurrences with
// how early the first one appears. The result is a ranking weight, not a probability.
func ScoreRelevance(text, query string) float64 {
	if query == "" {
		return 0
	}

	t := strings.ToLower(text)
	q := strings.ToLower(query)

	occurrences := strings.Count(t, q)
	if occurrences == 0 {
		return 0
	}

	first := utf8.RuneCountInString(t[:strings.Index(t, q)])
	positionFactor := 1 / (1 + float64(first)/positionScale)

	return occurrenceWeight*float64(occurrences) + positionWeight*positionFactor
}

// truncateRunes cuts s to at most limit characters and appends suffix
// when anything was cut.
func truncateRunes(s string, limit int, suffix string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + suffix
}
