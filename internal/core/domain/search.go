package domain

// SearchResult is a single snippet hit across the document set.
// It is never persisted.
type SearchResult struct {
	DocumentID   string       `json:"documentId"`
	DocumentName string       `json:"documentName"`
	DocumentType DocumentType `json:"documentType"`
	Snippet      string       `json:"snippet"`

	// RelevanceScore orders results. Lexical scores are unbounded ranking
	// weights; AI scores are clamped to [0, 1].
	RelevanceScore float64 `json:"relevanceScore"`
}

// RelatedDocument is a document judged similar to a source document.
type RelatedDocument struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Similarity float64      `json:"similarity"`
	FileType   DocumentType `json:"fileType"`
}

// Clamp01 bounds a score to [0, 1].
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
