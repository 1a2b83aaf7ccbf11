package domain

import "time"

// Summary is the generated summary of a document.
// At most one summary exists per document.
type Summary struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"documentId"`
	Content       string    `json:"content"`
	DateGenerated time.Time `json:"dateGenerated"`
}
