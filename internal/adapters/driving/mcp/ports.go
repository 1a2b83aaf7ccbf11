package mcp

import (
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search provides lexical and AI-enhanced search.
	Search driving.SearchService

	// Document manages uploaded documents and their AI-derived views.
	Document driving.DocumentService

	// Presentation generates slide decks. Optional.
	Presentation driving.PresentationService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
