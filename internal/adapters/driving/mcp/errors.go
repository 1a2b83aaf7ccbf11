// Package mcp provides an MCP (Model Context Protocol) server adapter for docdeck.
// It lets AI assistants search documents, read summaries and insights, and
// generate presentations.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")

	// ErrPresentationsDisabled is returned by presentation tools when no
	// presentation service is wired.
	ErrPresentationsDisabled = errors.New("mcp: presentations are not available")
)
