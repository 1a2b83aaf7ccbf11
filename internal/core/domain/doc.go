// Package domain defines the core business entities for docdeck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document and its extracted text
//   - Presentation: An ordered, themed sequence of slides
//   - Summary: The single generated summary of a document
//   - SearchResult, RelatedDocument: Transient query results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
