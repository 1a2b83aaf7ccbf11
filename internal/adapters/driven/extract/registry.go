// Package extract provides text extractors for uploaded documents and the
// registry that dispatches to them by document type.
//
// Extractors are registered with the Registry at startup.
package extract

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps document types to their extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.DocumentType]driven.TextExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.DocumentType]driven.TextExtractor),
	}
}

// Register adds an extractor for each of its supported types.
// Later registrations win for shared types.
func (r *Registry) Register(extractor driven.TextExtractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range extractor.SupportedTypes() {
		r.extractors[t] = extractor
	}
}

// Extract dispatches to the extractor registered for docType.
func (r *Registry) Extract(ctx context.Context, docType domain.DocumentType, data []byte) (string, error) {
	r.mu.RLock()
	extractor, ok := r.extractors[docType]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("no extractor for %q: %w", docType, domain.ErrUnsupportedType)
	}

	text, err := extractor.Extract(ctx, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", docType, err)
	}
	logger.Debug("Extracted %d chars from %s (%d bytes)", len(text), docType, len(data))
	return text, nil
}

// SupportedTypes returns every type with a registered extractor, sorted.
func (r *Registry) SupportedTypes() []domain.DocumentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.DocumentType, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
