package extract

import (
	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract/docx"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract/legacy"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract/pdf"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract/plaintext"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/extract/pptx"
)

// RegisterDefaults registers all built-in extractors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	r.Register(pptx.New())
	r.Register(legacy.New())
}

// NewDefaultRegistry returns a registry covering every accepted document type.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
