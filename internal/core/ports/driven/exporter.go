package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// PresentationExporter renders a presentation into a portable file.
type PresentationExporter interface {
	// ExportPDF writes one landscape page per slide to w.
	ExportPDF(ctx context.Context, w io.Writer, p *domain.Presentation) error
}
