package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// GenerateRequest holds the inputs of the slide pipeline.
type GenerateRequest struct {
	// Title is the presentation title. Blank uses the default title.
	Title string

	// Text is the source text slides are generated from.
	Text string

	// ThemeChoice is a catalog theme id, or "ai" for a suggested theme.
	ThemeChoice string

	// NumSlides is the requested slide count. Clamped to [1, 10]; zero means 3.
	NumSlides int

	// UseEnhancement passes generated slides through slide enhancement.
	UseEnhancement bool

	// LayoutStyle is the colour policy applied to every slide.
	LayoutStyle domain.LayoutStyle
}

// PresentationService generates and manages slide presentations.
type PresentationService interface {
	// Generate runs the slide pipeline and persists the result.
	// Nothing is stored when any step fails.
	Generate(ctx context.Context, req GenerateRequest) (*domain.Presentation, error)

	// List returns all presentations.
	List(ctx context.Context) ([]domain.Presentation, error)

	// Get retrieves a presentation by ID.
	Get(ctx context.Context, presentationID string) (*domain.Presentation, error)

	// Delete removes a presentation.
	Delete(ctx context.Context, presentationID string) error

	// Themes returns the fixed theme catalog.
	Themes() []domain.Theme

	// ExportPDF writes the presentation as a PDF and returns the suggested file name.
	ExportPDF(ctx context.Context, presentationID string, w io.Writer) (string, error)
}
