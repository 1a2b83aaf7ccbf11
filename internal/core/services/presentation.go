package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure PresentationService implements the interface.
var _ driving.PresentationService = (*PresentationService)(nil)

// PresentationService runs the slide pipeline and manages stored presentations.
type PresentationService struct {
	records  driven.RecordStore
	gateway  *Gateway
	ids      driven.IDGenerator
	exporter driven.PresentationExporter
	now      func() time.Time
}

// PresentationOption configures a PresentationService.
type PresentationOption func(*PresentationService)

// WithPresentationClock overrides the time source for presentation dates.
func WithPresentationClock(now func() time.Time) PresentationOption {
	return func(s *PresentationService) {
		s.now = now
	}
}

// WithExporter sets the PDF exporter.
func WithExporter(e driven.PresentationExporter) PresentationOption {
	return func(s *PresentationService) {
		s.exporter = e
	}
}

// NewPresentationService creates a new presentation service.
func NewPresentationService(
	records driven.RecordStore,
	gateway *Gateway,
	ids driven.IDGenerator,
	opts ...PresentationOption,
) *PresentationService {
	s := &PresentationService{
		records: records,
		gateway: gateway,
		ids:     ids,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate turns source text into a stored presentation:
// resolve the theme, generate slides, optionally enhance them, apply the
// layout style, then assemble and save. Any failure aborts with nothing saved.
func (s *PresentationService) Generate(ctx context.Context, req driving.GenerateRequest) (*domain.Presentation, error) {
	logger.Section("Slide Pipeline")

	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: source text is required", domain.ErrInvalidInput)
	}
	layout := req.LayoutStyle
	if layout == "" {
		layout = domain.LayoutStandard
	}
	if !layout.IsValid() {
		return nil, fmt.Errorf("%w: unknown layout style %q", domain.ErrInvalidInput, req.LayoutStyle)
	}
	count := domain.ClampSlideCount(req.NumSlides)

	theme := s.resolveTheme(ctx, req.ThemeChoice, req.Text)
	logger.Debug("Theme: %s (%s)", theme.Name, theme.ID)

	slides, err := s.gateway.GenerateSlides(ctx, req.Text, &theme, count)
	if err != nil {
		return nil, fmt.Errorf("generate slides: %w", err)
	}
	logger.Debug("Generated %d slides", len(slides))

	if req.UseEnhancement {
		slides = s.gateway.EnhanceSlides(ctx, req.Title, slides)
	}

	applyLayout(slides, layout, theme)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = domain.DefaultPresentationTitle
	}
	now := s.now().UTC()
	p := domain.Presentation{
		ID:           s.ids.NewID(),
		Title:        title,
		Slides:       slides,
		Theme:        theme,
		DateCreated:  now,
		DateModified: now,
	}

	saved, err := s.records.SavePresentation(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save presentation: %w", err)
	}

	logger.Info("Created presentation %q with %d slides", saved.Title, len(saved.Slides))
	return &saved, nil
}

// resolveTheme picks the catalog theme, or asks the gateway for one.
func (s *PresentationService) resolveTheme(ctx context.Context, choice, text string) domain.Theme {
	if strings.TrimSpace(choice) == domain.ThemeChoiceAI {
		return s.gateway.SuggestTheme(ctx, text)
	}
	return domain.CatalogTheme(choice)
}

// applyLayout sets every slide's colours according to the layout style.
func applyLayout(slides []domain.Slide, layout domain.LayoutStyle, theme domain.Theme) {
	bg, fg := theme.BackgroundColor, theme.TextColor
	if layout == domain.LayoutMinimal {
		bg, fg = domain.ColorWhite, domain.ColorBlack
	}
	for i := range slides {
		slides[i].BackgroundColor = bg
		slides[i].TextColor = fg
	}
}

// List returns all presentations.
func (s *PresentationService) List(ctx context.Context) ([]domain.Presentation, error) {
	return s.records.ListPresentations(ctx)
}

// Get retrieves a presentation by ID.
func (s *PresentationService) Get(ctx context.Context, presentationID string) (*domain.Presentation, error) {
	return s.records.GetPresentation(ctx, presentationID)
}

// Delete removes a presentation.
func (s *PresentationService) Delete(ctx context.Context, presentationID string) error {
	return s.records.DeletePresentation(ctx, presentationID)
}

// Themes returns the fixed theme catalog.
func (s *PresentationService) Themes() []domain.Theme {
	return domain.ThemeCatalog()
}

// ExportPDF writes the presentation as a PDF.
func (s *PresentationService) ExportPDF(ctx context.Context, presentationID string, w io.Writer) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("export pdf: %w", domain.ErrNotImplemented)
	}
	p, err := s.records.GetPresentation(ctx, presentationID)
	if err != nil {
		return "", err
	}
	if err := s.exporter.ExportPDF(ctx, w, p); err != nil {
		return "", fmt.Errorf("export pdf: %w", err)
	}
	return presentationFileName(p), nil
}
