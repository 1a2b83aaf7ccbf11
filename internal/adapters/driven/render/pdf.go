package render

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Ensure PDFExporter implements the interface.
var _ driven.PresentationExporter = (*PDFExporter)(nil)

// PDFExporter writes presentations as PDFs with one full-page slide image per page.
type PDFExporter struct {
	raster *Rasterizer
}

// NewPDFExporter creates an exporter.
func NewPDFExporter() (*PDFExporter, error) {
	raster, err := NewRasterizer()
	if err != nil {
		return nil, err
	}
	return &PDFExporter{raster: raster}, nil
}

// ExportPDF renders every slide and writes the document to w.
// Pages are SlideWidth x SlideHeight points.
func (e *PDFExporter) ExportPDF(ctx context.Context, w io.Writer, p *domain.Presentation) error {
	if p == nil {
		return domain.ErrInvalidInput
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: SlideWidth, Ht: SlideHeight},
	})
	doc.SetTitle(p.Title, true)
	doc.SetCreator("docdeck", true)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	for i, slide := range p.Slides {
		if err := ctx.Err(); err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := EncodeJPEG(&buf, e.raster.Draw(slide, p.Theme)); err != nil {
			return fmt.Errorf("encode slide %d: %w", i+1, err)
		}

		name := fmt.Sprintf("slide-%d", i+1)
		doc.RegisterImageOptionsReader(name, opts, &buf)
		doc.AddPage()
		doc.ImageOptions(name, 0, 0, SlideWidth, SlideHeight, false, opts, 0, "")
	}
	if len(p.Slides) == 0 {
		doc.AddPage()
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	logger.Debug("Exported %q as %d PDF pages", p.Title, len(p.Slides))
	return nil
}
