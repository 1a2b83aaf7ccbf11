// Package render draws slides as raster images and bundles them into PDF files.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

// Slide canvas geometry in pixels.
const (
	SlideWidth   = 1600
	SlideHeight  = 900
	SlidePadding = 60
	TitleSize    = 48
	BodySize     = 32

	// JPEGQuality is the encoder quality for slide images.
	JPEGQuality = 70

	titleGap = 40
)

var (
	defaultBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultForeground = color.RGBA{A: 0xff}
)

// Rasterizer draws slides with the Go fonts.
// Theme font families are not embedded; every slide uses Go Regular and Go Bold.
type Rasterizer struct {
	title font.Face
	body  font.Face
}

// NewRasterizer loads the slide fonts.
func NewRasterizer() (*Rasterizer, error) {
	title, err := newFace(gobold.TTF, TitleSize)
	if err != nil {
		return nil, fmt.Errorf("load title font: %w", err)
	}
	body, err := newFace(goregular.TTF, BodySize)
	if err != nil {
		return nil, fmt.Errorf("load body font: %w", err)
	}
	return &Rasterizer{title: title, body: body}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Draw renders a slide. Slide colours win over theme colours, which win over
// black on white.
func (r *Rasterizer) Draw(slide domain.Slide, theme domain.Theme) *image.RGBA {
	bg := colorOr(slide.BackgroundColor, colorOr(theme.BackgroundColor, defaultBackground))
	fg := colorOr(slide.TextColor, colorOr(theme.TextColor, defaultForeground))

	img := image.NewRGBA(image.Rect(0, 0, SlideWidth, SlideHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	maxWidth := SlideWidth - 2*SlidePadding
	y := SlidePadding

	y = r.drawLines(img, r.title, fg, wrap(r.title, slide.Title, maxWidth), y)
	y += titleGap

	for _, para := range strings.Split(slide.Content, "\n") {
		lines := wrap(r.body, para, maxWidth)
		if len(lines) == 0 {
			lines = []string{""}
		}
		y = r.drawLines(img, r.body, fg, lines, y)
		if y > SlideHeight-SlidePadding {
			break
		}
	}

	return img
}

// drawLines draws lines top-down from y and returns the y below the last line.
// Lines past the bottom padding are clipped.
func (r *Rasterizer) drawLines(img draw.Image, face font.Face, fg color.Color, lines []string, y int) int {
	m := face.Metrics()
	lineHeight := m.Height.Ceil()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
	for _, line := range lines {
		if y+lineHeight > SlideHeight-SlidePadding {
			return SlideHeight
		}
		d.Dot = fixed.P(SlidePadding, y+m.Ascent.Ceil())
		d.DrawString(line)
		y += lineHeight
	}
	return y
}

// wrap breaks text into lines no wider than maxWidth pixels.
// A single word wider than maxWidth gets a line of its own.
func wrap(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	var (
		lines []string
		line  string
	)
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if line != "" && font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// EncodeJPEG writes img as a JPEG at slide quality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
}
