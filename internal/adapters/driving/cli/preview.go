package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

const (
	defaultPreviewWidth = 72
	maxPreviewWidth     = 100
)

// slidePreview renders slides as boxes in the terminal.
type slidePreview struct {
	width int
	color bool
}

// newSlidePreview sizes the preview to w when it is a terminal.
// Colours are only used on terminals.
func newSlidePreview(w io.Writer) slidePreview {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return slidePreview{width: defaultPreviewWidth}
	}

	width := defaultPreviewWidth
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 10 {
		width = min(cols-2, maxPreviewWidth)
	}
	return slidePreview{width: width, color: true}
}

// Render draws every slide of p.
func (sp slidePreview) Render(p *domain.Presentation) string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle()
	if sp.color {
		muted = muted.Foreground(lipgloss.Color("241"))
	}
	b.WriteString(header.Render(p.Title))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("Theme: %s  Slides: %d  Created: %s",
		p.Theme.Name, len(p.Slides), p.DateCreated.Local().Format(dateLayout))))
	b.WriteString("\n\n")

	for i, slide := range p.Slides {
		b.WriteString(sp.renderSlide(i+1, slide, p.Theme))
		b.WriteString("\n")
	}
	return b.String()
}

func (sp slidePreview) renderSlide(n int, slide domain.Slide, theme domain.Theme) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(sp.width)
	title := lipgloss.NewStyle().Bold(true)

	if sp.color {
		bg := lipgloss.Color(firstNonEmpty(slide.BackgroundColor, theme.BackgroundColor, domain.ColorWhite))
		fg := lipgloss.Color(firstNonEmpty(slide.TextColor, theme.TextColor, domain.ColorBlack))
		box = box.Background(bg).Foreground(fg).BorderForeground(fg)
		title = title.Background(bg).Foreground(fg)
	}

	body := fmt.Sprintf("%s\n\n%s", title.Render(fmt.Sprintf("%d. %s", n, slide.Title)), slide.Content)
	return box.Render(body)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
