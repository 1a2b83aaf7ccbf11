package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

func TestSlidePreview_NonTerminalIsPlain(t *testing.T) {
	sp := newSlidePreview(&bytes.Buffer{})

	assert.False(t, sp.color)
	assert.Equal(t, defaultPreviewWidth, sp.width)
}

func TestSlidePreview_Render(t *testing.T) {
	p := &domain.Presentation{
		Title: "Deck",
		Theme: domain.CatalogTheme("minimal"),
		Slides: []domain.Slide{
			{Title: "First", Content: "Alpha"},
			{Title: "Second", Content: "Beta"},
		},
	}

	out := slidePreview{width: 40}.Render(p)

	assert.True(t, strings.HasPrefix(out, "Deck\n"))
	assert.Contains(t, out, "Slides: 2")
	assert.Contains(t, out, "1. First")
	assert.Contains(t, out, "2. Second")
	assert.Contains(t, out, "Alpha")
	assert.NotContains(t, out, "\x1b[")
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
