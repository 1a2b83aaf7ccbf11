package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClampSlideCount tests slide count bounds
func TestClampSlideCount(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultSlideCount},
		{-4, MinSlideCount},
		{1, 1},
		{7, 7},
		{10, 10},
		{25, MaxSlideCount},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSlideCount(tt.in), "input %d", tt.in)
	}
}

// TestCatalogTheme tests lookup and the default entry
func TestCatalogTheme(t *testing.T) {
	assert.Equal(t, "creative", CatalogTheme("creative").ID)
	assert.Equal(t, "vibrant", CatalogTheme(" vibrant ").ID)
	assert.Equal(t, ThemeCatalog()[0], CatalogTheme("does-not-exist"))
	assert.Equal(t, ThemeCatalog()[0], CatalogTheme(""))
}

// TestThemeCatalog_IDsUnique tests that catalog ids do not collide
func TestThemeCatalog_IDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, th := range ThemeCatalog() {
		assert.False(t, seen[th.ID], "duplicate theme %s", th.ID)
		seen[th.ID] = true
		assert.NotEmpty(t, th.BackgroundColor)
		assert.NotEmpty(t, th.TextColor)
	}
	assert.NotEqual(t, ThemeChoiceAI, ThemeCatalog()[0].ID)
}

// TestFallbackTheme tests the fallback theme values
func TestFallbackTheme(t *testing.T) {
	th := FallbackTheme()
	assert.Equal(t, "Professional Blue", th.Name)
	assert.Equal(t, "#f8f9fa", th.BackgroundColor)
	assert.Equal(t, "#212529", th.TextColor)
}

// TestLayoutStyle_IsValid tests layout style validation
func TestLayoutStyle_IsValid(t *testing.T) {
	assert.True(t, LayoutStandard.IsValid())
	assert.True(t, LayoutModern.IsValid())
	assert.True(t, LayoutMinimal.IsValid())
	assert.False(t, LayoutStyle("fancy").IsValid())
}
