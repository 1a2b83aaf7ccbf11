package domain

import (
	"strings"
	"time"
)

// Colours forced by the minimal layout style.
const (
	ColorWhite = "#ffffff"
	ColorBlack = "#000000"
)

// ThemeChoiceAI selects an AI-suggested theme instead of a catalog entry.
const ThemeChoiceAI = "ai"

// DefaultPresentationTitle is used when a presentation is generated without a title.
const DefaultPresentationTitle = "Untitled Presentation"

// Slide count bounds for generation.
const (
	DefaultSlideCount = 3
	MinSlideCount     = 1
	MaxSlideCount     = 10
)

// Slide is a single page of a presentation.
// A slide belongs to exactly one presentation.
type Slide struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	ImageURL        string `json:"imageUrl,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
}

// Theme is a named colour and font configuration.
// Once attached to a presentation it is held by value.
type Theme struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
}

// Presentation is an ordered sequence of slides with a theme.
type Presentation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slides       []Slide   `json:"slides"`
	Theme        Theme     `json:"theme"`
	DateCreated  time.Time `json:"dateCreated"`
	DateModified time.Time `json:"dateModified"`
}

// LayoutStyle is the colour policy applied to slides after generation.
type LayoutStyle string

// Available layout styles.
const (
	LayoutStandard LayoutStyle = "standard"
	LayoutModern   LayoutStyle = "modern"
	LayoutMinimal  LayoutStyle = "minimal"
)

// IsValid returns true if the layout style is recognised.
func (l LayoutStyle) IsValid() bool {
	switch l {
	case LayoutStandard, LayoutModern, LayoutMinimal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l LayoutStyle) String() string {
	return string(l)
}

// FallbackTheme returns the theme substituted when theme suggestion fails.
func FallbackTheme() Theme {
	return Theme{
		ID:              "professional",
		Name:            "Professional Blue",
		BackgroundColor: "#f8f9fa",
		TextColor:       "#212529",
		FontFamily:      "Roboto, sans-serif",
	}
}

// ThemeCatalog returns the fixed themes in display order.
// The first entry is the default for unknown ids.
func ThemeCatalog() []Theme {
	return []Theme{
		FallbackTheme(),
		{
			ID:              "creative",
			Name:            "Creative Orange",
			BackgroundColor: "#fff8f0",
			TextColor:       "#663300",
			FontFamily:      "Montserrat, sans-serif",
		},
		{
			ID:              "minimal",
			Name:            "Minimal Black",
			BackgroundColor: ColorWhite,
			TextColor:       ColorBlack,
			FontFamily:      "Inter, sans-serif",
		},
		{
			ID:              "vibrant",
			Name:            "Vibrant Purple",
			BackgroundColor: "#f5f0ff",
			TextColor:       "#4b0082",
			FontFamily:      "Poppins, sans-serif",
		},
	}
}

// CatalogTheme looks up a catalog theme by id.
// Unknown ids resolve to the first catalog entry.
func CatalogTheme(id string) Theme {
	catalog := ThemeCatalog()
	id = strings.TrimSpace(id)
	for _, t := range catalog {
		if t.ID == id {
			return t
		}
	}
	return catalog[0]
}

// ClampSlideCount bounds a requested slide count, using the default for zero.
func ClampSlideCount(n int) int {
	switch {
	case n == 0:
		return DefaultSlideCount
	case n < MinSlideCount:
		return MinSlideCount
	case n > MaxSlideCount:
		return MaxSlideCount
	default:
		return n
	}
}
