package driven

// PromptStore provides access to AI gateway prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names, one per gateway capability.
// Templates are fmt format strings; the placeholders each expects are listed.
const (
	// PromptSlides expects %d (slide count) and %s (source text).
	PromptSlides = "slides"

	// PromptTheme expects %s (content sample).
	PromptTheme = "theme"

	// PromptSummary expects %s (document content).
	PromptSummary = "summary"

	// PromptRelated expects %s (source content) and %s (numbered candidates).
	PromptRelated = "related"

	// PromptInsights expects %s (document content).
	PromptInsights = "insights"

	// PromptEnhance expects %s (topic) and %s (slide listing).
	PromptEnhance = "enhance"

	// PromptSearch expects %s (query) and %s (numbered documents).
	PromptSearch = "search"
)

// PromptNames returns every well-known prompt name.
func PromptNames() []string {
	return []string{
		PromptSlides, PromptTheme, PromptSummary, PromptRelated,
		PromptInsights, PromptEnhance, PromptSearch,
	}
}
