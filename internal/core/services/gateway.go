package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// Character budgets applied to text embedded in prompts.
const (
	summaryBudget          = 12000
	insightsBudget         = 10000
	relatedSourceBudget    = 5000
	relatedCandidateBudget = 2000
	searchDocumentBudget   = 3000
	themeTopicBudget       = 100
)

// Related documents at or below this similarity are discarded.
const relatedThreshold = 0.3

// maxEnhancedResults caps AI search results.
const maxEnhancedResults = 5

// Placeholder insights returned instead of errors.
const (
	InsightsUnparsable = "Could not generate insights for this document."
	InsightsFailed     = "Failed to generate insights. Please try again later."
)

// customThemeName names an AI theme whose name was omitted.
const customThemeName = "Custom Theme"

// capabilityConfig is the per-capability request definition.
type capabilityConfig struct {
	// prompt is the PromptStore name of the template.
	prompt string

	// fallbackTemplate is used when no prompt store is available.
	fallbackTemplate string

	opts driven.GenerateOptions
}

var capabilities = map[domain.Capability]capabilityConfig{
	domain.CapabilitySlideGeneration: {
		prompt:           driven.PromptSlides,
		fallbackTemplate: "Create %d presentation slides from the following text. Respond with a JSON array of objects with \"title\" and \"content\".\n\nText: %s",
		opts:             driven.GenerateOptions{Temperature: 0.7, MaxTokens: 2048},
	},
	domain.CapabilityThemeSuggestion: {
		prompt:           driven.PromptTheme,
		fallbackTemplate: "Suggest a color scheme and font for a presentation about \"%s\". Respond with a JSON object with backgroundColor, textColor, fontFamily and name.",
		opts:             driven.GenerateOptions{Temperature: 0.4},
	},
	domain.CapabilitySummary: {
		prompt:           driven.PromptSummary,
		fallbackTemplate: "Provide a comprehensive summary of the following document.\n\nDocument content:\n%s",
		opts:             driven.GenerateOptions{Temperature: 0.3, MaxTokens: 1024},
	},
	domain.CapabilityRelatedDocuments: {
		prompt:           driven.PromptRelated,
		fallbackTemplate: "Source document:\n\"%s\"\n\nOther documents:\n%s\nRespond with a JSON array of {\"documentIndex\", \"similarityScore\"} using 1-based indexes.",
		opts:             driven.GenerateOptions{Temperature: 0.2, MaxTokens: 1024},
	},
	domain.CapabilityInsights: {
		prompt:           driven.PromptInsights,
		fallbackTemplate: "Provide 3-5 key insights from the following document as a JSON array of strings.\n\nDocument content:\n%s",
		opts:             driven.GenerateOptions{Temperature: 0.2, MaxTokens: 1024},
	},
	domain.CapabilitySlideEnhancement: {
		prompt:           driven.PromptEnhance,
		fallbackTemplate: "Improve these slides about \"%s\":\n%s\nRespond with a JSON array, one {\"improvedTitle\", \"improvedContent\"} per slide in order.",
		opts:             driven.GenerateOptions{Temperature: 0.4, MaxTokens: 2048},
	},
	domain.CapabilityEnhancedSearch: {
		prompt:           driven.PromptSearch,
		fallbackTemplate: "Query: \"%s\"\n\nDocuments:\n%s\nRespond with a JSON array of up to 5 {\"documentIndex\", \"snippet\", \"relevanceScore\"} using 1-based indexes.",
		opts:             driven.GenerateOptions{Temperature: 0.2, MaxTokens: 1024},
	},
}

// Gateway runs the AI capabilities against a TextGenerator.
// Every capability goes through one executor: load the template, fill it,
// generate, then pull a JSON fragment out of the response.
type Gateway struct {
	llm     driven.TextGenerator
	prompts driven.PromptStore
	ids     driven.IDGenerator
	metrics driven.GatewayMetrics
}

// NewGateway creates a gateway.
// llm may be nil, in which case every call reports a transport failure.
// prompts may be nil, in which case built-in templates are used.
func NewGateway(llm driven.TextGenerator, prompts driven.PromptStore, ids driven.IDGenerator) *Gateway {
	return &Gateway{
		llm:     llm,
		prompts: prompts,
		ids:     ids,
	}
}

// SetMetrics sets the recorder for call outcomes.
func (g *Gateway) SetMetrics(m driven.GatewayMetrics) {
	g.metrics = m
}

// Available reports whether a text generator is configured.
func (g *Gateway) Available() bool {
	return g.llm != nil
}

func (g *Gateway) observe(c domain.Capability, outcome string) {
	if g.metrics != nil {
		g.metrics.ObserveCall(c, outcome)
	}
}

func (g *Gateway) template(cfg capabilityConfig) string {
	if g.prompts == nil {
		return cfg.fallbackTemplate
	}
	tmpl, err := g.prompts.Load(cfg.prompt)
	if err != nil || strings.TrimSpace(tmpl) == "" {
		logger.Debug("Prompt %q unavailable, using built-in: %v", cfg.prompt, err)
		return cfg.fallbackTemplate
	}
	return tmpl
}

// generate fills the capability template and returns the raw generated text.
func (g *Gateway) generate(ctx context.Context, c domain.Capability, args ...any) (string, error) {
	cfg, ok := capabilities[c]
	if !ok {
		return "", fmt.Errorf("unknown capability %q", c)
	}
	if g.llm == nil {
		return "", &domain.GatewayError{Capability: c, Kind: domain.ErrTransportFailure, Err: domain.ErrLLMUnavailable}
	}

	prompt := fmt.Sprintf(g.template(cfg), args...)
	logger.Debug("Gateway %s: prompt %d chars, temperature %.1f", c, len(prompt), cfg.opts.Temperature)

	text, err := g.llm.Generate(ctx, prompt, cfg.opts)
	if err != nil {
		return "", &domain.GatewayError{Capability: c, Kind: domain.ErrTransportFailure, Err: err}
	}
	return text, nil
}

// generateJSON runs a capability and decodes the JSON fragment of its response into v.
func (g *Gateway) generateJSON(ctx context.Context, c domain.Capability, v any, args ...any) error {
	text, err := g.generate(ctx, c, args...)
	if err != nil {
		return err
	}
	if err := ExtractJSON(text, v); err != nil {
		return &domain.GatewayError{Capability: c, Kind: domain.ErrMalformedPayload, Err: err}
	}
	return nil
}

// slidePayload is one generated slide.
type slidePayload struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	ImageDescription string `json:"imageDescription"`
}

// GenerateSlides creates count slides from text.
// Slide colours come from theme, or white on black text when theme is nil.
// Failures are returned to the caller.
func (g *Gateway) GenerateSlides(
	ctx context.Context, text string, theme *domain.Theme, count int,
) ([]domain.Slide, error) {
	c := domain.CapabilitySlideGeneration

	var payload []slidePayload
	if err := g.generateJSON(ctx, c, &payload, count, text); err != nil {
		g.observe(c, driven.OutcomeError)
		return nil, err
	}
	if len(payload) == 0 {
		g.observe(c, driven.OutcomeError)
		return nil, &domain.GatewayError{Capability: c, Kind: domain.ErrMalformedPayload, Err: errors.New("no slides in response")}
	}

	bg, fg := domain.ColorWhite, domain.ColorBlack
	if theme != nil {
		bg, fg = theme.BackgroundColor, theme.TextColor
	}

	slides := make([]domain.Slide, len(payload))
	for i, p := range payload {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			logger.Debug("Slide %d has no title: %v", i+1, domain.ErrPartialResult)
			title = fmt.Sprintf("Slide %d", i+1)
		}
		slides[i] = domain.Slide{
			ID:              g.ids.NewID(),
			Title:           title,
			Content:         p.Content,
			BackgroundColor: bg,
			TextColor:       fg,
		}
	}

	g.observe(c, driven.OutcomeSuccess)
	return slides, nil
}

type themePayload struct {
	Name            string `json:"name"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
}

// SuggestTheme proposes a theme for a topic. Only the first 100 characters
// of topic are sent. Any failure yields the fallback theme.
func (g *Gateway) SuggestTheme(ctx context.Context, topic string) domain.Theme {
	c := domain.CapabilityThemeSuggestion

	var payload themePayload
	if err := g.generateJSON(ctx, c, &payload, truncateRunes(topic, themeTopicBudget, "")); err != nil {
		logger.Warn("Theme suggestion failed, using fallback theme: %v", err)
		g.observe(c, driven.OutcomeFallback)
		return domain.FallbackTheme()
	}

	fallback := domain.FallbackTheme()
	theme := domain.Theme{
		ID:              g.ids.NewID(),
		Name:            orDefault(payload.Name, customThemeName),
		BackgroundColor: orDefault(payload.BackgroundColor, fallback.BackgroundColor),
		TextColor:       orDefault(payload.TextColor, fallback.TextColor),
		FontFamily:      orDefault(payload.FontFamily, fallback.FontFamily),
	}

	g.observe(c, driven.OutcomeSuccess)
	return theme
}

// Summarize summarises document content. Failures are returned to the caller.
func (g *Gateway) Summarize(ctx context.Context, content string) (string, error) {
	c := domain.CapabilitySummary

	text, err := g.generate(ctx, c, truncateRunes(content, summaryBudget, "..."))
	if err != nil {
		g.observe(c, driven.OutcomeError)
		return "", err
	}

	g.observe(c, driven.OutcomeSuccess)
	return strings.TrimSpace(text), nil
}

type relatedPayload struct {
	DocumentIndex   int     `json:"documentIndex"`
	SimilarityScore float64 `json:"similarityScore"`
	Reason          string  `json:"reason"`
}

// FindRelated rates candidates against source and keeps those above the
// similarity threshold. Failures yield an empty result.
func (g *Gateway) FindRelated(
	ctx context.Context, source domain.Document, candidates []domain.Document,
) []domain.RelatedDocument {
	if len(candidates) == 0 {
		return []domain.RelatedDocument{}
	}
	c := domain.CapabilityRelatedDocuments

	var listing strings.Builder
	for i, d := range candidates {
		fmt.Fprintf(&listing, "Document %d: %q\n%s\n\n", i+1, d.Name, truncateRunes(d.Content, relatedCandidateBudget, ""))
	}

	var payload []relatedPayload
	err := g.generateJSON(ctx, c, &payload, truncateRunes(source.Content, relatedSourceBudget, ""), listing.String())
	if err != nil {
		logger.Warn("Related document search failed: %v", err)
		g.observe(c, driven.OutcomeFallback)
		return []domain.RelatedDocument{}
	}

	related := []domain.RelatedDocument{}
	for _, p := range payload {
		idx := p.DocumentIndex - 1
		if idx < 0 || idx >= len(candidates) {
			logger.Debug("Dropping related index %d out of range", p.DocumentIndex)
			continue
		}
		sim := domain.Clamp01(p.SimilarityScore)
		if sim <= relatedThreshold {
			continue
		}
		d := candidates[idx]
		related = append(related, domain.RelatedDocument{
			ID:         d.ID,
			Name:       d.Name,
			Similarity: sim,
			FileType:   d.FileType,
		})
	}

	g.observe(c, driven.OutcomeSuccess)
	return related
}

// Insights extracts key insights from content.
// Failures are reported as a single placeholder insight.
func (g *Gateway) Insights(ctx context.Context, content string) []string {
	c := domain.CapabilityInsights

	var insights []string
	err := g.generateJSON(ctx, c, &insights, truncateRunes(content, insightsBudget, "..."))
	switch {
	case err == nil:
		g.observe(c, driven.OutcomeSuccess)
		if insights == nil {
			insights = []string{}
		}
		return insights
	case errors.Is(err, ErrNoJSONFragment):
		logger.Warn("Insights response had no JSON: %v", err)
		g.observe(c, driven.OutcomeFallback)
		return []string{InsightsUnparsable}
	default:
		logger.Warn("Insights failed: %v", err)
		g.observe(c, driven.OutcomeFallback)
		return []string{InsightsFailed}
	}
}

type enhancementPayload struct {
	OriginalTitle    string `json:"originalTitle"`
	ImprovedTitle    string `json:"improvedTitle"`
	ImprovedContent  string `json:"improvedContent"`
	VisualSuggestion string `json:"visualSuggestion"`
}

// EnhanceSlides rewrites slide titles and content by position.
// Slides without a matching improvement, or every slide on failure, are returned unchanged.
func (g *Gateway) EnhanceSlides(ctx context.Context, topic string, slides []domain.Slide) []domain.Slide {
	c := domain.CapabilitySlideEnhancement

	var listing strings.Builder
	for _, s := range slides {
		fmt.Fprintf(&listing, "Slide: %s\nContent: %s\n\n", s.Title, s.Content)
	}

	var payload []enhancementPayload
	if err := g.generateJSON(ctx, c, &payload, topic, listing.String()); err != nil {
		logger.Warn("Slide enhancement failed, keeping original slides: %v", err)
		g.observe(c, driven.OutcomeFallback)
		return slides
	}

	enhanced := make([]domain.Slide, len(slides))
	copy(enhanced, slides)
	for i := range enhanced {
		if i >= len(payload) {
			break
		}
		enhanced[i].Title = orDefault(payload[i].ImprovedTitle, enhanced[i].Title)
		enhanced[i].Content = orDefault(payload[i].ImprovedContent, enhanced[i].Content)
	}

	g.observe(c, driven.OutcomeSuccess)
	return enhanced
}

type searchPayload struct {
	DocumentIndex  int     `json:"documentIndex"`
	Snippet        string  `json:"snippet"`
	RelevanceScore float64 `json:"relevanceScore"`
}

// Search asks for the snippets across documents that best answer query.
// Results are sorted by relevance, best first. Failures are returned so the
// caller can fall back to lexical search.
func (g *Gateway) Search(ctx context.Context, query string, documents []domain.Document) ([]domain.SearchResult, error) {
	c := domain.CapabilityEnhancedSearch

	var listing strings.Builder
	for i, d := range documents {
		fmt.Fprintf(&listing, "Document %d: %q\n%s\n\n", i+1, d.Name, truncateRunes(d.Content, searchDocumentBudget, ""))
	}

	var payload []searchPayload
	if err := g.generateJSON(ctx, c, &payload, query, listing.String()); err != nil {
		g.observe(c, driven.OutcomeError)
		return nil, err
	}

	results := []domain.SearchResult{}
	for _, p := range payload {
		idx := p.DocumentIndex - 1
		if idx < 0 || idx >= len(documents) {
			logger.Debug("Dropping search result index %d out of range", p.DocumentIndex)
			continue
		}
		d := documents[idx]
		results = append(results, domain.SearchResult{
			DocumentID:     d.ID,
			DocumentName:   d.Name,
			DocumentType:   d.FileType,
			Snippet:        p.Snippet,
			RelevanceScore: domain.Clamp01(p.RelevanceScore),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if len(results) > maxEnhancedResults {
		results = results[:maxEnhancedResults]
	}

	g.observe(c, driven.OutcomeSuccess)
	return results, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
