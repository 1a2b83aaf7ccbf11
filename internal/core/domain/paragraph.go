package domain

import (
	"regexp"
	"strings"
)

// ParagraphKind classifies a paragraph for display.
type ParagraphKind string

// Paragraph kinds.
const (
	ParagraphBody    ParagraphKind = "body"
	ParagraphHeading ParagraphKind = "heading"
	ParagraphList    ParagraphKind = "list"
)

// headingMaxWords is the exclusive word limit for an upper-case heading.
const headingMaxWords = 8

var numberedItem = regexp.MustCompile(`^\d+[.)]`)

// Paragraph is a classified block of document text.
type Paragraph struct {
	Kind ParagraphKind `json:"kind"`
	Text string        `json:"text"`
}

// SplitParagraphs splits content on blank-line boundaries.
// Paragraph text is returned verbatim.
func SplitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n\n")
}

// ClassifyParagraph decides whether a paragraph is a heading, a list item, or body text.
func ClassifyParagraph(text string) ParagraphKind {
	if strings.ToUpper(text) == text && len(strings.Split(text, " ")) < headingMaxWords {
		return ParagraphHeading
	}

	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") || numberedItem.MatchString(trimmed) {
		return ParagraphList
	}

	return ParagraphBody
}

// Paragraphs splits and classifies document content.
func Paragraphs(content string) []Paragraph {
	parts := SplitParagraphs(content)
	result := make([]Paragraph, len(parts))
	for i, p := range parts {
		result[i] = Paragraph{Kind: ClassifyParagraph(p), Text: p}
	}
	return result
}
