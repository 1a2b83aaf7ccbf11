// Package legacy extracts readable text from binary Word 97-2003 and
// PowerPoint 97-2003 files.
//
// The compound file format is not parsed. Runs of printable characters in
// either single-byte or UTF-16LE encoding are collected instead, which
// recovers the body text of typical documents along with some noise.
package legacy

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// compoundFileMagic opens every OLE2 compound file.
var compoundFileMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DefaultMinRun is the shortest character run kept.
const DefaultMinRun = 4

// Extractor handles DOC and PPT files.
type Extractor struct {
	minRun int
}

// New creates a new legacy format extractor.
func New() *Extractor {
	return &Extractor{minRun: DefaultMinRun}
}

// SupportedTypes returns the document types this extractor handles.
func (e *Extractor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeDOC, domain.DocumentTypePPT}
}

// Extract collects printable text runs, preferring the UTF-16 reading when it
// recovers more text.
func (e *Extractor) Extract(_ context.Context, data []byte) (string, error) {
	if !bytes.HasPrefix(data, compoundFileMagic) {
		return "", fmt.Errorf("%w: not an OLE2 compound file", domain.ErrInvalidInput)
	}

	wide := e.runs(decodeUTF16LE(data))
	narrow := e.runs([]rune(string(latin1(data))))
	if utf8.RuneCountInString(strings.Join(wide, "")) >= utf8.RuneCountInString(strings.Join(narrow, "")) {
		return strings.Join(wide, "\n"), nil
	}
	return strings.Join(narrow, "\n"), nil
}

// runs splits text at non-printable characters and keeps runs of at least
// minRun characters that contain a letter.
func (e *Extractor) runs(text []rune) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		s := strings.TrimSpace(string(cur))
		cur = cur[:0]
		if len([]rune(s)) < e.minRun || !strings.ContainsFunc(s, unicode.IsLetter) {
			return
		}
		out = append(out, s)
	}
	for _, r := range text {
		if r == '\r' || r == '\n' {
			flush()
			continue
		}
		if unicode.IsPrint(r) || r == '\t' {
			cur = append(cur, r)
			continue
		}
		flush()
	}
	flush()
	return out
}

// decodeUTF16LE reads data as little-endian UTF-16 code units.
func decodeUTF16LE(data []byte) []rune {
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return utf16.Decode(units)
}

// latin1 maps each byte to its ISO-8859-1 rune, encoded as UTF-8.
func latin1(data []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.Bytes()
}
