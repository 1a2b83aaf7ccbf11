package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentType identifies the declared format of an uploaded document.
type DocumentType string

// Accepted document types.
const (
	DocumentTypePDF  DocumentType = "pdf"
	DocumentTypeDOC  DocumentType = "doc"
	DocumentTypeDOCX DocumentType = "docx"
	DocumentTypePPT  DocumentType = "ppt"
	DocumentTypePPTX DocumentType = "pptx"
	DocumentTypeTXT  DocumentType = "txt"
)

// mimeDocumentTypes maps declared MIME types to document types.
var mimeDocumentTypes = map[string]DocumentType{
	"application/pdf":    DocumentTypePDF,
	"application/msword": DocumentTypeDOC,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   DocumentTypeDOCX,
	"application/vnd.ms-powerpoint":                                             DocumentTypePPT,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": DocumentTypePPTX,
	"text/plain": DocumentTypeTXT,
}

// DocumentTypes returns every accepted document type.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypePDF,
		DocumentTypeDOC,
		DocumentTypeDOCX,
		DocumentTypePPT,
		DocumentTypePPTX,
		DocumentTypeTXT,
	}
}

// IsValid returns true if the document type is accepted.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePDF, DocumentTypeDOC, DocumentTypeDOCX,
		DocumentTypePPT, DocumentTypePPTX, DocumentTypeTXT:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// ResolveDocumentType determines the document type from a declared MIME type.
// The file name extension is used only when no MIME type is declared or it is
// application/octet-stream. Returns ErrUnsupportedType otherwise.
func ResolveDocumentType(mimeType, fileName string) (DocumentType, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if t, ok := mimeDocumentTypes[mimeType]; ok {
		return t, nil
	}
	if mimeType != "" && mimeType != "application/octet-stream" {
		return "", ErrUnsupportedType
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if t := DocumentType(ext); t.IsValid() {
		return t, nil
	}

	return "", ErrUnsupportedType
}

// Document is an uploaded file reduced to its plain extracted text.
// Identity and content are immutable after ingestion.
type Document struct {
	// ID is the unique identifier assigned at ingestion.
	ID string `json:"id"`

	// Name is the original file name.
	Name string `json:"name"`

	// FileType is the declared document type.
	FileType DocumentType `json:"fileType"`

	// Content is the plain text extracted from the file.
	Content string `json:"content"`

	// DateAdded is when the document was ingested.
	DateAdded time.Time `json:"dateAdded"`
}
