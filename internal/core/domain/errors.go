package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available in this build.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an uploaded file is not an accepted document type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the text generation service is not configured.
	// AI features degrade to their fallback behaviour.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Gateway Errors.

	// ErrTransportFailure indicates the generation service could not be reached
	// or answered with a non-success status.
	ErrTransportFailure = errors.New("transport failure")

	// ErrMalformedPayload indicates the generated text held no extractable JSON,
	// or the extracted JSON failed to parse.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrPartialResult indicates the JSON parsed but expected fields were missing.
	ErrPartialResult = errors.New("partial result")
)

// Capability names one operation of the AI gateway.
type Capability string

// Gateway capabilities.
const (
	CapabilitySlideGeneration  Capability = "slide_generation"
	CapabilityThemeSuggestion  Capability = "theme_suggestion"
	CapabilitySummary          Capability = "document_summary"
	CapabilityRelatedDocuments Capability = "related_documents"
	CapabilityInsights         Capability = "document_insights"
	CapabilitySlideEnhancement Capability = "slide_enhancement"
	CapabilityEnhancedSearch   Capability = "enhanced_search"
)

// String returns the string representation.
func (c Capability) String() string {
	return string(c)
}

// GatewayError describes a failed AI gateway call.
// It unwraps to both its Kind sentinel and the underlying cause.
type GatewayError struct {
	Capability Capability
	Kind       error
	Err        error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Capability, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Capability, e.Kind, e.Err)
}

// Unwrap returns the kind sentinel and the cause.
func (e *GatewayError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
