package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGatewayError_Unwrap tests that both kind and cause are matchable
func TestGatewayError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&GatewayError{Capability: CapabilitySummary, Kind: ErrTransportFailure, Err: cause})

	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMalformedPayload)
	assert.Equal(t, "document_summary: transport failure: connection refused", err.Error())

	var gwErr *GatewayError
	assert.True(t, errors.As(err, &gwErr))
	assert.Equal(t, CapabilitySummary, gwErr.Capability)
}

// TestGatewayError_NoCause tests formatting without a cause
func TestGatewayError_NoCause(t *testing.T) {
	err := &GatewayError{Capability: CapabilitySlideGeneration, Kind: ErrMalformedPayload}
	assert.Equal(t, "slide_generation: malformed payload", err.Error())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

// TestErrors_Distinct tests sentinels are not aliases of each other
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrNotImplemented, ErrUnsupportedType, ErrLLMUnavailable,
		ErrTransportFailure, ErrMalformedPayload, ErrPartialResult,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
