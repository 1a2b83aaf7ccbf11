package driven

import "github.com/custodia-labs/docdeck/internal/core/domain"

// Gateway call outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// GatewayMetrics records AI gateway activity.
type GatewayMetrics interface {
	// ObserveCall counts one call to a capability with its outcome.
	ObserveCall(capability domain.Capability, outcome string)
}
