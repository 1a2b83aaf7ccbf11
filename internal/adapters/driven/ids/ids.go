// Package ids provides driven.IDGenerator implementations.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

var (
	_ driven.IDGenerator = UUID{}
	_ driven.IDGenerator = (*Sequence)(nil)
)

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewID returns a new random UUID.
func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence generates predictable ids of the form <prefix>-<n>, starting at 1.
// It is safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

// NewSequence creates a sequence with the given prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next id in the sequence.
func (s *Sequence) NewID() string {
	return fmt.Sprintf("%s-%d", s.prefix, s.n.Add(1))
}
