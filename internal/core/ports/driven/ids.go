package driven

// IDGenerator assigns identifiers to new records.
type IDGenerator interface {
	// NewID returns a fresh identifier, unique within the store.
	NewID() string
}
