package radvis

import "github.com/pkg/errors"

// Linear referencing errors
var (
	// ErrInvalidEdgeLength indicates a conversion against a non-positive or non-finite edge length.
	ErrInvalidEdgeLength = errors.New("invalid edge length")
)

// Segment editing errors
var (
	// ErrInvariantViolation indicates a broken precondition: an index out of bounds,
	// deletion of the last remaining segment or a segment sequence that does not tile its edge.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Reconciliation errors
var (
	// ErrSchemaMismatch indicates that entities selected together do not expose the same fields.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
