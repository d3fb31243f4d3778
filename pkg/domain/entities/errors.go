package entities

import "github.com/cockroachdb/errors"

// Validation errors. These reject an entire scheduling call and are the
// caller's responsibility to fix.
var (
	ErrInvalidInterval        = errors.New("interval end must be after start")
	ErrNoOperationsDefined    = errors.New("job has no operations defined")
	ErrDuplicateSequenceOrder = errors.New("duplicate sequence order")
)

// Feasibility errors. These never escape the engine; they are downgraded to
// conflict warnings plus a best-effort placement.
var (
	ErrNoCapacityFound = errors.New("no capacity found within scheduling horizon")
)
