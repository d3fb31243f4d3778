package entities

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// Operation represents one sequenced manufacturing step within a job.
// Operations are immutable once passed into the engine for a scheduling run.
type Operation struct {
	ID                    string
	Name                  string
	SequenceOrder         int
	EstimatedDuration     int // minutes
	PreferredWorkCenterID WorkCenterID
	SkillRequirements     []string
}

// NewOperation creates an operation, validating sequence order and duration
func NewOperation(id, name string, sequenceOrder, estimatedDuration int) (*Operation, error) {
	if id == "" {
		return nil, errors.New("operation ID must not be empty")
	}
	if sequenceOrder <= 0 {
		return nil, errors.Newf("operation %s: sequence order must be positive, got %d", id, sequenceOrder)
	}
	if estimatedDuration <= 0 {
		return nil, errors.Newf("operation %s: estimated duration must be positive, got %d", id, estimatedDuration)
	}
	return &Operation{
		ID:                id,
		Name:              name,
		SequenceOrder:     sequenceOrder,
		EstimatedDuration: estimatedDuration,
	}, nil
}

// Duration returns the estimated duration as a time.Duration
func (o *Operation) Duration() time.Duration {
	return time.Duration(o.EstimatedDuration) * time.Minute
}

// LineItem represents a quote line item used to synthesize a default
// operation list for jobs created without explicit routing. Quantities are
// decimal because material-based line items are quoted fractionally.
type LineItem struct {
	ID             string
	Description    string
	Quantity       decimal.Decimal
	MinutesPerUnit decimal.Decimal // zero = engine default
}

// Job represents a unit of manufacturing work composed of ordered operations
type Job struct {
	ID            string
	DueDate       time.Time // zero value = engine applies its default
	Operations    []Operation
	PriorityLevel int // advisory only, does not alter placement order
	Quantity      int
}
