package scheduling

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// EngineConfig holds the scheduling engine tunables
type EngineConfig struct {
	// DayStartHour anchors each day's working window (local time).
	DayStartHour int
	// HorizonDays bounds the slot search look-ahead.
	HorizonDays int
	// DefaultDueDateDays is applied when a job carries no due date.
	DefaultDueDateDays int
	// Scoring holds the confidence penalties and due-date slack.
	Scoring ScorerConfig
}

// DefaultEngineConfig returns the standard engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DayStartHour:       8,
		HorizonDays:        90,
		DefaultDueDateDays: 14,
		Scoring:            DefaultScorerConfig(),
	}
}

// Engine orchestrates sequencing, allocation, conflict detection, and
// scoring for one job. Each run is a pure computation over the request:
// the engine holds no state between calls, so it is safe to invoke
// concurrently as long as each call receives its own consistent booking
// snapshot.
type Engine struct {
	config    EngineConfig
	calendar  *Calendar
	allocator *Allocator
	scorer    *Scorer
	logger    *zap.SugaredLogger
}

// NewEngine creates an engine with the default configuration
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig(), nil)
}

// NewEngineWithConfig creates an engine with custom configuration. A nil
// logger disables logging.
func NewEngineWithConfig(config EngineConfig, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	calendar := NewCalendar(config.DayStartHour, config.HorizonDays)
	return &Engine{
		config:    config,
		calendar:  calendar,
		allocator: NewAllocator(calendar, logger),
		scorer:    NewScorer(config.Scoring),
		logger:    logger,
	}
}

// ScheduleRequest carries everything one scheduling run needs. Bookings is
// the caller's snapshot of already-committed intervals for the relevant
// work centers, fetched fresh before the call. Now defaults to the wall
// clock when zero; passing it explicitly makes runs reproducible.
type ScheduleRequest struct {
	Job         *entities.Job
	WorkCenters []*entities.WorkCenter
	Bookings    []entities.Booking
	Now         time.Time
}

// GenerateSchedulingSuggestions assigns each of the job's operations to a
// work center and a concrete interval, honoring sequence order, daily
// working windows, and the committed booking snapshot. Validation problems
// reject the whole call; feasibility problems degrade to itemized conflict
// warnings on a complete, displayable suggestion.
func (e *Engine) GenerateSchedulingSuggestions(ctx context.Context, req ScheduleRequest) (*entities.SchedulingSuggestion, error) {
	if req.Job == nil {
		return nil, errors.Wrap(entities.ErrNoOperationsDefined, "no job provided")
	}
	job := req.Job
	if len(job.Operations) == 0 {
		return nil, errors.Wrapf(entities.ErrNoOperationsDefined, "job %s", job.ID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	dueDate := job.DueDate
	if dueDate.IsZero() {
		dueDate = now.AddDate(0, 0, e.config.DefaultDueDateDays)
	}

	ordered, err := SortOperations(job.Operations)
	if err != nil {
		return nil, errors.Wrapf(err, "job %s", job.ID)
	}

	assignments, warnings := e.allocator.Allocate(job.ID, ordered, req.WorkCenters, req.Bookings, now)
	warnings = append(warnings, DetectConflicts(assignments, req.Bookings)...)
	score, warnings, notes := e.scorer.Score(assignments, warnings, dueDate)

	suggestion := &entities.SchedulingSuggestion{
		Assignments:       assignments,
		ConfidenceScore:   score,
		ConflictWarnings:  warnings,
		OptimizationNotes: notes,
	}

	e.logger.Infow("scheduling suggestion generated",
		"job", job.ID,
		"operations", len(ordered),
		"confidence", score,
		"warnings", len(warnings),
		"due_date", dueDate)

	return suggestion, nil
}

// Duration heuristic for operations synthesized from quote line items.
const (
	defaultMinutesPerUnit   = 15
	minProductionMinutes    = 30
	inspectionMinutes       = 45
	inspectionOperationName = "Quality Control & Inspection"
	productionNamePrefix    = "Production: "
)

// GenerateOperationsFromLineItems synthesizes a default routing for a job
// created from a quote without explicit operations: one production step per
// line item, sized from its quantity, plus a single trailing inspection
// step. Sequence orders follow line-item order with inspection last.
func (e *Engine) GenerateOperationsFromLineItems(lineItems []entities.LineItem) []entities.Operation {
	if len(lineItems) == 0 {
		return nil
	}

	ops := make([]entities.Operation, 0, len(lineItems)+1)
	for i, li := range lineItems {
		perUnit := li.MinutesPerUnit
		if perUnit.IsZero() {
			perUnit = decimal.NewFromInt(defaultMinutesPerUnit)
		}
		minutes := int(li.Quantity.Mul(perUnit).Ceil().IntPart())
		if minutes < minProductionMinutes {
			minutes = minProductionMinutes
		}
		ops = append(ops, entities.Operation{
			ID:                uuid.NewString(),
			Name:              productionNamePrefix + li.Description,
			SequenceOrder:     i + 1,
			EstimatedDuration: minutes,
		})
	}

	ops = append(ops, entities.Operation{
		ID:                uuid.NewString(),
		Name:              inspectionOperationName,
		SequenceOrder:     len(lineItems) + 1,
		EstimatedDuration: inspectionMinutes,
	})

	return ops
}
