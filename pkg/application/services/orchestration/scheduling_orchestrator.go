package orchestration

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quillon/jobshop/pkg/application/services/scheduling"
	"github.com/quillon/jobshop/pkg/domain/entities"
	"github.com/quillon/jobshop/pkg/domain/repositories"
)

// SchedulingOrchestrator coordinates the pure scheduling engine with the
// repositories: fetch a fresh snapshot of work centers and committed
// bookings, run the engine, optionally persist the suggested assignments.
// The transactional read-then-write lives here, not in the engine; callers
// needing strict exclusivity per work center must serialize ScheduleJob
// calls that commit to the same centers.
type SchedulingOrchestrator struct {
	engine         *scheduling.Engine
	workCenterRepo repositories.WorkCenterRepository
	bookingRepo    repositories.BookingRepository
	logger         *zap.SugaredLogger
}

// NewSchedulingOrchestrator creates a new scheduling orchestrator
func NewSchedulingOrchestrator(
	engine *scheduling.Engine,
	workCenterRepo repositories.WorkCenterRepository,
	bookingRepo repositories.BookingRepository,
	logger *zap.SugaredLogger,
) *SchedulingOrchestrator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SchedulingOrchestrator{
		engine:         engine,
		workCenterRepo: workCenterRepo,
		bookingRepo:    bookingRepo,
		logger:         logger,
	}
}

// ScheduleJob generates a scheduling suggestion for the job against the
// current repository state. When commit is true, the suggested assignments
// are persisted as bookings so subsequent runs see them as committed.
func (o *SchedulingOrchestrator) ScheduleJob(
	ctx context.Context,
	job *entities.Job,
	now time.Time,
	commit bool,
) (*entities.SchedulingSuggestion, error) {

	workCenters, err := o.workCenterRepo.GetAllWorkCenters()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load work centers")
	}

	centerIDs := make([]entities.WorkCenterID, 0, len(workCenters))
	for _, wc := range workCenters {
		centerIDs = append(centerIDs, wc.ID)
	}
	bookings, err := o.bookingRepo.GetBookings(centerIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load booking snapshot")
	}

	suggestion, err := o.engine.GenerateSchedulingSuggestions(ctx, scheduling.ScheduleRequest{
		Job:         job,
		WorkCenters: workCenters,
		Bookings:    bookings,
		Now:         now,
	})
	if err != nil {
		return nil, err
	}

	if commit {
		if err := o.CommitSuggestion(job.ID, suggestion); err != nil {
			return nil, err
		}
	}

	o.logger.Infow("job scheduled",
		"job", job.ID, "committed", commit, "summary", suggestion.Summary())

	return suggestion, nil
}

// CommitSuggestion persists the suggestion's assignments as bookings
func (o *SchedulingOrchestrator) CommitSuggestion(jobID string, suggestion *entities.SchedulingSuggestion) error {
	bookings := make([]entities.Booking, 0, len(suggestion.Assignments))
	for _, a := range suggestion.Assignments {
		bookings = append(bookings, entities.Booking{
			ID:           uuid.NewString(),
			WorkCenterID: a.WorkCenterID,
			JobID:        jobID,
			OperationID:  a.OperationID,
			Interval:     a.Interval,
		})
	}
	if err := o.bookingRepo.SaveBookings(bookings); err != nil {
		return errors.Wrapf(err, "failed to persist bookings for job %s", jobID)
	}
	return nil
}
