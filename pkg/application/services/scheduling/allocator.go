package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// Allocator places each operation, in sequence order, on a work center via
// the calendar's first-fit slot search. Each placement is recorded as a
// booking so later operations in the same run see it as committed.
type Allocator struct {
	calendar *Calendar
	logger   *zap.SugaredLogger
}

// NewAllocator creates an allocator over the given calendar
func NewAllocator(calendar *Calendar, logger *zap.SugaredLogger) *Allocator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Allocator{calendar: calendar, logger: logger}
}

// Allocate schedules the ordered operations of one job against the work
// center set and the committed booking snapshot. It never aborts on a
// single operation's infeasibility: failed placements degrade to a critical
// capacity_exceeded warning plus a best-effort interval at the horizon
// boundary.
func (a *Allocator) Allocate(
	jobID string,
	ops []entities.Operation,
	workCenters []*entities.WorkCenter,
	committed []entities.Booking,
	startAt time.Time,
) ([]entities.ScheduledAssignment, []entities.ConflictWarning) {

	centersByID := make(map[entities.WorkCenterID]*entities.WorkCenter, len(workCenters))
	var active []*entities.WorkCenter
	for _, wc := range workCenters {
		centersByID[wc.ID] = wc
		if wc.IsActive {
			active = append(active, wc)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	bookings := make([]entities.Booking, len(committed))
	copy(bookings, committed)

	assignments := make([]entities.ScheduledAssignment, 0, len(ops))
	var warnings []entities.ConflictWarning

	previousEnd := startAt
	for _, op := range ops {
		earliest := previousEnd

		target, warning := a.resolveWorkCenter(&op, centersByID, active)
		if warning != nil {
			warnings = append(warnings, *warning)
		}

		var slot entities.Interval
		var slotErr error
		switch {
		case target != nil:
			slot, slotErr = a.calendar.FindSlot(target, op.EstimatedDuration, earliest, bookings)
		default:
			target, slot, slotErr = a.probePool(&op, active, earliest, bookings)
		}

		if slotErr != nil {
			target, slot = a.bestEffortPlacement(&op, target, active, earliest)
			warnings = append(warnings, entities.ConflictWarning{
				Type:     entities.ConflictCapacityExceeded,
				Severity: entities.SeverityCritical,
				Message: fmt.Sprintf("operation %s (%s) could not be placed within the scheduling horizon: %v",
					op.ID, op.Name, slotErr),
				AffectedOperationIDs: []string{op.ID},
				SuggestedResolution:  "add capacity, relax the operation's work center preference, or extend the horizon",
			})
			a.logger.Warnw("operation placement degraded to horizon boundary",
				"job", jobID, "operation", op.ID, "work_center", target.ID, "error", slotErr)
		}

		bookings = append(bookings, entities.Booking{
			WorkCenterID: target.ID,
			JobID:        jobID,
			OperationID:  op.ID,
			Interval:     slot,
		})
		assignments = append(assignments, entities.ScheduledAssignment{
			OperationID:       op.ID,
			OperationName:     op.Name,
			WorkCenterID:      target.ID,
			Interval:          slot,
			EstimatedDuration: op.EstimatedDuration,
		})
		previousEnd = slot.End

		a.logger.Debugw("operation placed",
			"job", jobID, "operation", op.ID, "work_center", target.ID,
			"start", slot.Start, "end", slot.End)
	}

	return assignments, warnings
}

// resolveWorkCenter returns the operation's preferred work center when it is
// set, known, and active. A set-but-unusable preference yields a
// work_center_unavailable warning and a nil target, which sends the
// operation to the default pool.
func (a *Allocator) resolveWorkCenter(
	op *entities.Operation,
	centersByID map[entities.WorkCenterID]*entities.WorkCenter,
	active []*entities.WorkCenter,
) (*entities.WorkCenter, *entities.ConflictWarning) {

	if op.PreferredWorkCenterID == "" {
		return nil, nil
	}
	wc, found := centersByID[op.PreferredWorkCenterID]
	if found && wc.IsActive {
		return wc, nil
	}

	reason := "is not active"
	if !found {
		reason = "does not exist"
	}
	return nil, &entities.ConflictWarning{
		Type:     entities.ConflictWorkCenterUnavailable,
		Severity: entities.SeverityWarning,
		Message: fmt.Sprintf("operation %s prefers work center %s, which %s; falling back to the default pool",
			op.ID, op.PreferredWorkCenterID, reason),
		AffectedOperationIDs: []string{op.ID},
		SuggestedResolution:  "update the operation's work center preference",
	}
}

// probePool picks the least-loaded capable work center: the active,
// skill-matching center whose first-fit slot starts earliest. The pool is
// ID-sorted, so ties deterministically go to the smallest ID.
func (a *Allocator) probePool(
	op *entities.Operation,
	active []*entities.WorkCenter,
	earliest time.Time,
	bookings []entities.Booking,
) (*entities.WorkCenter, entities.Interval, error) {

	var best *entities.WorkCenter
	var bestSlot entities.Interval
	capable := 0

	for _, wc := range active {
		if !wc.HasSkills(op.SkillRequirements) {
			continue
		}
		capable++
		slot, err := a.calendar.FindSlot(wc, op.EstimatedDuration, earliest, bookings)
		if err != nil {
			continue
		}
		if best == nil || slot.Start.Before(bestSlot.Start) {
			best, bestSlot = wc, slot
		}
	}

	if best != nil {
		return best, bestSlot, nil
	}
	if capable == 0 {
		return nil, entities.Interval{}, errors.Newf(
			"no active work center offers skills %v", op.SkillRequirements)
	}
	return nil, entities.Interval{}, errors.Wrapf(entities.ErrNoCapacityFound,
		"all %d capable work centers are booked out", capable)
}

// bestEffortPlacement books the operation at the horizon boundary so the
// caller still receives a complete, displayable suggestion.
func (a *Allocator) bestEffortPlacement(
	op *entities.Operation,
	target *entities.WorkCenter,
	active []*entities.WorkCenter,
	earliest time.Time,
) (*entities.WorkCenter, entities.Interval) {

	if target == nil && len(active) > 0 {
		target = active[0]
	}
	if target == nil {
		// no reference data at all; anchor the placeholder on a nominal 8h center
		target = &entities.WorkCenter{ID: "unassigned", Name: "Unassigned", CapacityHoursPerDay: 8}
	}
	start := a.calendar.HorizonStart(earliest, target)
	return target, entities.Interval{Start: start, End: start.Add(op.Duration())}
}
