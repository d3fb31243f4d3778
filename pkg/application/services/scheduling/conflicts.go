package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// Overlaps at or above this length are reported as critical.
const criticalOverlapMinutes = 60

type occupancy struct {
	interval    entities.Interval
	operationID string
	label       string
}

// DetectConflicts sweeps the proposed assignments against each other and
// against the committed booking snapshot, reporting every overlapping pair
// on a shared work center. The first-fit search never produces overlaps on
// its own; best-effort placements past the horizon can.
func DetectConflicts(assignments []entities.ScheduledAssignment, committed []entities.Booking) []entities.ConflictWarning {
	byCenter := make(map[entities.WorkCenterID][]occupancy)
	for _, a := range assignments {
		byCenter[a.WorkCenterID] = append(byCenter[a.WorkCenterID], occupancy{
			interval:    a.Interval,
			operationID: a.OperationID,
			label:       fmt.Sprintf("operation %s (%s)", a.OperationID, a.OperationName),
		})
	}
	for _, b := range committed {
		label := fmt.Sprintf("committed booking for job %s", b.JobID)
		if b.JobID == "" {
			label = "committed booking"
		}
		byCenter[b.WorkCenterID] = append(byCenter[b.WorkCenterID], occupancy{
			interval: b.Interval,
			label:    label,
		})
	}

	centers := make([]entities.WorkCenterID, 0, len(byCenter))
	for id := range byCenter {
		centers = append(centers, id)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i] < centers[j] })

	var warnings []entities.ConflictWarning
	for _, id := range centers {
		occ := byCenter[id]
		sort.Slice(occ, func(i, j int) bool { return occ[i].interval.Start.Before(occ[j].interval.Start) })

		for i := 0; i < len(occ); i++ {
			for j := i + 1; j < len(occ); j++ {
				if !occ[i].interval.Overlaps(occ[j].interval) {
					break // sorted by start, nothing later overlaps i either
				}
				if occ[i].operationID == "" && occ[j].operationID == "" {
					continue // two committed bookings, not this run's problem
				}
				warnings = append(warnings, overlapWarning(id, occ[i], occ[j]))
			}
		}
	}
	return warnings
}

func overlapWarning(workCenterID entities.WorkCenterID, a, b occupancy) entities.ConflictWarning {
	overlap := a.interval.Overlap(b.interval)
	severity := entities.SeverityWarning
	if overlap >= criticalOverlapMinutes*time.Minute {
		severity = entities.SeverityCritical
	}

	var affected []string
	if a.operationID != "" {
		affected = append(affected, a.operationID)
	}
	if b.operationID != "" {
		affected = append(affected, b.operationID)
	}

	return entities.ConflictWarning{
		Type:     entities.ConflictOverlap,
		Severity: severity,
		Message: fmt.Sprintf("work center %s: %s overlaps %s by %d minutes",
			workCenterID, a.label, b.label, int(overlap/time.Minute)),
		AffectedOperationIDs: affected,
		SuggestedResolution:  "move one of the bookings to another work center or a later slot",
	}
}
