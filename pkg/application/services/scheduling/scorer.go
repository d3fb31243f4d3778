package scheduling

import (
	"fmt"
	"time"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// ScorerConfig holds the scoring penalties and the due-date slack
type ScorerConfig struct {
	InfoPenalty          int
	WarningPenalty       int
	CriticalPenalty      int
	OverrunPenaltyPerDay int
	DueDateSlackDays     int
}

// DefaultScorerConfig returns the standard penalty table
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		InfoPenalty:          2,
		WarningPenalty:       10,
		CriticalPenalty:      25,
		OverrunPenaltyPerDay: 5,
		DueDateSlackDays:     2,
	}
}

// Scorer evaluates a produced schedule against the due date and its
// conflict list, yielding a 0-100 confidence score and advisory notes.
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a scorer with the given penalty configuration
func NewScorer(config ScorerConfig) *Scorer {
	return &Scorer{config: config}
}

// Score starts at 100, subtracts a severity-scaled penalty per warning and
// an additional penalty per started day of due-date overrun, floored at 0.
// A due-date overrun also appends a due_date_at_risk warning: severity
// warning within the configured slack, critical beyond it. The returned
// warning slice is the input plus any due-date warning.
func (s *Scorer) Score(
	assignments []entities.ScheduledAssignment,
	warnings []entities.ConflictWarning,
	dueDate time.Time,
) (int, []entities.ConflictWarning, []string) {

	overrunDays := 0
	end := scheduleEnd(assignments)
	if !end.IsZero() && end.After(dueDate) {
		overrunDays = daysCeil(end.Sub(dueDate))
		warnings = append(warnings, s.dueDateWarning(assignments, dueDate, end, overrunDays))
	}

	score := 100
	for _, w := range warnings {
		switch w.Severity {
		case entities.SeverityInfo:
			score -= s.config.InfoPenalty
		case entities.SeverityWarning:
			score -= s.config.WarningPenalty
		case entities.SeverityCritical:
			score -= s.config.CriticalPenalty
		}
	}
	score -= overrunDays * s.config.OverrunPenaltyPerDay
	if score < 0 {
		score = 0
	}

	return score, warnings, s.optimizationNotes(assignments)
}

func (s *Scorer) dueDateWarning(
	assignments []entities.ScheduledAssignment,
	dueDate, end time.Time,
	overrunDays int,
) entities.ConflictWarning {

	severity := entities.SeverityWarning
	if overrunDays > s.config.DueDateSlackDays {
		severity = entities.SeverityCritical
	}

	var affected []string
	for _, a := range assignments {
		if a.Interval.End.After(dueDate) {
			affected = append(affected, a.OperationID)
		}
	}

	return entities.ConflictWarning{
		Type:     entities.ConflictDueDateAtRisk,
		Severity: severity,
		Message: fmt.Sprintf("schedule ends %s, %d day(s) after the due date %s",
			end.Format("2006-01-02 15:04"), overrunDays, dueDate.Format("2006-01-02")),
		AffectedOperationIDs: affected,
		SuggestedResolution:  "expedite upstream operations, add work center capacity, or renegotiate the due date",
	}
}

// optimizationNotes produces advisory strings; they do not affect the score.
func (s *Scorer) optimizationNotes(assignments []entities.ScheduledAssignment) []string {
	if len(assignments) == 0 {
		return nil
	}

	var notes []string

	centers := make(map[entities.WorkCenterID]bool)
	for _, a := range assignments {
		centers[a.WorkCenterID] = true
	}
	if len(centers) == 1 && len(assignments) > 1 {
		notes = append(notes, fmt.Sprintf("schedule compressed into 1 work center across %d operations", len(assignments)))
	} else if len(centers) > 1 {
		notes = append(notes, fmt.Sprintf("schedule spans %d work centers", len(centers)))
	}

	totalMinutes := 0
	longest := assignments[0]
	for _, a := range assignments {
		totalMinutes += a.EstimatedDuration
		if a.EstimatedDuration > longest.EstimatedDuration {
			longest = a
		}
	}
	if len(assignments) > 1 && longest.EstimatedDuration*2 > totalMinutes {
		notes = append(notes, fmt.Sprintf("operation %s (%s) bottlenecks the timeline with %d of %d estimated minutes",
			longest.OperationID, longest.OperationName, longest.EstimatedDuration, totalMinutes))
	}

	idle := time.Duration(0)
	for i := 1; i < len(assignments); i++ {
		gap := assignments[i].Interval.Start.Sub(assignments[i-1].Interval.End)
		if gap > 0 {
			idle += gap
		}
	}
	if idle > 0 {
		notes = append(notes, fmt.Sprintf("%d minutes of waiting between sequenced operations", int(idle/time.Minute)))
	}

	return notes
}

func scheduleEnd(assignments []entities.ScheduledAssignment) time.Time {
	var end time.Time
	for _, a := range assignments {
		if a.Interval.End.After(end) {
			end = a.Interval.End
		}
	}
	return end
}

// daysCeil converts a positive duration to whole days, rounding up
func daysCeil(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
