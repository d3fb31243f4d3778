package entities

import (
	"fmt"
	"time"
)

// ConflictType classifies a conflict warning
type ConflictType string

const (
	ConflictOverlap               ConflictType = "overlap"
	ConflictCapacityExceeded      ConflictType = "capacity_exceeded"
	ConflictDueDateAtRisk         ConflictType = "due_date_at_risk"
	ConflictWorkCenterUnavailable ConflictType = "work_center_unavailable"
)

// Severity represents how serious a conflict warning is
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// MarshalJSON emits the severity as its string form
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// String method for Severity enum
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ConflictWarning is a structured, severity-tagged explanation of a
// feasibility problem in a proposed schedule.
type ConflictWarning struct {
	Type                 ConflictType `json:"type"`
	Severity             Severity     `json:"severity"`
	Message              string       `json:"message"`
	AffectedOperationIDs []string     `json:"affected_operation_ids"`
	SuggestedResolution  string       `json:"suggested_resolution,omitempty"`
}

// ScheduledAssignment places one operation on a work center for an interval
type ScheduledAssignment struct {
	OperationID       string       `json:"operation_id"`
	OperationName     string       `json:"operation_name"`
	WorkCenterID      WorkCenterID `json:"work_center_id"`
	Interval          Interval     `json:"interval"`
	EstimatedDuration int          `json:"estimated_duration_minutes"`
}

// SchedulingSuggestion is the engine's output for one job: proposed
// assignments, a 0-100 confidence score, and itemized conflict warnings.
type SchedulingSuggestion struct {
	Assignments       []ScheduledAssignment `json:"assignments"`
	ConfidenceScore   int                   `json:"confidence_score"`
	ConflictWarnings  []ConflictWarning     `json:"conflict_warnings"`
	OptimizationNotes []string              `json:"optimization_notes"`
}

// End returns the end of the last assignment, or the zero time when empty
func (s *SchedulingSuggestion) End() time.Time {
	var end time.Time
	for _, a := range s.Assignments {
		if a.Interval.End.After(end) {
			end = a.Interval.End
		}
	}
	return end
}

// CriticalConflicts counts warnings of critical severity
func (s *SchedulingSuggestion) CriticalConflicts() int {
	count := 0
	for _, w := range s.ConflictWarnings {
		if w.Severity == SeverityCritical {
			count++
		}
	}
	return count
}

// Summary returns a one-line summary for logs and CLI output
func (s *SchedulingSuggestion) Summary() string {
	summary := fmt.Sprintf("%d assignments, confidence %d", len(s.Assignments), s.ConfidenceScore)
	if len(s.ConflictWarnings) > 0 {
		summary += fmt.Sprintf(" | %d warnings (%d critical)", len(s.ConflictWarnings), s.CriticalConflicts())
	}
	return summary
}
