package dto

import (
	"time"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// ScheduleResult packages one scheduling run for the interface layers
type ScheduleResult struct {
	JobID       string                         `json:"job_id"`
	DueDate     time.Time                      `json:"due_date"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Elapsed     time.Duration                  `json:"elapsed_ns"`
	Suggestion  *entities.SchedulingSuggestion `json:"suggestion"`
}

// NewScheduleResult creates a result for the given run
func NewScheduleResult(jobID string, dueDate time.Time, elapsed time.Duration, suggestion *entities.SchedulingSuggestion) *ScheduleResult {
	return &ScheduleResult{
		JobID:       jobID,
		DueDate:     dueDate,
		GeneratedAt: time.Now(),
		Elapsed:     elapsed,
		Suggestion:  suggestion,
	}
}
