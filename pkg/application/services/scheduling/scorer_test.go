package scheduling

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

func TestScorer_CleanScheduleScores100(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	assignments := []entities.ScheduledAssignment{
		assignment("OP-1", "WC-1", testNow, 240),
	}

	score, warnings, _ := scorer.Score(assignments, nil, testNow.AddDate(0, 0, 10))

	assert.Equal(t, 100, score)
	assert.Empty(t, warnings)
}

func TestScorer_SeverityPenalties(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	dueDate := testNow.AddDate(0, 0, 10)

	tests := []struct {
		name     string
		severity entities.Severity
		want     int
	}{
		{"info", entities.SeverityInfo, 98},
		{"warning", entities.SeverityWarning, 90},
		{"critical", entities.SeverityCritical, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := []entities.ConflictWarning{{Type: entities.ConflictOverlap, Severity: tt.severity}}
			score, _, _ := scorer.Score(nil, warnings, dueDate)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestScorer_DueDateOverrun(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	assignments := []entities.ScheduledAssignment{
		assignment("OP-1", "WC-1", testNow, 240),
	}
	end := testNow.Add(4 * time.Hour)

	t.Run("within_slack_is_warning", func(t *testing.T) {
		dueDate := end.Add(-30 * time.Hour) // 2 days overrun, ceil
		score, warnings, _ := scorer.Score(assignments, nil, dueDate)

		require.Len(t, warnings, 1)
		assert.Equal(t, entities.ConflictDueDateAtRisk, warnings[0].Type)
		assert.Equal(t, entities.SeverityWarning, warnings[0].Severity)
		assert.Equal(t, 100-10-2*5, score)
	})

	t.Run("beyond_slack_is_critical", func(t *testing.T) {
		dueDate := end.AddDate(0, 0, -5)
		score, warnings, _ := scorer.Score(assignments, nil, dueDate)

		require.Len(t, warnings, 1)
		assert.Equal(t, entities.SeverityCritical, warnings[0].Severity)
		assert.Equal(t, 100-25-5*5, score)
	})
}

func TestScorer_FlooredAtZero(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	var warnings []entities.ConflictWarning
	for i := 0; i < 10; i++ {
		warnings = append(warnings, entities.ConflictWarning{Type: entities.ConflictOverlap, Severity: entities.SeverityCritical})
	}

	score, _, _ := scorer.Score(nil, warnings, testNow)
	assert.Equal(t, 0, score)
}

func TestScorer_MonotonicInCriticalConflicts(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	dueDate := testNow.AddDate(0, 0, 10)

	previous := 101
	var warnings []entities.ConflictWarning
	for i := 0; i < 6; i++ {
		score, _, _ := scorer.Score(nil, warnings, dueDate)
		assert.LessOrEqual(t, score, previous)
		previous = score
		warnings = append(warnings, entities.ConflictWarning{Type: entities.ConflictCapacityExceeded, Severity: entities.SeverityCritical})
	}
}

func TestScorer_OptimizationNotes(t *testing.T) {
	scorer := NewScorer(DefaultScorerConfig())
	dueDate := testNow.AddDate(0, 0, 10)

	t.Run("compressed_into_one_center", func(t *testing.T) {
		assignments := []entities.ScheduledAssignment{
			assignment("OP-1", "WC-1", testNow, 60),
			assignment("OP-2", "WC-1", testNow.Add(time.Hour), 60),
		}
		_, _, notes := scorer.Score(assignments, nil, dueDate)
		require.NotEmpty(t, notes)
		assert.Contains(t, notes[0], "compressed into 1 work center")
	})

	t.Run("bottleneck_operation", func(t *testing.T) {
		assignments := []entities.ScheduledAssignment{
			assignment("OP-1", "WC-1", testNow, 400),
			assignment("OP-2", "WC-2", testNow.Add(400*time.Minute), 30),
		}
		_, _, notes := scorer.Score(assignments, nil, dueDate)

		found := false
		for _, note := range notes {
			if strings.Contains(note, "OP-1") && strings.Contains(note, "bottlenecks") {
				found = true
			}
		}
		assert.True(t, found, "expected a bottleneck note, got %v", notes)
	})
}
