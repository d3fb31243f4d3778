package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/quillon/jobshop/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format  string // text, json
	Gantt   bool
	Verbose bool
}

// Generate renders a scheduling result in the configured format
func Generate(w io.Writer, result *dto.ScheduleResult, config Config) error {
	switch config.Format {
	case "", "text":
		return generateText(w, result, config)
	case "json":
		return generateJSON(w, result)
	default:
		return errors.Newf("unsupported output format: %s", config.Format)
	}
}

func generateText(w io.Writer, result *dto.ScheduleResult, config Config) error {
	s := result.Suggestion

	fmt.Fprintf(w, "Scheduling Suggestion for job %s\n", result.JobID)
	fmt.Fprintf(w, "================================\n\n")
	fmt.Fprintf(w, "Confidence: %d/100\n", s.ConfidenceScore)
	fmt.Fprintf(w, "Due date:   %s\n", result.DueDate.Format("2006-01-02"))
	if end := s.End(); !end.IsZero() {
		fmt.Fprintf(w, "Ends:       %s\n", end.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Elapsed:    %v\n\n", result.Elapsed)

	if len(s.Assignments) > 0 {
		fmt.Fprintf(w, "Assignments:\n")
		fmt.Fprintf(w, "%-12s %-30s %-10s %-17s %-17s %8s\n",
			"Operation", "Name", "Center", "Start", "End", "Minutes")
		for _, a := range s.Assignments {
			fmt.Fprintf(w, "%-12s %-30s %-10s %-17s %-17s %8d\n",
				a.OperationID,
				truncate(a.OperationName, 30),
				a.WorkCenterID,
				a.Interval.Start.Format("2006-01-02 15:04"),
				a.Interval.End.Format("2006-01-02 15:04"),
				a.EstimatedDuration)
		}
		fmt.Fprintln(w)
	}

	if len(s.ConflictWarnings) > 0 {
		fmt.Fprintf(w, "Conflict Warnings:\n")
		for _, warning := range s.ConflictWarnings {
			fmt.Fprintf(w, "  [%s] %s: %s\n", warning.Severity, warning.Type, warning.Message)
			if config.Verbose && warning.SuggestedResolution != "" {
				fmt.Fprintf(w, "      resolution: %s\n", warning.SuggestedResolution)
			}
		}
		fmt.Fprintln(w)
	}

	if len(s.OptimizationNotes) > 0 {
		fmt.Fprintf(w, "Notes:\n")
		for _, note := range s.OptimizationNotes {
			fmt.Fprintf(w, "  - %s\n", note)
		}
		fmt.Fprintln(w)
	}

	if config.Gantt {
		fmt.Fprintln(w, RenderGantt(s))
	}

	return nil
}

func generateJSON(w io.Writer, result *dto.ScheduleResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return errors.Wrap(err, "failed to encode result")
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
