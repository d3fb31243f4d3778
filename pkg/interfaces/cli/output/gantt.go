package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

const ganttWidth = 96

// RenderGantt draws an ASCII timeline of the suggestion, one row per work
// center, with a legend mapping markers back to operations.
func RenderGantt(s *entities.SchedulingSuggestion) string {
	if len(s.Assignments) == 0 {
		return "Gantt: no assignments"
	}

	start := s.Assignments[0].Interval.Start
	end := s.Assignments[0].Interval.End
	for _, a := range s.Assignments {
		if a.Interval.Start.Before(start) {
			start = a.Interval.Start
		}
		if a.Interval.End.After(end) {
			end = a.Interval.End
		}
	}
	start = start.Truncate(time.Hour)
	span := end.Sub(start)
	cell := span / ganttWidth
	if cell < time.Minute {
		cell = time.Minute
	}

	rows := make(map[entities.WorkCenterID][]rune)
	var centers []entities.WorkCenterID
	markers := "123456789abcdefghijklmnopqrstuvwxyz"

	var legend strings.Builder
	for i, a := range s.Assignments {
		if _, ok := rows[a.WorkCenterID]; !ok {
			rows[a.WorkCenterID] = []rune(strings.Repeat(".", ganttWidth))
			centers = append(centers, a.WorkCenterID)
		}
		marker := '#'
		if i < len(markers) {
			marker = rune(markers[i])
		}
		from := int(a.Interval.Start.Sub(start) / cell)
		to := int(a.Interval.End.Sub(start) / cell)
		if to >= ganttWidth {
			to = ganttWidth - 1
		}
		for c := from; c <= to && c < ganttWidth; c++ {
			rows[a.WorkCenterID][c] = marker
		}
		fmt.Fprintf(&legend, "  %c = %s (%s)\n", marker, a.OperationID, a.OperationName)
	}
	sort.Slice(centers, func(i, j int) bool { return centers[i] < centers[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "Gantt %s to %s (1 cell = %v)\n",
		start.Format("2006-01-02 15:04"), end.Format("2006-01-02 15:04"), cell.Round(time.Minute))
	for _, id := range centers {
		fmt.Fprintf(&b, "%-10s |%s|\n", id, string(rows[id]))
	}
	b.WriteString(legend.String())
	return b.String()
}
