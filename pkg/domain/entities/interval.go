package entities

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Interval represents a half-open time interval [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval creates an interval from a start/end pair
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, errors.Wrapf(ErrInvalidInterval, "start %s, end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// IntervalFrom creates an interval from a start instant and a duration
func IntervalFrom(start time.Time, d time.Duration) (Interval, error) {
	return NewInterval(start, start.Add(d))
}

// Overlaps reports whether two intervals overlap. Half-open semantics:
// touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Overlap returns the duration shared by two intervals (zero when disjoint).
func (iv Interval) Overlap(other Interval) time.Duration {
	start := iv.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := iv.End
	if other.End.Before(end) {
		end = other.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Duration returns the interval length
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// DurationMinutes returns the interval length in whole minutes
func (iv Interval) DurationMinutes() int {
	return int(iv.Duration() / time.Minute)
}

// Shift returns the interval translated by d
func (iv Interval) Shift(d time.Duration) Interval {
	return Interval{Start: iv.Start.Add(d), End: iv.End.Add(d)}
}

// String formats the interval for messages and logs
func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)",
		iv.Start.Format("2006-01-02 15:04"), iv.End.Format("2006-01-02 15:04"))
}
