package scheduling

import (
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// Calendar maps "N minutes on work center W, no earlier than T" onto a
// concrete interval inside W's daily working window. Every calendar day has
// a single contiguous window of CapacityHoursPerDay hours starting at
// DayStartHour; the slot search is a greedy first-fit over that calendar,
// deterministic for a fixed booking set.
type Calendar struct {
	DayStartHour int
	HorizonDays  int
}

// NewCalendar creates a calendar with the given daily anchor hour and
// look-ahead horizon in days
func NewCalendar(dayStartHour, horizonDays int) *Calendar {
	return &Calendar{DayStartHour: dayStartHour, HorizonDays: horizonDays}
}

// WindowFor returns the working window of the calendar day containing t
func (c *Calendar) WindowFor(t time.Time, wc *entities.WorkCenter) entities.Interval {
	start := time.Date(t.Year(), t.Month(), t.Day(), c.DayStartHour, 0, 0, 0, t.Location())
	return entities.Interval{Start: start, End: start.Add(wc.DailyCapacity())}
}

// ClampToWindow advances t to the nearest instant inside a working window:
// t itself when already inside, the day's window start when before it, the
// next day's window start when at or past the window end.
func (c *Calendar) ClampToWindow(t time.Time, wc *entities.WorkCenter) time.Time {
	window := c.WindowFor(t, wc)
	if t.Before(window.Start) {
		return window.Start
	}
	if !t.Before(window.End) {
		return window.Start.Add(24 * time.Hour)
	}
	return t
}

// HorizonStart returns the window start at the look-ahead boundary, used
// for best-effort placements once the slot search has been exhausted.
func (c *Calendar) HorizonStart(notBefore time.Time, wc *entities.WorkCenter) time.Time {
	return c.ClampToWindow(notBefore.AddDate(0, 0, c.HorizonDays), wc)
}

// FindSlot returns the earliest interval of durationMinutes on wc that
// starts at or after notBefore, fits entirely within a single day's working
// window, and does not overlap any of the given bookings. Bookings for
// other work centers are ignored. Fails with ErrNoCapacityFound once the
// search passes notBefore + HorizonDays.
func (c *Calendar) FindSlot(wc *entities.WorkCenter, durationMinutes int, notBefore time.Time, bookings []entities.Booking) (entities.Interval, error) {
	if durationMinutes <= 0 {
		return entities.Interval{}, errors.Newf("slot duration must be positive, got %d", durationMinutes)
	}
	duration := time.Duration(durationMinutes) * time.Minute
	if duration > wc.DailyCapacity() {
		return entities.Interval{}, errors.Wrapf(entities.ErrNoCapacityFound,
			"work center %s: %d minutes exceeds the %dh daily window", wc.ID, durationMinutes, wc.CapacityHoursPerDay)
	}

	booked := make([]entities.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.WorkCenterID == wc.ID {
			booked = append(booked, b)
		}
	}
	sort.Slice(booked, func(i, j int) bool {
		return booked[i].Interval.Start.Before(booked[j].Interval.Start)
	})

	horizon := notBefore.AddDate(0, 0, c.HorizonDays)
	candidate := c.ClampToWindow(notBefore, wc)

	for !candidate.After(horizon) {
		window := c.WindowFor(candidate, wc)
		if candidate.Add(duration).After(window.End) {
			// remaining window too short, roll to the next working day
			candidate = window.Start.Add(24 * time.Hour)
			continue
		}

		slot := entities.Interval{Start: candidate, End: candidate.Add(duration)}
		collided := false
		for _, b := range booked {
			if b.Interval.Overlaps(slot) {
				candidate = c.ClampToWindow(b.Interval.End, wc)
				collided = true
				break
			}
		}
		if !collided {
			return slot, nil
		}
	}

	return entities.Interval{}, errors.Wrapf(entities.ErrNoCapacityFound,
		"work center %s: no %d minute gap within %d days of %s",
		wc.ID, durationMinutes, c.HorizonDays, notBefore.Format("2006-01-02"))
}
