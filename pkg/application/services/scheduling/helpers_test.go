package scheduling

import (
	"time"

	"github.com/quillon/jobshop/pkg/domain/entities"
)

// Monday 08:00 UTC, aligned with the default day start hour.
var testNow = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func mustWorkCenter(id string, capacityHours int, active bool, skills ...string) *entities.WorkCenter {
	wc, err := entities.NewWorkCenter(entities.WorkCenterID(id), "Center "+id, capacityHours, active, skills)
	if err != nil {
		panic(err)
	}
	return wc
}

func mustOperation(id string, seq, minutes int) entities.Operation {
	op, err := entities.NewOperation(id, "Op "+id, seq, minutes)
	if err != nil {
		panic(err)
	}
	return *op
}

func booking(workCenterID string, start time.Time, minutes int) entities.Booking {
	return entities.Booking{
		WorkCenterID: entities.WorkCenterID(workCenterID),
		JobID:        "OTHER",
		Interval: entities.Interval{
			Start: start,
			End:   start.Add(time.Duration(minutes) * time.Minute),
		},
	}
}

// fullDayBookings fills the working window of n consecutive days starting
// at the day containing testNow.
func fullDayBookings(workCenterID string, capacityHours, days int) []entities.Booking {
	var bookings []entities.Booking
	for d := 0; d < days; d++ {
		start := testNow.AddDate(0, 0, d)
		bookings = append(bookings, booking(workCenterID, start, capacityHours*60))
	}
	return bookings
}
