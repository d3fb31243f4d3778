package repositories

import "github.com/quillon/jobshop/pkg/domain/entities"

// BookingRepository provides access to committed work center bookings.
//
// GetBookings returns an independent snapshot: callers run the scheduler
// against it and persist the resulting assignments with SaveBookings.
// Callers needing strict exclusivity per work center must serialize that
// read-then-write per work center; the scheduler itself assumes no
// concurrent writer during a single run.
type BookingRepository interface {
	GetBookings(workCenterIDs []entities.WorkCenterID) ([]entities.Booking, error)
	GetAllBookings() ([]entities.Booking, error)
	SaveBookings(bookings []entities.Booking) error
	LoadBookings(bookings []entities.Booking) error
}
