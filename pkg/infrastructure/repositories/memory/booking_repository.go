package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/quillon/jobshop/pkg/domain/entities"
	"github.com/quillon/jobshop/pkg/domain/repositories"
)

// BookingRepository provides in-memory booking storage. Snapshots returned
// by GetBookings are independent copies; callers schedule against them and
// persist with SaveBookings. The mutex makes individual calls safe, but the
// read-then-write across a scheduling run is the caller's to serialize.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings []entities.Booking
}

// NewBookingRepository creates a new in-memory booking repository
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Verify interface compliance
var _ repositories.BookingRepository = (*BookingRepository)(nil)

// LoadBookings loads bookings into the repository, minting IDs when absent
func (r *BookingRepository) LoadBookings(bookings []entities.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range bookings {
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		r.bookings = append(r.bookings, b)
	}
	return nil
}

// SaveBookings appends newly committed bookings
func (r *BookingRepository) SaveBookings(bookings []entities.Booking) error {
	return r.LoadBookings(bookings)
}

// GetBookings returns a snapshot of bookings for the given work centers
func (r *BookingRepository) GetBookings(workCenterIDs []entities.WorkCenterID) ([]entities.Booking, error) {
	wanted := make(map[entities.WorkCenterID]bool, len(workCenterIDs))
	for _, id := range workCenterIDs {
		wanted[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var snapshot []entities.Booking
	for _, b := range r.bookings {
		if wanted[b.WorkCenterID] {
			snapshot = append(snapshot, b)
		}
	}
	return snapshot, nil
}

// GetAllBookings returns a snapshot of every booking
func (r *BookingRepository) GetAllBookings() ([]entities.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]entities.Booking, len(r.bookings))
	copy(snapshot, r.bookings)
	return snapshot, nil
}
