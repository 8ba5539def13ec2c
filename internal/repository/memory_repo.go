package repository

import (
	"sort"
	"sync"

	"truckbooking/internal/db"
	"truckbooking/internal/entities"
)

// MemoryBookingStore keeps bookings in a process-local map. Volatile:
// everything is lost on restart. It is the default store when no
// DATABASE_URL is configured.
type MemoryBookingStore struct {
	mu       sync.RWMutex
	bookings map[string]db.Booking
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{bookings: make(map[string]db.Booking)}
}

func (s *MemoryBookingStore) CreateBooking(req *entities.BookingRequest) (*db.Booking, error) {
	booking := newBookingFromRequest(req)

	s.mu.Lock()
	s.bookings[booking.ID] = booking
	s.mu.Unlock()

	return &booking, nil
}

func (s *MemoryBookingStore) GetBooking(id string) (*db.Booking, error) {
	s.mu.RLock()
	booking, ok := s.bookings[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrBookingNotFound
	}
	return &booking, nil
}

// GetAllBookings returns bookings newest first. Records without a
// timestamp sort as oldest.
func (s *MemoryBookingStore) GetAllBookings() ([]db.Booking, error) {
	s.mu.RLock()
	bookings := make([]db.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		bookings = append(bookings, b)
	}
	s.mu.RUnlock()

	sort.SliceStable(bookings, func(i, j int) bool {
		ti, tj := bookings[i].CreatedAt, bookings[j].CreatedAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	return bookings, nil
}
