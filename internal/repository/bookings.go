package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"busline/internal/models"
	"busline/internal/seating"
)

const maxIDAttempts = 16

// BookingRepository owns the booking collection. Every mutation re-serializes the
// whole collection to storage; the in-memory state only changes once the save succeeds.
type BookingRepository struct {
	mu       sync.RWMutex
	storage  Storage
	bookings []models.Booking
	newID    func() string
}

// NewBookingRepository loads the persisted collection once. Missing or unreadable data
// starts the repository empty.
func NewBookingRepository(ctx context.Context, storage Storage) *BookingRepository {
	r := &BookingRepository{
		storage: storage,
		newID:   newBookingID,
	}
	r.bookings = r.load(ctx)
	return r
}

func (r *BookingRepository) load(ctx context.Context) []models.Booking {
	data, err := r.storage.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load bookings, starting empty", "error", err, "record", RecordName)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	bookings, err := decodeBookings(data)
	if err != nil {
		slog.Warn("Malformed bookings record, starting empty", "error", err, "record", RecordName)
		return nil
	}

	slog.Info("Loaded bookings", "count", len(bookings), "record", RecordName)
	return bookings
}

func (r *BookingRepository) persist(ctx context.Context, bookings []models.Booking) error {
	data, err := encodeBookings(bookings)
	if err != nil {
		return err
	}
	if err := r.storage.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}

// AddBooking stores a new BOOKED booking and returns it with its generated id.
// The caller is responsible for validating the seat selection first.
func (r *BookingRepository) AddBooking(ctx context.Context, data models.NewBooking) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seats := make([]models.SeatSnapshot, len(data.Seats))
	for i, s := range data.Seats {
		seats[i] = seating.Canonical(s)
	}

	booking := models.Booking{
		ID:         r.uniqueID(),
		TravelDate: data.TravelDate,
		Mobile:     data.Mobile,
		Seats:      seats,
		SeatIDs:    seatIDs(seats),
		Timestamp:  data.Timestamp,
		Status:     models.StatusBooked,
	}

	next := make([]models.Booking, len(r.bookings), len(r.bookings)+1)
	copy(next, r.bookings)
	next = append(next, booking)

	if err := r.persist(ctx, next); err != nil {
		return models.Booking{}, err
	}
	r.bookings = next

	return booking.Clone(), nil
}

func (r *BookingRepository) uniqueID() string {
	id := r.newID()
	for i := 0; i < maxIDAttempts && r.indexOf(id) >= 0; i++ {
		id = r.newID()
	}
	return id
}

// MarkBoarded moves a booking from BOOKED to BOARDED. An unknown id or an already
// boarded booking is a no-op, not an error; changed reports whether anything was written.
func (r *BookingRepository) MarkBoarded(ctx context.Context, bookingID string) (changed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(bookingID)
	if idx < 0 || r.bookings[idx].Status == models.StatusBoarded {
		return false, nil
	}

	next := make([]models.Booking, len(r.bookings))
	copy(next, r.bookings)
	next[idx].Status = models.StatusBoarded

	if err := r.persist(ctx, next); err != nil {
		return false, err
	}
	r.bookings = next

	return true, nil
}

// GetBookingsForDate returns bookings whose travel date equals date, in insertion order.
func (r *BookingRepository) GetBookingsForDate(date string) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Booking
	for _, b := range r.bookings {
		if b.TravelDate == date {
			result = append(result, b.Clone())
		}
	}
	return result
}

// IsSeatBooked reports whether any booking on date holds seatID.
func (r *BookingRepository) IsSeatBooked(seatID, date string) bool {
	for _, b := range r.GetBookingsForDate(date) {
		for _, id := range b.SeatIDs {
			if id == seatID {
				return true
			}
		}
	}
	return false
}

// GetByID returns a copy of the booking with the given id.
func (r *BookingRepository) GetByID(id string) (models.Booking, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Booking{}, false
	}
	return r.bookings[idx].Clone(), true
}

// All returns a copy of the whole collection.
func (r *BookingRepository) All() []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Booking, len(r.bookings))
	for i, b := range r.bookings {
		result[i] = b.Clone()
	}
	return result
}

func (r *BookingRepository) indexOf(id string) int {
	for i, b := range r.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}
