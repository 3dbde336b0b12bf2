package validation

import (
	"busline/internal/models"
	"busline/internal/seating"
)

// MaxSeatsPerBooking ограничение на количество мест в одном бронировании
const MaxSeatsPerBooking = 6

// Причины отказа
const (
	ReasonNoSeats       = "no seats selected"
	ReasonSeatLimit     = "seat limit exceeded"
	ReasonAlreadyBooked = "seat already booked"
)

// Result is the outcome of a validation. Reason is empty when Valid.
type Result struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// OK is the successful result
var OK = Result{Valid: true}

// Reject builds a failed result
func Reject(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

// IsValidBooking checks a seat selection against the bookings already made for the
// same travel date. The first failing rule wins.
func IsValidBooking(selected []models.SeatSnapshot, existing []models.Booking) Result {
	if len(selected) == 0 {
		return Reject(ReasonNoSeats)
	}
	if len(selected) > MaxSeatsPerBooking {
		return Reject(ReasonSeatLimit)
	}

	booked := seating.BookedSeatIDs(existing)
	for _, s := range selected {
		if booked[s.ID] {
			return Reject(ReasonAlreadyBooked)
		}
	}

	return OK
}
