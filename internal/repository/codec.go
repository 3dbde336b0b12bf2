package repository

import (
	"encoding/json"
	"fmt"

	"busline/internal/models"
	"busline/internal/seating"
)

func encodeBookings(bookings []models.Booking) ([]byte, error) {
	if bookings == nil {
		bookings = []models.Booking{}
	}
	data, err := json.Marshal(bookings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bookings: %w", err)
	}
	return data, nil
}

func decodeBookings(data []byte) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookings: %w", err)
	}

	for i := range bookings {
		b := &bookings[i]
		for j := range b.Seats {
			b.Seats[j] = seating.Canonical(b.Seats[j])
		}
		if len(b.SeatIDs) == 0 && len(b.Seats) > 0 {
			b.SeatIDs = seatIDs(b.Seats)
		}
		if b.Status == "" {
			b.Status = models.StatusBooked
		}
	}
	return bookings, nil
}

func seatIDs(seats []models.SeatSnapshot) []string {
	ids := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	return ids
}
