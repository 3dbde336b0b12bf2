package models

import "time"

// NATS Event Types
const (
	EventBookingCreated = "booking.created"
	EventBookingBoarded = "booking.boarded"
)

// BookingCreatedEvent carries the stored booking so consumers need no store access
type BookingCreatedEvent struct {
	Booking   Booking   `json:"booking"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingBoardedEvent represents a BOOKED -> BOARDED transition
type BookingBoardedEvent struct {
	BookingID  string    `json:"booking_id"`
	TravelDate string    `json:"travel_date"`
	Timestamp  time.Time `json:"timestamp"`
}
