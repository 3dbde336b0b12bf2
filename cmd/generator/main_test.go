package main

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline/internal/repository"
	"busline/internal/seating"
	"busline/internal/service"
	"busline/internal/storage"
	"busline/internal/validation"
)

func newTestGenerator() *BookingGenerator {
	repos := repository.NewRepositories(context.Background(), storage.NewMemoryStorage())
	return &BookingGenerator{
		bookings: service.NewServices(repos).Bookings,
		rnd:      rand.New(rand.NewSource(1)),
	}
}

func TestGenerate_StopsWhenBusIsFull(t *testing.T) {
	g := newTestGenerator()
	ctx := context.Background()

	created, err := g.Generate(ctx, "2025-03-14", 1000, validation.MaxSeatsPerBooking)
	require.NoError(t, err)
	assert.Less(t, created, 1000)

	bookings := g.bookings.BookingsForDate("2025-03-14")
	assert.Len(t, bookings, created)

	seen := make(map[string]bool)
	for _, b := range bookings {
		assert.LessOrEqual(t, len(b.SeatIDs), validation.MaxSeatsPerBooking)
		for _, id := range b.SeatIDs {
			assert.False(t, seen[id], "seat %s booked twice", id)
			seen[id] = true
		}
	}
	assert.Len(t, seen, seating.TotalSeats)
}

func TestGenerate_CapsBookingSize(t *testing.T) {
	g := newTestGenerator()

	created, err := g.Generate(context.Background(), "2025-03-14", 5, 99)
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	for _, b := range g.bookings.BookingsForDate("2025-03-14") {
		assert.GreaterOrEqual(t, len(b.SeatIDs), 1)
		assert.LessOrEqual(t, len(b.SeatIDs), validation.MaxSeatsPerBooking)
	}

	single := newTestGenerator()
	_, err = single.Generate(context.Background(), "2025-03-14", 3, 1)
	require.NoError(t, err)
	for _, b := range single.bookings.BookingsForDate("2025-03-14") {
		assert.Len(t, b.SeatIDs, 1)
	}
}
