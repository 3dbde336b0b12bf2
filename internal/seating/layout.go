package seating

import (
	"strconv"

	"busline/internal/models"
)

// Rows is the number of seat rows; row 1 is behind the driver.
const Rows = 15

// Columns lists seat columns left to right: A,B | aisle | C,D.
var Columns = []string{"A", "B", "C", "D"}

// TotalSeats is the size of the fixed seat universe.
const TotalSeats = Rows * 4

// GenerateSeatLayout returns the empty seat grid, one slice per row.
func GenerateSeatLayout() [][]models.Seat {
	layout := make([][]models.Seat, 0, Rows)
	for r := 1; r <= Rows; r++ {
		row := make([]models.Seat, 0, len(Columns))
		for _, col := range Columns {
			id := col + strconv.Itoa(r)
			row = append(row, models.Seat{
				ID:    id,
				Label: id,
				Row:   r,
				Col:   col,
			})
		}
		layout = append(layout, row)
	}
	return layout
}

// OverlayBookings returns a copy of layout with Booked set for every seat held by bookings.
func OverlayBookings(layout [][]models.Seat, bookings []models.Booking) [][]models.Seat {
	booked := BookedSeatIDs(bookings)

	out := make([][]models.Seat, len(layout))
	for i, row := range layout {
		out[i] = make([]models.Seat, len(row))
		for j, seat := range row {
			seat.Booked = booked[seat.ID]
			out[i][j] = seat
		}
	}
	return out
}

// BookedSeatIDs is the union of seat ids held by bookings.
func BookedSeatIDs(bookings []models.Booking) map[string]bool {
	booked := make(map[string]bool)
	for _, b := range bookings {
		for _, id := range b.SeatIDs {
			booked[id] = true
		}
	}
	return booked
}
