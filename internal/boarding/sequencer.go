package boarding

import (
	"sort"

	"busline/internal/models"
	"busline/internal/seating"
)

// EffectiveRow is the lowest row among the booking's seats, 0 when it has none.
func EffectiveRow(b models.Booking) int {
	if len(b.Seats) == 0 {
		return 0
	}

	minRow := seating.RowOf(b.Seats[0])
	for _, s := range b.Seats[1:] {
		if row := seating.RowOf(s); row < minRow {
			minRow = row
		}
	}
	return minRow
}

// CalculateOptimalBoardingSequence orders bookings so the rear of the bus boards first.
// Ties on effective row go to the earlier timestamp; remaining ties keep input order.
// The input slice is left untouched.
func CalculateOptimalBoardingSequence(bookings []models.Booking) []models.Booking {
	type keyed struct {
		booking models.Booking
		row     int
	}

	items := make([]keyed, len(bookings))
	for i, b := range bookings {
		items[i] = keyed{booking: b, row: EffectiveRow(b)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].row != items[j].row {
			return items[i].row > items[j].row
		}
		return items[i].booking.Timestamp < items[j].booking.Timestamp
	})

	out := make([]models.Booking, len(items))
	for i, it := range items {
		out[i] = it.booking
	}
	return out
}

// Sequence builds the numbered boarding list shown to the conductor.
func Sequence(bookings []models.Booking) []models.BoardingEntry {
	ordered := CalculateOptimalBoardingSequence(bookings)

	entries := make([]models.BoardingEntry, len(ordered))
	for i, b := range ordered {
		entries[i] = models.BoardingEntry{
			Seq:          i + 1,
			EffectiveRow: EffectiveRow(b),
			Booking:      b,
		}
	}
	return entries
}

// Passengers counts seats across bookings.
func Passengers(bookings []models.Booking) int {
	total := 0
	for _, b := range bookings {
		total += len(b.Seats)
	}
	return total
}
