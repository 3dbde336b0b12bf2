package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusBooked  BookingStatus = "BOOKED"
	StatusBoarded BookingStatus = "BOARDED"
)

// Seat represents a seat of the bus layout. Booked is derived per travel date.
type Seat struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Row    int    `json:"row"`
	Col    string `json:"col"`
	Booked bool   `json:"isBooked"`
}

// Snapshot returns the seat record stored inside a booking.
func (s Seat) Snapshot() SeatSnapshot {
	return SeatSnapshot{ID: s.ID, Row: s.Row, Col: s.Col}
}

// SeatSnapshot is the seat saved inside a booking at booking time.
type SeatSnapshot struct {
	ID  string `json:"id"`
	Row int    `json:"row"`
	Col string `json:"col"`
}

// UnmarshalJSON accepts either {"id","row","col"} or a bare seat id such as "C10".
// A bare id is normalised here so nothing downstream sees two shapes.
func (s *SeatSnapshot) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("invalid seat id: %w", err)
		}
		*s = snapshotFromID(id)
		return nil
	}

	type plain SeatSnapshot
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid seat: %w", err)
	}
	*s = SeatSnapshot(p)
	if s.Col == "" {
		s.Col = ColFromID(s.ID)
	}
	return nil
}

// snapshotFromID разбирает идентификатор вида <Column><Row>; при ошибке row = 0
func snapshotFromID(id string) SeatSnapshot {
	return SeatSnapshot{ID: id, Row: RowFromID(id), Col: ColFromID(id)}
}

// ColFromID returns the first character of a seat id.
func ColFromID(id string) string {
	if id == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(id)
	return id[:size]
}

// RowFromID reads the digits that follow the column character, stopping at the
// first non-digit ("A1x" is row 1). It returns 0 when no digit follows.
func RowFromID(id string) int {
	if id == "" {
		return 0
	}
	_, size := utf8.DecodeRuneInString(id)
	rest := id[size:]

	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	row, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return row
}

// Booking represents a seat booking for one travel date
type Booking struct {
	ID         string         `json:"id"`
	TravelDate string         `json:"travelDate"`
	Mobile     string         `json:"mobile"`
	Seats      []SeatSnapshot `json:"seats"`
	SeatIDs    []string       `json:"seatIds"`
	Timestamp  int64          `json:"timestamp"`
	Status     BookingStatus  `json:"status"`
}

// Clone returns a deep copy so callers cannot mutate store state.
func (b Booking) Clone() Booking {
	out := b
	out.Seats = append([]SeatSnapshot(nil), b.Seats...)
	out.SeatIDs = append([]string(nil), b.SeatIDs...)
	return out
}

// NewBooking is the data the store needs to create a booking
type NewBooking struct {
	TravelDate string
	Mobile     string
	Seats      []SeatSnapshot
	Timestamp  int64
}
