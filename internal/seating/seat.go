package seating

import (
	"strconv"

	"busline/internal/models"
)

// ParseSeatID parses "<Column><Row>". ok is false when the id is outside the layout.
func ParseSeatID(id string) (models.SeatSnapshot, bool) {
	if len(id) < 2 {
		return models.SeatSnapshot{ID: id}, false
	}

	col := models.ColFromID(id)
	digits := id[len(col):]
	row, err := strconv.Atoi(digits)
	if err != nil {
		return models.SeatSnapshot{ID: id}, false
	}

	snap := models.SeatSnapshot{ID: id, Row: row, Col: col}
	// "A01" and "A+1" name A1 but are not its id
	if row < 1 || row > Rows || !isColumn(col) || strconv.Itoa(row) != digits {
		return snap, false
	}
	return snap, true
}

// RowOf returns the row of a seat snapshot, falling back to the leading digits after
// the column in its id. Unparseable input yields 0.
func RowOf(s models.SeatSnapshot) int {
	if s.Row != 0 {
		return s.Row
	}
	return models.RowFromID(s.ID)
}

// Normalize fills missing row/col from the id.
func Normalize(s models.SeatSnapshot) models.SeatSnapshot {
	if s.Row == 0 {
		s.Row = RowOf(s)
	}
	if s.Col == "" {
		s.Col = models.ColFromID(s.ID)
	}
	return s
}

// Canonical rebuilds row and col from the id for any seat of the layout, so a stored
// snapshot can never disagree with its id. Other ids are only normalized.
func Canonical(s models.SeatSnapshot) models.SeatSnapshot {
	if snap, ok := ParseSeatID(s.ID); ok {
		return snap
	}
	return Normalize(s)
}

func isColumn(col string) bool {
	for _, c := range Columns {
		if c == col {
			return true
		}
	}
	return false
}
