package models

// CreateBookingRequest - модель для создания бронирования
type CreateBookingRequest struct {
	TravelDate string         `json:"travelDate" validate:"required,datetime=2006-01-02"`
	Mobile     string         `json:"mobile" validate:"required,min=10"`
	Seats      []SeatSnapshot `json:"seats"`
	Timestamp  int64          `json:"timestamp,omitempty"`
}

// BoardBookingRequest - модель для отметки посадки
type BoardBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// ValidationResponse - результат проверки бронирования
type ValidationResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// SeatStatusResponse - занятость конкретного места на дату
type SeatStatusResponse struct {
	SeatID string `json:"seatId"`
	Date   string `json:"date"`
	Booked bool   `json:"booked"`
}

// SeatMapResponse - схема мест автобуса на дату
type SeatMapResponse struct {
	TravelDate string   `json:"travelDate,omitempty"`
	Rows       [][]Seat `json:"rows"`
}

// BoardingEntry - позиция в очереди посадки
type BoardingEntry struct {
	Seq          int     `json:"seq"`
	EffectiveRow int     `json:"effectiveRow"`
	Booking      Booking `json:"booking"`
}

// BoardingResponse - очередь посадки на дату
type BoardingResponse struct {
	TravelDate    string          `json:"travelDate"`
	TotalBookings int             `json:"totalBookings"`
	Passengers    int             `json:"passengers"`
	Sequence      []BoardingEntry `json:"sequence"`
}
