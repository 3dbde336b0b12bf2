package validation

import (
	"errors"
	"fmt"

	"busline/internal/models"
	"busline/internal/seating"

	"github.com/go-playground/validator/v10"
)

const (
	ReasonInvalidDate   = "invalid travel date"
	ReasonInvalidMobile = "invalid mobile number"
	ReasonUnknownSeat   = "unknown seat"
	ReasonDuplicateSeat = "duplicate seat selected"
)

var validate = validator.New()

// ValidateRequest checks the booking form fields. It does not look at seat availability.
func ValidateRequest(req *models.CreateBookingRequest) Result {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].Field() {
			case "TravelDate":
				return Reject(ReasonInvalidDate)
			case "Mobile":
				return Reject(ReasonInvalidMobile)
			}
		}
		return Reject(fmt.Sprintf("invalid request: %v", err))
	}
	return OK
}

// ValidateSeats rejects seat ids outside the fixed layout and repeated ids.
func ValidateSeats(selected []models.SeatSnapshot) Result {
	seen := make(map[string]bool, len(selected))
	for _, s := range selected {
		if _, ok := seating.ParseSeatID(s.ID); !ok {
			return Reject(fmt.Sprintf("%s: %s", ReasonUnknownSeat, s.ID))
		}
		if seen[s.ID] {
			return Reject(fmt.Sprintf("%s: %s", ReasonDuplicateSeat, s.ID))
		}
		seen[s.ID] = true
	}
	return OK
}
