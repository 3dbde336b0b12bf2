package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"busline/internal/boarding"
	"busline/internal/clock"
	apperrors "busline/internal/errors"
	"busline/internal/logger"
	"busline/internal/metrics"
	"busline/internal/models"
	"busline/internal/repository"
	"busline/internal/seating"
	"busline/internal/validation"
)

type BookingService struct {
	bookingRepo *repository.BookingRepository
	publisher   Publisher
	searcher    BookingSearcher
	metrics     *metrics.Metrics
	clock       clock.Clock

	// commitMu makes validate-then-append one step
	commitMu sync.Mutex
}

func NewBookingService(bookingRepo *repository.BookingRepository, opts ...Option) *BookingService {
	s := &BookingService{
		bookingRepo: bookingRepo,
		clock:       clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics != nil {
		s.metrics.StoredBookings.Set(float64(len(bookingRepo.All())))
	}
	return s
}

// Layout returns the empty seat grid.
func (s *BookingService) Layout() models.SeatMapResponse {
	return models.SeatMapResponse{Rows: seating.GenerateSeatLayout()}
}

// SeatMap returns the seat grid with seats booked on date marked.
func (s *BookingService) SeatMap(date string) models.SeatMapResponse {
	bookings := s.bookingRepo.GetBookingsForDate(date)
	return models.SeatMapResponse{
		TravelDate: date,
		Rows:       seating.OverlayBookings(seating.GenerateSeatLayout(), bookings),
	}
}

func (s *BookingService) IsSeatBooked(seatID, date string) bool {
	return s.bookingRepo.IsSeatBooked(seatID, date)
}

func (s *BookingService) BookingsForDate(date string) []models.Booking {
	return s.bookingRepo.GetBookingsForDate(date)
}

// Validate runs every check Book runs, without storing anything.
func (s *BookingService) Validate(req *models.CreateBookingRequest) validation.Result {
	return s.check(req)
}

func (s *BookingService) check(req *models.CreateBookingRequest) validation.Result {
	if res := validation.ValidateRequest(req); !res.Valid {
		return res
	}
	existing := s.bookingRepo.GetBookingsForDate(req.TravelDate)
	if res := validation.IsValidBooking(req.Seats, existing); !res.Valid {
		return res
	}
	return validation.ValidateSeats(req.Seats)
}

// Book re-validates the selection against the current store state and stores it.
// A rejected selection is reported through the Result, never as an error; the error
// is reserved for persistence failures.
func (s *BookingService) Book(ctx context.Context, req *models.CreateBookingRequest) (models.Booking, validation.Result, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	if res := s.check(req); !res.Valid {
		s.recordRejection(res.Reason)
		logger.WithContext(ctx).Info("Booking rejected",
			"travel_date", req.TravelDate,
			"seats", len(req.Seats),
			"reason", res.Reason)
		return models.Booking{}, res, nil
	}

	timestamp := req.Timestamp
	if timestamp == 0 {
		timestamp = s.clock.Now().UnixMilli()
	}

	booking, err := s.bookingRepo.AddBooking(ctx, models.NewBooking{
		TravelDate: req.TravelDate,
		Mobile:     req.Mobile,
		Seats:      req.Seats,
		Timestamp:  timestamp,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.PersistenceErrors.Inc()
		}
		return models.Booking{}, validation.Result{}, fmt.Errorf("failed to create booking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
		s.metrics.SeatsBooked.Add(float64(len(booking.Seats)))
		s.metrics.StoredBookings.Inc()
	}

	logger.WithBooking(ctx, booking.ID, booking.TravelDate).Info("Booking created",
		"seat_ids", booking.SeatIDs)

	s.publish(ctx, models.EventBookingCreated, models.BookingCreatedEvent{
		Booking:   booking,
		Timestamp: s.clock.Now(),
	})

	return booking, validation.OK, nil
}

// MarkBoarded marks a booking as boarded. Unknown ids and repeated calls are no-ops.
func (s *BookingService) MarkBoarded(ctx context.Context, bookingID string) error {
	changed, err := s.bookingRepo.MarkBoarded(ctx, bookingID)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PersistenceErrors.Inc()
		}
		return fmt.Errorf("failed to mark booking boarded: %w", err)
	}
	if !changed {
		logger.WithContext(ctx).Debug("Mark boarded ignored", "booking_id", bookingID)
		return nil
	}

	booking, _ := s.bookingRepo.GetByID(bookingID)
	if s.metrics != nil {
		s.metrics.BookingsBoarded.Inc()
	}
	logger.WithBooking(ctx, booking.ID, booking.TravelDate).Info("Booking boarded")

	s.publish(ctx, models.EventBookingBoarded, models.BookingBoardedEvent{
		BookingID:  booking.ID,
		TravelDate: booking.TravelDate,
		Timestamp:  s.clock.Now(),
	})
	return nil
}

// Boarding returns the boarding sequence for date along with the screen totals.
func (s *BookingService) Boarding(date string) models.BoardingResponse {
	bookings := s.bookingRepo.GetBookingsForDate(date)
	return models.BoardingResponse{
		TravelDate:    date,
		TotalBookings: len(bookings),
		Passengers:    boarding.Passengers(bookings),
		Sequence:      boarding.Sequence(bookings),
	}
}

// Search finds bookings by mobile number through the search index.
func (s *BookingService) Search(ctx context.Context, mobile, date string) ([]models.Booking, error) {
	if s.searcher == nil {
		return nil, apperrors.ErrSearchDisabled
	}
	bookings, err := s.searcher.SearchByMobile(ctx, mobile, date)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) publish(ctx context.Context, subject string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, event); err != nil {
		// Log error but don't fail the operation
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}

func (s *BookingService) recordRejection(reason string) {
	if s.metrics == nil {
		return
	}
	label, _, _ := strings.Cut(reason, ":")
	s.metrics.BookingsRejected.WithLabelValues(label).Inc()
}
