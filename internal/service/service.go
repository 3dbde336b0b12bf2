package service

import (
	"context"

	"busline/internal/clock"
	"busline/internal/metrics"
	"busline/internal/models"
	"busline/internal/repository"
)

// Publisher sends domain events to the message broker.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// BookingSearcher looks bookings up in the search index.
type BookingSearcher interface {
	SearchByMobile(ctx context.Context, mobile, date string) ([]models.Booking, error)
}

type Services struct {
	Bookings *BookingService
}

// Option configures the booking service.
type Option func(*BookingService)

// WithPublisher publishes booking.created / booking.boarded events.
func WithPublisher(p Publisher) Option {
	return func(s *BookingService) { s.publisher = p }
}

// WithSearcher enables lookup by mobile number.
func WithSearcher(searcher BookingSearcher) Option {
	return func(s *BookingService) { s.searcher = searcher }
}

// WithMetrics records booking counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BookingService) { s.metrics = m }
}

// WithClock overrides the clock used to stamp bookings without a timestamp.
func WithClock(c clock.Clock) Option {
	return func(s *BookingService) { s.clock = c }
}

func NewServices(repos *repository.Repositories, opts ...Option) *Services {
	return &Services{
		Bookings: NewBookingService(repos.Bookings, opts...),
	}
}
