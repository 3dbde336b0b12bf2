package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"busline/internal/models"

	"github.com/nats-io/stan.go"
)

// Indexer is the part of the search client the consumers need.
type Indexer interface {
	IndexBooking(ctx context.Context, booking models.Booking) error
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) error
}

type Handlers struct {
	indexer Indexer
	timeout time.Duration
}

func NewHandlers(indexer Indexer, timeout time.Duration) *Handlers {
	return &Handlers{
		indexer: indexer,
		timeout: timeout,
	}
}

func (h *Handlers) HandleBookingCreated(m *stan.Msg) {
	h.ack(m, models.EventBookingCreated, h.bookingCreated(m.Data))
}

func (h *Handlers) HandleBookingBoarded(m *stan.Msg) {
	h.ack(m, models.EventBookingBoarded, h.bookingBoarded(m.Data))
}

// ack подтверждает сообщение; при ошибке индексации оставляет его для повторной доставки
func (h *Handlers) ack(m *stan.Msg, subject string, err error) {
	if err != nil {
		slog.Error("Failed to process event", "event_type", subject, "error", err, "sequence", m.Sequence)
		return
	}
	if err := m.Ack(); err != nil {
		slog.Error("Failed to ack event", "event_type", subject, "error", err)
	}
}

func (h *Handlers) bookingCreated(data []byte) error {
	var event models.BookingCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		// Битое сообщение не станет лучше при повторе
		slog.Error("Failed to unmarshal booking created event", "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.indexer.IndexBooking(ctx, event.Booking); err != nil {
		return fmt.Errorf("failed to index booking %s: %w", event.Booking.ID, err)
	}

	slog.Info("Indexed booking", "booking_id", event.Booking.ID, "travel_date", event.Booking.TravelDate)
	return nil
}

func (h *Handlers) bookingBoarded(data []byte) error {
	var event models.BookingBoardedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Error("Failed to unmarshal booking boarded event", "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	if err := h.indexer.UpdateStatus(ctx, event.BookingID, models.StatusBoarded); err != nil {
		return fmt.Errorf("failed to update booking %s: %w", event.BookingID, err)
	}

	slog.Info("Updated booking status", "booking_id", event.BookingID, "status", models.StatusBoarded)
	return nil
}
