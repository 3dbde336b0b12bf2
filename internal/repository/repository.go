package repository

import (
	"context"
)

// RecordName is the name of the single durable record holding all bookings.
const RecordName = "bus_bookings"

// Storage persists the serialized booking collection as one record.
// Load returns nil data and a nil error when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type Repositories struct {
	Bookings *BookingRepository
}

func NewRepositories(ctx context.Context, storage Storage) *Repositories {
	return &Repositories{
		Bookings: NewBookingRepository(ctx, storage),
	}
}
