package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline/internal/models"
)

type fakeStorage struct {
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStorage) Load(ctx context.Context) ([]byte, error) {
	return f.data, f.loadErr
}

func (f *fakeStorage) Save(ctx context.Context, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data = append([]byte(nil), data...)
	f.saves++
	return nil
}

func newBooking(date string, timestamp int64, seatIDs ...string) models.NewBooking {
	nb := models.NewBooking{TravelDate: date, Mobile: "9876543210", Timestamp: timestamp}
	for _, id := range seatIDs {
		nb.Seats = append(nb.Seats, models.SeatSnapshot{ID: id})
	}
	return nb
}

func TestAddBooking(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	repo := NewBookingRepository(ctx, store)

	booking, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1", "B2"))
	require.NoError(t, err)

	assert.Regexp(t, `^B[0-9A-Z]{6}$`, booking.ID)
	assert.Equal(t, models.StatusBooked, booking.Status)
	assert.Equal(t, []string{"A1", "B2"}, booking.SeatIDs)
	assert.Equal(t, models.SeatSnapshot{ID: "B2", Row: 2, Col: "B"}, booking.Seats[1])
	assert.Equal(t, 1, store.saves)

	var saved []models.Booking
	require.NoError(t, json.Unmarshal(store.data, &saved))
	assert.Len(t, saved, 1)
	assert.Equal(t, booking.ID, saved[0].ID)
}

func TestAddBooking_RetriesCollidingID(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(ctx, &fakeStorage{})

	generated := []string{"BAAAAAA", "BAAAAAA", "BBBBBBB"}
	repo.newID = func() string {
		id := generated[0]
		generated = generated[1:]
		return id
	}

	first, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1"))
	require.NoError(t, err)
	second, err := repo.AddBooking(ctx, newBooking("2025-03-14", 200, "A2"))
	require.NoError(t, err)

	assert.Equal(t, "BAAAAAA", first.ID)
	assert.Equal(t, "BBBBBBB", second.ID)
}

func TestAddBooking_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	repo := NewBookingRepository(ctx, store)

	_, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1"))
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	_, err = repo.AddBooking(ctx, newBooking("2025-03-14", 200, "A2"))
	assert.Error(t, err)

	assert.Len(t, repo.GetBookingsForDate("2025-03-14"), 1)
	assert.False(t, repo.IsSeatBooked("A2", "2025-03-14"))
}

func TestMarkBoarded(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	repo := NewBookingRepository(ctx, store)

	booking, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1"))
	require.NoError(t, err)

	changed, err := repo.MarkBoarded(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, ok := repo.GetByID(booking.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusBoarded, got.Status)

	// Second call is a no-op and writes nothing
	changed, err = repo.MarkBoarded(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, store.saves)
}

func TestMarkBoarded_UnknownID(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	repo := NewBookingRepository(ctx, store)

	changed, err := repo.MarkBoarded(ctx, "BNOPE00")
	assert.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, store.saves)
}

func TestMarkBoarded_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	repo := NewBookingRepository(ctx, store)

	booking, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1"))
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	_, err = repo.MarkBoarded(ctx, booking.ID)
	assert.Error(t, err)

	got, _ := repo.GetByID(booking.ID)
	assert.Equal(t, models.StatusBooked, got.Status)
}

func TestGetBookingsForDate(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(ctx, &fakeStorage{})

	a, _ := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1"))
	_, _ = repo.AddBooking(ctx, newBooking("2025-03-15", 200, "A1"))
	c, _ := repo.AddBooking(ctx, newBooking("2025-03-14", 300, "B1"))

	got := repo.GetBookingsForDate("2025-03-14")
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)

	assert.Empty(t, repo.GetBookingsForDate("2025-01-01"))

	// Returned bookings are copies
	got[0].SeatIDs[0] = "D9"
	assert.True(t, repo.IsSeatBooked("A1", "2025-03-14"))
}

func TestIsSeatBooked(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(ctx, &fakeStorage{})

	_, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "C7"))
	require.NoError(t, err)

	assert.True(t, repo.IsSeatBooked("C7", "2025-03-14"))
	assert.False(t, repo.IsSeatBooked("C7", "2025-03-15"))
	assert.False(t, repo.IsSeatBooked("C8", "2025-03-14"))
}

func TestNewBookingRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := &fakeStorage{}
	repo := NewBookingRepository(ctx, store)

	booking, err := repo.AddBooking(ctx, newBooking("2025-03-14", 100, "A1", "A2"))
	require.NoError(t, err)
	_, err = repo.MarkBoarded(ctx, booking.ID)
	require.NoError(t, err)

	reloaded := NewBookingRepository(ctx, store)
	assert.Equal(t, repo.All(), reloaded.All())
}

func TestNewBookingRepository_BadData(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		store *fakeStorage
	}{
		{"missing", &fakeStorage{}},
		{"malformed", &fakeStorage{data: []byte("{not json")}},
		{"wrong shape", &fakeStorage{data: []byte(`{"id":"B000001"}`)}},
		{"load error", &fakeStorage{loadErr: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewBookingRepository(ctx, tt.store)
			assert.Empty(t, repo.All())
		})
	}
}

func TestNewBookingRepository_LegacyRecord(t *testing.T) {
	data := []byte(`[{"id":"B000001","travelDate":"2025-03-14","mobile":"9876543210","seats":["C10","D11"],"timestamp":5}]`)
	repo := NewBookingRepository(context.Background(), &fakeStorage{data: data})

	got, ok := repo.GetByID("B000001")
	require.True(t, ok)
	assert.Equal(t, []string{"C10", "D11"}, got.SeatIDs)
	assert.Equal(t, 10, got.Seats[0].Row)
	assert.Equal(t, models.StatusBooked, got.Status)
}
