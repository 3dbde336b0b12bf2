package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"busline/internal/config"
	"busline/internal/logger"
	"busline/internal/models"
	"busline/internal/repository"
	"busline/internal/seating"
	"busline/internal/service"
	"busline/internal/storage"
	"busline/internal/validation"

	flag "github.com/spf13/pflag"
)

var (
	travelDate = flag.StringP("date", "d", time.Now().Format("2006-01-02"), "Travel date to generate bookings for")
	count      = flag.IntP("count", "n", 10, "Number of bookings to generate")
	maxSeats   = flag.Int("max-seats", validation.MaxSeatsPerBooking, "Maximum seats per generated booking")
	seed       = flag.Int64("seed", 0, "Random seed (0 = time based)")
	dryRun     = flag.Bool("dry-run", false, "Show what would be generated without making changes")
)

// BookingGenerator fills a travel date with random non-overlapping bookings.
type BookingGenerator struct {
	bookings *service.BookingService
	rnd      *rand.Rand
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting booking generator...", "date", *travelDate, "count", *count, "dry_run", *dryRun)

	if *dryRun {
		cfg.Storage.Backend = config.StorageMemory
	}

	backend, err := storage.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "error", err)
	}
	defer backend.Close()

	ctx := context.Background()
	services := service.NewServices(repository.NewRepositories(ctx, backend))

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	generator := &BookingGenerator{
		bookings: services.Bookings,
		rnd:      rand.New(rand.NewSource(s)),
	}

	created, err := generator.Generate(ctx, *travelDate, *count, *maxSeats)
	if err != nil {
		logger.Fatal("Failed to generate bookings", "error", err)
	}

	slog.Info("Booking generation completed", "created", created, "date", *travelDate)
}

// Generate creates up to n bookings on date; it stops early once the bus is full.
func (g *BookingGenerator) Generate(ctx context.Context, date string, n, perBooking int) (int, error) {
	if perBooking < 1 || perBooking > validation.MaxSeatsPerBooking {
		perBooking = validation.MaxSeatsPerBooking
	}

	created := 0
	for created < n {
		free := g.freeSeats(date)
		if len(free) == 0 {
			slog.Warn("No free seats left", "date", date)
			break
		}

		size := 1 + g.rnd.Intn(perBooking)
		if size > len(free) {
			size = len(free)
		}
		g.rnd.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

		req := &models.CreateBookingRequest{
			TravelDate: date,
			Mobile:     g.mobile(),
			Seats:      free[:size],
		}

		booking, res, err := g.bookings.Book(ctx, req)
		if err != nil {
			return created, fmt.Errorf("failed to book seats: %w", err)
		}
		if !res.Valid {
			return created, fmt.Errorf("generated booking rejected: %s", res.Reason)
		}

		slog.Info("Created booking", "booking_id", booking.ID, "seat_ids", booking.SeatIDs)
		created++
	}
	return created, nil
}

func (g *BookingGenerator) freeSeats(date string) []models.SeatSnapshot {
	booked := seating.BookedSeatIDs(g.bookings.BookingsForDate(date))

	var free []models.SeatSnapshot
	for _, row := range seating.GenerateSeatLayout() {
		for _, seat := range row {
			if !booked[seat.ID] {
				free = append(free, seat.Snapshot())
			}
		}
	}
	return free
}

func (g *BookingGenerator) mobile() string {
	return fmt.Sprintf("9%09d", g.rnd.Intn(1_000_000_000))
}
