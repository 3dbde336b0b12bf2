package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the booking counters. Each instance has its own registry so tests
// can create as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	BookingsCreated   prometheus.Counter
	SeatsBooked       prometheus.Counter
	BookingsRejected  *prometheus.CounterVec
	BookingsBoarded   prometheus.Counter
	StoredBookings    prometheus.Gauge
	PersistenceErrors prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "busline",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted and stored.",
		}),
		SeatsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "busline",
			Name:      "seats_booked_total",
			Help:      "Seats held by accepted bookings.",
		}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "busline",
			Name:      "bookings_rejected_total",
			Help:      "Booking attempts rejected by validation, by reason.",
		}, []string{"reason"}),
		BookingsBoarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "busline",
			Name:      "bookings_boarded_total",
			Help:      "Bookings moved from BOOKED to BOARDED.",
		}),
		StoredBookings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "busline",
			Name:      "stored_bookings",
			Help:      "Bookings currently held by the store.",
		}),
		PersistenceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "busline",
			Name:      "persistence_errors_total",
			Help:      "Failed saves of the booking record.",
		}),
	}

	m.Registry.MustRegister(
		m.BookingsCreated,
		m.SeatsBooked,
		m.BookingsRejected,
		m.BookingsBoarded,
		m.StoredBookings,
		m.PersistenceErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}
