package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"busline/internal/config"
	"busline/internal/handlers"
	"busline/internal/logger"
	"busline/internal/messaging"
	"busline/internal/metrics"
	"busline/internal/middleware"
	"busline/internal/repository"
	"busline/internal/search"
	"busline/internal/service"
	"busline/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 5 * time.Second

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	storage  storage.Backend
	nats     *messaging.NATSClient
	services *service.Services
	metrics  *metrics.Metrics
}

// NewServer создает новый экземпляр сервера: хранилище, брокер, поиск, сервисы и роуты
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	m := metrics.New()
	opts := []service.Option{service.WithMetrics(m)}

	// Брокер и поиск опциональны: без них бронирование работает как обычно
	var natsClient *messaging.NATSClient
	if cfg.NATS.Enabled {
		natsClient, err = messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		opts = append(opts, service.WithPublisher(natsClient))
	}

	var checks []HealthCheck
	if p, ok := store.(pinger); ok {
		checks = append(checks, HealthCheck{Name: "storage", Check: p.Ping})
	}

	if cfg.Elasticsearch.Enabled {
		es, err := search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			slog.Error("Elasticsearch unavailable, booking search disabled", "error", err)
		} else {
			opts = append(opts, service.WithSearcher(es))
			checks = append(checks, HealthCheck{Name: "search", Check: es.HealthCheck})
		}
	}

	repos := repository.NewRepositories(ctx, store)
	services := service.NewServices(repos, opts...)

	exposed := m
	if !cfg.MetricsEnabled {
		exposed = nil
	}

	server := &Server{
		router:   NewRouter(services, exposed, checks...),
		config:   cfg,
		storage:  store,
		nats:     natsClient,
		services: services,
		metrics:  m,
	}
	return server, nil
}

// HealthCheck проверяет одну внешнюю зависимость
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter собирает gin роутер; m может быть nil
func NewRouter(services *service.Services, m *metrics.Metrics, checks ...HealthCheck) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	h := handlers.NewHandlers(services)

	api := router.Group("/api")
	{
		api.GET("/layout", h.GetLayout)

		seats := api.Group("/seats")
		{
			seats.GET("", h.GetSeatMap)
			seats.GET("/:seatId/booked", h.GetSeatStatus)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("", h.ListBookings)
			bookings.POST("/validate", h.ValidateBooking)
			bookings.GET("/search", h.SearchBookings)
			bookings.PATCH("/board", h.BoardBooking)
		}

		api.GET("/boarding", h.GetBoardingSequence)
	}

	router.GET("/health", healthHandler(checks))
	if m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	return router
}

// healthHandler обрабатывает health check запросы; 503 если хотя бы одна зависимость недоступна
func healthHandler(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				logger.WithFields("component", hc.Name).Warn("Health check failed", "error", err)
				components[hc.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[hc.Name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{
			"status":     state,
			"service":    "busline-api",
			"version":    "1.0.0",
			"components": components,
		})
	}
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			slog.Error("Error closing storage", "error", err)
			return err
		}
	}

	return nil
}
