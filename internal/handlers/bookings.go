package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "busline/internal/errors"
	"busline/internal/logger"
	"busline/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /api/bookings
// Создать бронирование. Места проверяются заново на момент записи.
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, result, err := h.services.Bookings.Book(c.Request.Context(), &req)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to create booking", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	if !result.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": result.Reason})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ValidateBooking - POST /api/bookings/validate
// Проверить выбор мест без сохранения
func (h *Handlers) ValidateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.services.Bookings.Validate(&req)
	c.JSON(http.StatusOK, models.ValidationResponse{Valid: result.Valid, Reason: result.Reason})
}

// ListBookings - GET /api/bookings?date=
// Бронирования на дату в порядке создания
func (h *Handlers) ListBookings(c *gin.Context) {
	date, ok := travelDate(c)
	if !ok {
		return
	}

	bookings := h.services.Bookings.BookingsForDate(date)
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// SearchBookings - GET /api/bookings/search?mobile=&date=
// Поиск бронирований по номеру телефона
func (h *Handlers) SearchBookings(c *gin.Context) {
	mobile := c.Query("mobile")
	if mobile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobile is required"})
		return
	}

	bookings, err := h.services.Bookings.Search(c.Request.Context(), mobile, c.Query("date"))
	if errors.Is(err, apperrors.ErrSearchDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		slog.Error("Failed to search bookings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// BoardBooking - PATCH /api/bookings/board
// Отметить посадку. Неизвестный id не является ошибкой.
func (h *Handlers) BoardBooking(c *gin.Context) {
	var req models.BoardBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Bookings.MarkBoarded(c.Request.Context(), req.BookingID); err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to mark booking boarded",
			"error", err, "booking_id", req.BookingID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark booking boarded"})
		return
	}

	c.Status(http.StatusOK)
}
