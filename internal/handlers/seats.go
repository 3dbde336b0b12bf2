package handlers

import (
	"net/http"

	"busline/internal/models"

	"github.com/gin-gonic/gin"
)

// Seats handlers

// GetLayout - GET /api/layout
// Пустая схема мест автобуса
func (h *Handlers) GetLayout(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Bookings.Layout())
}

// GetSeatMap - GET /api/seats?date=
// Схема мест с занятыми на дату местами
func (h *Handlers) GetSeatMap(c *gin.Context) {
	date, ok := travelDate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.services.Bookings.SeatMap(date))
}

// GetSeatStatus - GET /api/seats/:seatId/booked?date=
func (h *Handlers) GetSeatStatus(c *gin.Context) {
	date, ok := travelDate(c)
	if !ok {
		return
	}
	seatID := c.Param("seatId")

	c.JSON(http.StatusOK, models.SeatStatusResponse{
		SeatID: seatID,
		Date:   date,
		Booked: h.services.Bookings.IsSeatBooked(seatID, date),
	})
}
