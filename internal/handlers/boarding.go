package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBoardingSequence - GET /api/boarding?date=
// Очередь посадки: задние ряды первыми, при равенстве - по времени бронирования
func (h *Handlers) GetBoardingSequence(c *gin.Context) {
	date, ok := travelDate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.services.Bookings.Boarding(date))
}
