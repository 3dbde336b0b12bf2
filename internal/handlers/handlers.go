package handlers

import (
	"net/http"
	"time"

	"busline/internal/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		services: services,
	}
}

// travelDate читает обязательный параметр date в формате YYYY-MM-DD.
// При ошибке ответ уже записан и возвращается false.
func travelDate(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return "", false
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return "", false
	}
	return date, true
}
