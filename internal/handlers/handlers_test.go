package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline/internal/models"
	"busline/internal/repository"
	"busline/internal/service"
	"busline/internal/storage"
)

const testDate = "2025-03-14"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	repos := repository.NewRepositories(context.Background(), storage.NewMemoryStorage())
	h := NewHandlers(service.NewServices(repos))

	api := r.Group("/api")
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

	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonBody)
	} else {
		buf = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createBooking(t *testing.T, r *gin.Engine, timestamp int64, seats ...string) models.Booking {
	t.Helper()

	w := doJSON(r, "POST", "/api/bookings", map[string]interface{}{
		"travelDate": testDate,
		"mobile":     "9876543210",
		"seats":      seats,
		"timestamp":  timestamp,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	return booking
}

func TestGetLayout(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "GET", "/api/layout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response models.SeatMapResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Rows, 15)
	assert.Len(t, response.Rows[0], 4)
	assert.Equal(t, "A1", response.Rows[0][0].ID)
}

func TestCreateBooking(t *testing.T) {
	r := setupRouter()

	booking := createBooking(t, r, 100, "A1", "B1")

	assert.Regexp(t, `^B[0-9A-Z]{6}$`, booking.ID)
	assert.Equal(t, testDate, booking.TravelDate)
	assert.Equal(t, []string{"A1", "B1"}, booking.SeatIDs)
	assert.Equal(t, 1, booking.Seats[0].Row)
	assert.Equal(t, int64(100), booking.Timestamp)
	assert.Equal(t, models.StatusBooked, booking.Status)
}

func TestCreateBooking_Rejections(t *testing.T) {
	r := setupRouter()
	createBooking(t, r, 100, "C3")

	tests := []struct {
		name   string
		seats  []string
		reason string
	}{
		{"no seats", []string{}, "no seats selected"},
		{"too many seats", []string{"A1", "B1", "C1", "D1", "A2", "B2", "C2"}, "seat limit exceeded"},
		{"taken seat", []string{"D3", "C3"}, "seat already booked"},
		{"unknown seat", []string{"E1"}, "unknown seat: E1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "POST", "/api/bookings", map[string]interface{}{
				"travelDate": testDate,
				"mobile":     "9876543210",
				"seats":      tt.seats,
			})
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var response map[string]string
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.reason, response["error"])
		})
	}
}

func TestCreateBooking_InvalidJSON(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("POST", "/api/bookings", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateBooking(t *testing.T) {
	r := setupRouter()
	createBooking(t, r, 100, "A5")

	w := doJSON(r, "POST", "/api/bookings/validate", map[string]interface{}{
		"travelDate": testDate,
		"mobile":     "9876543210",
		"seats":      []string{"A5"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response models.ValidationResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Valid)
	assert.Equal(t, "seat already booked", response.Reason)

	// Validation does not store anything
	list := doJSON(r, "GET", "/api/bookings?date="+testDate, nil)
	var bookings []models.Booking
	assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 1)
}

func TestListBookings(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "GET", "/api/bookings?date="+testDate, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	createBooking(t, r, 100, "A1")
	createBooking(t, r, 200, "B2")

	w = doJSON(r, "GET", "/api/bookings?date="+testDate, nil)
	var bookings []models.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings, 2)

	w = doJSON(r, "GET", "/api/bookings?date=2025-03-15", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListBookings_BadDate(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "GET", "/api/bookings", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "GET", "/api/bookings?date=14.03.2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSeatMapAndStatus(t *testing.T) {
	r := setupRouter()
	createBooking(t, r, 100, "D15")

	w := doJSON(r, "GET", "/api/seats?date="+testDate, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var seatMap models.SeatMapResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &seatMap))
	assert.True(t, seatMap.Rows[14][3].Booked)
	assert.False(t, seatMap.Rows[14][2].Booked)

	w = doJSON(r, "GET", "/api/seats/D15/booked?date="+testDate, nil)
	var status models.SeatStatusResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Booked)

	w = doJSON(r, "GET", "/api/seats/D15/booked?date=2025-03-15", nil)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Booked)
}

func TestSearchBookings_Disabled(t *testing.T) {
	r := setupRouter()

	w := doJSON(r, "GET", "/api/bookings/search?mobile=9876543210", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(r, "GET", "/api/bookings/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardBooking(t *testing.T) {
	r := setupRouter()
	booking := createBooking(t, r, 100, "A1")

	for i := 0; i < 2; i++ {
		w := doJSON(r, "PATCH", "/api/bookings/board", models.BoardBookingRequest{BookingID: booking.ID})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(r, "GET", "/api/bookings?date="+testDate, nil)
	var bookings []models.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Equal(t, models.StatusBoarded, bookings[0].Status)

	// Unknown ids are ignored
	w = doJSON(r, "PATCH", "/api/bookings/board", models.BoardBookingRequest{BookingID: "BXXXXXX"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "PATCH", "/api/bookings/board", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBoardingSequence(t *testing.T) {
	r := setupRouter()
	front := createBooking(t, r, 100, "A1", "B1")
	rear := createBooking(t, r, 200, "A10", "B12")
	late := createBooking(t, r, 300, "C10")

	w := doJSON(r, "GET", "/api/boarding?date="+testDate, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response models.BoardingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 3, response.TotalBookings)
	assert.Equal(t, 5, response.Passengers)
	require.Len(t, response.Sequence, 3)

	assert.Equal(t, rear.ID, response.Sequence[0].Booking.ID)
	assert.Equal(t, 10, response.Sequence[0].EffectiveRow)
	assert.Equal(t, late.ID, response.Sequence[1].Booking.ID)
	assert.Equal(t, front.ID, response.Sequence[2].Booking.ID)
	assert.Equal(t, 3, response.Sequence[2].Seq)
}
