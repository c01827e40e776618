package handlers

import (
	"net/http"
	"strconv"

	"matwana/internal/http/middleware"
	"matwana/internal/repositories"
	"matwana/internal/services"

	"github.com/gin-gonic/gin"
)

type bookRequest struct {
	RouteID int64 `json:"route_id"`
	TripID  int64 `json:"trip_id"`
}

// POST /api/bookings
func Book(c *gin.Context) {
	var req bookRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := newBookingService(c)
	booking, err := svc.Book(middleware.CurrentUserID(c), req.RouteID, req.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking_id": booking.ID,
		"fare_paid":  booking.FarePaid,
		"message":    "booking successful",
	})
}

// GET /api/bookings/active
func ActiveBookings(c *gin.Context) {
	svc := newBookingService(c)
	bookings, err := svc.ActiveBookings(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings?date=YYYY-MM-DD&status=completed
func BookingHistory(c *gin.Context) {
	svc := newBookingService(c)
	bookings, err := svc.History(middleware.CurrentUserID(c), repositories.HistoryFilter{
		Date:   c.Query("date"),
		Status: c.Query("status"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id/ticket
func BookingTicketPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id", nil)
		return
	}

	docs := services.DocsService{
		Booking: newBookingService(c),
		Wallet:  newWalletService(c),
	}
	data, filename, err := docs.GenerateTicket(id, middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
