package handlers

import (
	"net/http"

	intconfig "matwana/internal/config"
	"matwana/internal/http/middleware"
	"matwana/internal/repositories"
	"matwana/internal/services"

	"github.com/gin-gonic/gin"
)

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

func newBookingService(c *gin.Context) services.BookingService {
	db := intconfig.DB
	return services.BookingService{
		UserRepo:    repositories.UserRepository{DB: db},
		CatalogRepo: repositories.CatalogRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
		RequestID:   middleware.GetRequestID(c),
	}
}

func newWalletService(c *gin.Context) services.WalletService {
	db := intconfig.DB
	return services.WalletService{
		UserRepo:    repositories.UserRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		DB:          db,
		RequestID:   middleware.GetRequestID(c),
	}
}

func newCatalogService() services.CatalogService {
	db := intconfig.DB
	return services.CatalogService{
		CatalogRepo: repositories.CatalogRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
	}
}

func newDashboardService() services.DashboardService {
	db := intconfig.DB
	return services.DashboardService{
		UserRepo:    repositories.UserRepository{DB: db},
		BookingRepo: repositories.BookingRepository{DB: db},
		DB:          db,
	}
}
