package api

import (
	stdhttp "net/http"

	intconfig "matwana/internal/config"
	"matwana/internal/domain/models"
	h "matwana/internal/http/handlers"
	"matwana/internal/http/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.JWTSecret = []byte(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warnf("failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Catalog reads are public.
		routes := api.Group("/routes")
		routes.GET("", h.ListRoutes)
		routes.GET("/search", h.SearchRoutes)
		routes.GET("/:id", h.RouteDetails)

		// Passenger surface: identity resolved once by the middleware.
		passenger := api.Group("")
		passenger.Use(middleware.Auth(h.JWTSecret), middleware.RequireRole(models.RolePassenger))
		{
			passenger.POST("/bookings", h.Book)
			passenger.GET("/bookings", h.BookingHistory)
			passenger.GET("/bookings/active", h.ActiveBookings)
			passenger.GET("/bookings/:id/ticket", h.BookingTicketPDF)

			passenger.POST("/wallet/topup", h.TopUpWallet)
			passenger.GET("/wallet", h.WalletBalance)
			passenger.GET("/wallet/statement", h.WalletStatement)
			passenger.GET("/wallet/receipt/:txn", h.WalletReceiptPDF)

			passenger.POST("/quick-book", h.QuickBook)
			passenger.GET("/dashboard/stats", h.DashboardStats)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.Auth(h.JWTSecret), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/stats", h.AdminStats)
		}
	}

	return r
}
