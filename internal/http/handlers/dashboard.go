package handlers

import (
	"net/http"
	"time"

	"matwana/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/dashboard/stats
func DashboardStats(c *gin.Context) {
	svc := newDashboardService()
	stats, err := svc.PassengerStats(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /api/admin/stats
func AdminStats(c *gin.Context) {
	svc := newDashboardService()
	stats, err := svc.AdminStats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
