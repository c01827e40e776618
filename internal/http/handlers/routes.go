package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"matwana/internal/repositories"
	"matwana/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/routes/search?q=ngong
func SearchRoutes(c *gin.Context) {
	svc := newCatalogService()
	routes, err := svc.SearchRoutes(c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/routes?start_point=&end_point=&sacco=&min_fare=&max_fare=
func ListRoutes(c *gin.Context) {
	filter := repositories.RouteFilter{
		StartPoint: strings.TrimSpace(c.Query("start_point")),
		EndPoint:   strings.TrimSpace(c.Query("end_point")),
	}
	if v := c.Query("sacco"); v != "" {
		filter.SaccoID, _ = strconv.ParseInt(v, 10, 64)
	}
	// Fare bounds arrive in KES and are compared in cents.
	if v := c.Query("min_fare"); v != "" {
		if cents, err := utils.ParseAmount(v); err == nil {
			filter.MinFare = cents
		}
	}
	if v := c.Query("max_fare"); v != "" {
		if cents, err := utils.ParseAmount(v); err == nil {
			filter.MaxFare = cents
		}
	}

	svc := newCatalogService()
	routes, err := svc.ListRoutes(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"routes":       routes,
		"total_routes": len(routes),
	})
}

// GET /api/routes/:id
func RouteDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid route id", nil)
		return
	}

	svc := newCatalogService()
	details, err := svc.GetRouteDetails(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type quickBookRequest struct {
	StartPoint string `json:"start_point"`
	EndPoint   string `json:"end_point"`
	TravelDate string `json:"travel_date"` // YYYY-MM-DD
}

// POST /api/quick-book
func QuickBook(c *gin.Context) {
	var req quickBookRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.StartPoint == "" || req.EndPoint == "" || req.TravelDate == "" {
		RespondError(c, http.StatusBadRequest, "start_point, end_point and travel_date are required", nil)
		return
	}

	svc := newCatalogService()
	trips, err := svc.QuickBook(req.StartPoint, req.EndPoint, req.TravelDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}
