package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/field-service-api/config"
	"github.com/kendall-kelly/field-service-api/services"
)

// GetDashboardStats handles GET /api/dashboard/stats - aggregated summary
// figures for the dashboard view
func GetDashboardStats(c *gin.Context) {
	svc := services.NewDashboardService(config.GetDB())
	stats, err := svc.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute dashboard stats",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
