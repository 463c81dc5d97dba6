package controllers

import (
	"net/http"
	"strconv"

	"study-abroad-api/config"
	"study-abroad-api/services"

	"github.com/gin-gonic/gin"
)

// GetActivities returns the recent audit feed (admin)
func GetActivities(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	activities, err := services.RecentActivities(config.DB, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"total":      len(activities),
	})
}
