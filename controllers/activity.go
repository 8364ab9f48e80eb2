package controllers

import (
	"net/http"
	"strconv"

	"construction-tracker-api/config"
	"construction-tracker-api/services"

	"github.com/gin-gonic/gin"
)

// GetActivityLog returns a project's recent audit trail. ?limit= caps the
// number of entries (default 50).
func GetActivityLog(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedProject(c, projectID); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := services.RecentActivity(config.DB, projectID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": entries,
		"total":    len(entries),
	})
}
