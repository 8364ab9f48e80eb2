package controllers

import (
	"net/http"

	"construction-tracker-api/config"
	"construction-tracker-api/models"

	"github.com/gin-gonic/gin"
)

// GetAlerts lists budget alerts across the user's projects, newest first.
// ?unread=true narrows to unread alerts; ?project_id= narrows to one project.
func GetAlerts(c *gin.Context) {
	query := config.DB.Preload("Project").
		Joins("JOIN projects ON projects.project_id = budget_alerts.project_id").
		Where("projects.created_by = ?", currentUserID(c))

	if c.Query("unread") == "true" {
		query = query.Where("budget_alerts.is_read = ?", false)
	}
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("budget_alerts.project_id = ?", projectID)
	}

	var alerts []models.BudgetAlert
	if err := query.Order("budget_alerts.created_at DESC, budget_alerts.alert_id DESC").
		Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

// MarkAlertRead marks one alert as read. Reading an alert never deletes
// it and never re-arms its threshold.
func MarkAlertRead(c *gin.Context) {
	alertID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var alert models.BudgetAlert
	err := config.DB.
		Joins("JOIN projects ON projects.project_id = budget_alerts.project_id").
		Where("budget_alerts.alert_id = ? AND projects.created_by = ?", alertID, currentUserID(c)).
		First(&alert).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	if err := config.DB.Model(&alert).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as read"})
}

// MarkAllAlertsRead marks every unread alert on the user's projects.
func MarkAllAlertsRead(c *gin.Context) {
	result := config.DB.Model(&models.BudgetAlert{}).
		Where("is_read = ? AND project_id IN (?)", false,
			config.DB.Model(&models.Project{}).
				Select("project_id").
				Where("created_by = ?", currentUserID(c))).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Alerts marked as read",
		"updated": result.RowsAffected,
	})
}
