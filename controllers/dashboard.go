package controllers

import (
	"net/http"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardStats aggregates the user's portfolio: project counts by
// status, combined budget and spend, category breakdowns, the latest
// entries and the month-by-month spend timeline.
func GetDashboardStats(c *gin.Context) {
	userID := currentUserID(c)

	var projects []models.Project
	if err := config.DB.Where("created_by = ?", userID).Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	aggregator := services.NewCostAggregator(config.DB)

	statusCounts := make(map[string]int)
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero
	projectIDs := make([]uint, 0, len(projects))
	for i := range projects {
		statusCounts[projects[i].Status]++
		totalBudget = totalBudget.Add(projects[i].Budget)
		projectIDs = append(projectIDs, projects[i].ProjectID)

		spent, err := aggregator.TotalSpent(projects[i].ProjectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spending"})
			return
		}
		totalSpent = totalSpent.Add(spent)
	}

	materialBreakdown, err := aggregator.MaterialBreakdownForProjects(projectIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute material breakdown"})
		return
	}
	laborBreakdown, err := aggregator.LaborBreakdownForProjects(projectIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute labor breakdown"})
		return
	}
	timeline, err := aggregator.MonthlyTimeline(projectIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute timeline"})
		return
	}

	var recentMaterials []models.MaterialEntry
	var recentLabor []models.LaborEntry
	if len(projectIDs) > 0 {
		config.DB.Preload("Category").Preload("Unit").
			Where("project_id IN ?", projectIDs).
			Order("created_at DESC, material_id DESC").
			Limit(5).
			Find(&recentMaterials)
		config.DB.Preload("Category").
			Where("project_id IN ?", projectIDs).
			Order("created_at DESC, labor_id DESC").
			Limit(5).
			Find(&recentLabor)
	}

	var unreadAlerts int64
	config.DB.Model(&models.BudgetAlert{}).
		Where("is_read = ? AND project_id IN (?)", false,
			config.DB.Model(&models.Project{}).
				Select("project_id").
				Where("created_by = ?", userID)).
		Count(&unreadAlerts)

	c.JSON(http.StatusOK, gin.H{
		"total_projects":     len(projects),
		"projects_status":    statusCounts,
		"total_budget":       totalBudget,
		"total_spent":        totalSpent,
		"remaining":          totalBudget.Sub(totalSpent),
		"utilization":        services.UtilizationPercentage(totalSpent, totalBudget).Round(1),
		"material_breakdown": materialBreakdown,
		"labor_breakdown":    laborBreakdown,
		"monthly_timeline":   timeline,
		"recent_materials":   recentMaterials,
		"recent_labor":       recentLabor,
		"unread_alerts":      unreadAlerts,
	})
}

// GetSpendingTimeline returns the merged month-by-month material and labor
// spend across the user's projects. ?project_id= narrows to one project.
func GetSpendingTimeline(c *gin.Context) {
	userID := currentUserID(c)

	query := config.DB.Model(&models.Project{}).
		Where("created_by = ?", userID)
	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var projectIDs []uint
	if err := query.Pluck("project_id", &projectIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	timeline, err := services.NewCostAggregator(config.DB).MonthlyTimeline(projectIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute timeline"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": timeline})
}
