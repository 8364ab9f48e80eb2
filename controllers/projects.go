package controllers

import (
	"net/http"
	"time"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Budget      decimal.Decimal `json:"budget"`
	Status      string          `json:"status"`
	StartDate   string          `json:"start_date" binding:"required"`
	EndDate     string          `json:"end_date"`
}

// validate parses the date fields and checks the business rules. The
// returned dates are only meaningful when the error list is empty.
func (r *ProjectRequest) validate() (time.Time, *time.Time, utils.FieldErrors) {
	var errs utils.FieldErrors

	if r.Budget.IsNegative() {
		errs.Add("budget", "Budget cannot be negative")
	}
	if r.Status != "" && !models.IsValidProjectStatus(r.Status) {
		errs.Add("status", "Invalid status value")
	}

	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		errs.Add("start_date", "Invalid date, expected YYYY-MM-DD")
	}

	var endDate *time.Time
	if r.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			errs.Add("end_date", "Invalid date, expected YYYY-MM-DD")
		} else if parsed.Before(startDate) {
			errs.Add("end_date", "End date cannot be before start date")
		} else {
			endDate = &parsed
		}
	}

	return startDate, endDate, errs
}

// GetProjects lists the user's projects, newest first. Supports ?status=
// and ?search= over name and location.
func GetProjects(c *gin.Context) {
	query := config.DB.Where("created_by = ?", currentUserID(c))

	if status := c.Query("status"); status != "" {
		if !models.IsValidProjectStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR location LIKE ?", pattern, pattern)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	// Each card carries its live spending summary.
	aggregator := services.NewCostAggregator(config.DB)
	summaries := make([]gin.H, 0, len(projects))
	for i := range projects {
		spending, err := aggregator.ProjectSpending(&projects[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spending"})
			return
		}
		summaries = append(summaries, gin.H{
			"project":  projects[i],
			"spending": spending,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": summaries,
		"total":    len(summaries),
	})
}

// GetProject returns one project with its spending summary and the
// per-category cost breakdowns.
func GetProject(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	aggregator := services.NewCostAggregator(config.DB)
	spending, err := aggregator.ProjectSpending(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spending"})
		return
	}
	materialBreakdown, err := aggregator.MaterialBreakdown(project.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute material breakdown"})
		return
	}
	laborBreakdown, err := aggregator.LaborBreakdown(project.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute labor breakdown"})
		return
	}

	var materialCount int64
	config.DB.Model(&models.MaterialEntry{}).
		Where("project_id = ?", project.ProjectID).
		Count(&materialCount)

	var unreadAlerts int64
	config.DB.Model(&models.BudgetAlert{}).
		Where("project_id = ? AND is_read = ?", project.ProjectID, false).
		Count(&unreadAlerts)

	c.JSON(http.StatusOK, gin.H{
		"project":            project,
		"spending":           spending,
		"material_count":     materialCount,
		"material_breakdown": materialBreakdown,
		"labor_breakdown":    laborBreakdown,
		"unread_alerts":      unreadAlerts,
	})
}

// CreateProject creates a new project owned by the current user
func CreateProject(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, endDate, errs := req.validate()
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusPlanning
	}

	project := models.Project{
		Name:        utils.SanitizeInput(req.Name),
		Description: req.Description,
		Location:    utils.SanitizeInput(req.Location),
		Budget:      req.Budget,
		Status:      status,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedBy:   currentUserID(c),
	}
	if err := config.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, project.CreatedBy,
		models.ActionProjectCreated, "Created project: "+project.Name, nil)

	c.JSON(http.StatusCreated, gin.H{
		"project": project,
		"message": "Project created successfully",
	})
}

// UpdateProject updates an existing project
func UpdateProject(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, endDate, errs := req.validate()
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	project.Name = utils.SanitizeInput(req.Name)
	project.Description = req.Description
	project.Location = utils.SanitizeInput(req.Location)
	project.Budget = req.Budget
	if req.Status != "" {
		project.Status = req.Status
	}
	project.StartDate = startDate
	project.EndDate = endDate

	if err := config.DB.Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	// A lowered budget can push utilization over a threshold.
	evaluateBudgetAlerts(project)

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"message": "Project updated successfully",
	})
}

// DeleteProject removes a project and, through the schema cascade, its
// materials, labor entries, receipts, photos, logs and alerts.
func DeleteProject(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	if err := config.DB.Delete(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
