package controllers

import (
	"fmt"
	"net/http"
	"time"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LaborRequest struct {
	CategoryID       uint            `json:"category_id" binding:"required"`
	WorkDate         string          `json:"work_date" binding:"required"`
	NumberOfWorkers  int             `json:"number_of_workers"`
	RatePerWorkerDay decimal.Decimal `json:"rate_per_worker_per_day"`
	Notes            string          `json:"notes"`
}

func (r *LaborRequest) validate() (time.Time, utils.FieldErrors) {
	var errs utils.FieldErrors

	if r.NumberOfWorkers < 1 {
		errs.Add("number_of_workers", "At least one worker is required")
	}
	if !r.RatePerWorkerDay.IsPositive() {
		errs.Add("rate_per_worker_per_day", "Rate must be greater than zero")
	}

	workDate, err := time.Parse("2006-01-02", r.WorkDate)
	if err != nil {
		errs.Add("work_date", "Invalid date, expected YYYY-MM-DD")
	}

	var count int64
	config.DB.Model(&models.LaborCategory{}).Where("category_id = ?", r.CategoryID).Count(&count)
	if count == 0 {
		errs.Add("category_id", "Unknown labor category")
	}

	return workDate, errs
}

// GetLaborEntries lists a project's labor entries, most recent work first.
func GetLaborEntries(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedProject(c, projectID); !ok {
		return
	}

	var entries []models.LaborEntry
	err := config.DB.Preload("Category").
		Where("project_id = ?", projectID).
		Order("work_date DESC, labor_id DESC").
		Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch labor entries"})
		return
	}

	total := decimal.Zero
	for i := range entries {
		total = total.Add(entries[i].TotalCost())
	}

	c.JSON(http.StatusOK, gin.H{
		"labor_entries": entries,
		"total":         len(entries),
		"total_cost":    total,
	})
}

// GetLaborSummary returns the per-role cost breakdown and total for a
// project's labor.
func GetLaborSummary(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedProject(c, projectID); !ok {
		return
	}

	aggregator := services.NewCostAggregator(config.DB)
	breakdown, err := aggregator.LaborBreakdown(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute labor breakdown"})
		return
	}
	total, err := aggregator.TotalLaborCost(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute labor cost"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"breakdown":  breakdown,
		"total_cost": total,
	})
}

// CreateLaborEntry records one role's crew for one day. The composite
// unique index rejects a second entry for the same project, role and date.
func CreateLaborEntry(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	var req LaborRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workDate, errs := req.validate()
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	entry := models.LaborEntry{
		ProjectID:        project.ProjectID,
		CategoryID:       req.CategoryID,
		WorkDate:         workDate,
		NumberOfWorkers:  req.NumberOfWorkers,
		RatePerWorkerDay: req.RatePerWorkerDay,
		Notes:            req.Notes,
		CreatedBy:        currentUserID(c),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A labor entry for this role and date already exists. Edit the existing entry instead.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create labor entry"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, entry.CreatedBy,
		models.ActionLaborAdded,
		fmt.Sprintf("Added labor entry for %s", workDate.Format("2006-01-02")), nil)
	evaluateBudgetAlerts(project)

	config.DB.Preload("Category").First(&entry, entry.LaborID)
	c.JSON(http.StatusCreated, gin.H{
		"labor_entry": entry,
		"message":     "Labor entry created successfully",
	})
}

// UpdateLaborEntry updates a labor entry
func UpdateLaborEntry(c *gin.Context) {
	laborID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var entry models.LaborEntry
	if err := config.DB.First(&entry, laborID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Labor entry not found"})
		return
	}
	project, ok := loadOwnedProject(c, entry.ProjectID)
	if !ok {
		return
	}

	var req LaborRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workDate, errs := req.validate()
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	entry.CategoryID = req.CategoryID
	entry.WorkDate = workDate
	entry.NumberOfWorkers = req.NumberOfWorkers
	entry.RatePerWorkerDay = req.RatePerWorkerDay
	entry.Notes = req.Notes

	if err := config.DB.Save(&entry).Error; err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A labor entry for this role and date already exists.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update labor entry"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionLaborUpdated,
		fmt.Sprintf("Updated labor entry for %s", workDate.Format("2006-01-02")), nil)
	evaluateBudgetAlerts(project)

	config.DB.Preload("Category").First(&entry, entry.LaborID)
	c.JSON(http.StatusOK, gin.H{
		"labor_entry": entry,
		"message":     "Labor entry updated successfully",
	})
}

// DeleteLaborEntry removes a labor entry
func DeleteLaborEntry(c *gin.Context) {
	laborID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var entry models.LaborEntry
	if err := config.DB.First(&entry, laborID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Labor entry not found"})
		return
	}
	project, ok := loadOwnedProject(c, entry.ProjectID)
	if !ok {
		return
	}

	if err := config.DB.Delete(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete labor entry"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionLaborDeleted,
		fmt.Sprintf("Deleted labor entry for %s", entry.WorkDate.Format("2006-01-02")), nil)
	evaluateBudgetAlerts(project)

	c.JSON(http.StatusOK, gin.H{"message": "Labor entry deleted successfully"})
}
