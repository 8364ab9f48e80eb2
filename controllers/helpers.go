package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	value, _ := c.Get("userID")
	id, _ := value.(uint)
	return id
}

// paramID parses a numeric path parameter, responding 400 on failure.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// loadOwnedProject fetches a project scoped to the authenticated user.
// A project owned by someone else is indistinguishable from a missing one.
func loadOwnedProject(c *gin.Context, projectID uint) (*models.Project, bool) {
	var project models.Project
	err := config.DB.Where("project_id = ? AND created_by = ?", projectID, currentUserID(c)).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load project"})
		}
		return nil, false
	}
	return &project, true
}

// respondFieldErrors sends a 400 carrying per-field validation failures.
func respondFieldErrors(c *gin.Context, errs utils.FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "Validation failed",
		"fields": errs,
	})
}

// evaluateBudgetAlerts re-checks the project's spend thresholds after a
// cost mutation and emails any new alert to the owner. Both steps are
// best-effort: a failure here never fails the request that caused it.
func evaluateBudgetAlerts(project *models.Project) {
	alert, err := services.NewBudgetAlertEvaluator(config.DB).EvaluateAndRaise(project)
	if err != nil {
		log.Printf("Warning: budget alert evaluation failed for project %d: %v", project.ProjectID, err)
		return
	}
	if alert == nil {
		return
	}
	if err := services.DispatchAlertEmail(config.DB, alert); err != nil {
		log.Printf("Warning: failed to email budget alert %d: %v", alert.AlertID, err)
	}
}

// isDuplicateErr reports whether err is a unique-constraint violation.
// MySQL reports "Duplicate entry"; the translated gorm error and the
// SQLite wording are covered for other backends.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}
