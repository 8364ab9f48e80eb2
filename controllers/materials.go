package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialRequest struct {
	CategoryID   uint            `json:"category_id" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitID       uint            `json:"unit_id" binding:"required"`
	Cost         decimal.Decimal `json:"cost"`
	PurchaseDate string          `json:"purchase_date" binding:"required"`
	Supplier     string          `json:"supplier"`
	Notes        string          `json:"notes"`
}

func (r *MaterialRequest) validate() (time.Time, utils.FieldErrors) {
	var errs utils.FieldErrors

	if !r.Quantity.IsPositive() {
		errs.Add("quantity", "Quantity must be greater than zero")
	}
	if r.Cost.IsNegative() {
		errs.Add("cost", "Cost cannot be negative")
	}

	purchaseDate, err := time.Parse("2006-01-02", r.PurchaseDate)
	if err != nil {
		errs.Add("purchase_date", "Invalid date, expected YYYY-MM-DD")
	}

	var count int64
	config.DB.Model(&models.MaterialCategory{}).Where("category_id = ?", r.CategoryID).Count(&count)
	if count == 0 {
		errs.Add("category_id", "Unknown material category")
	}
	config.DB.Model(&models.MaterialUnit{}).Where("unit_id = ?", r.UnitID).Count(&count)
	if count == 0 {
		errs.Add("unit_id", "Unknown unit")
	}

	return purchaseDate, errs
}

// GetMaterials lists a project's material entries, newest purchase first.
func GetMaterials(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedProject(c, projectID); !ok {
		return
	}

	var materials []models.MaterialEntry
	err := config.DB.Preload("Category").Preload("Unit").
		Where("project_id = ?", projectID).
		Order("purchase_date DESC, material_id DESC").
		Find(&materials).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"materials": materials,
		"total":     len(materials),
	})
}

// CreateMaterial records a material purchase against a project
func CreateMaterial(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purchaseDate, errs := req.validate()
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	material := models.MaterialEntry{
		ProjectID:    project.ProjectID,
		CategoryID:   req.CategoryID,
		Description:  utils.SanitizeInput(req.Description),
		Quantity:     req.Quantity,
		UnitID:       req.UnitID,
		Cost:         req.Cost,
		PurchaseDate: purchaseDate,
		Supplier:     utils.SanitizeInput(req.Supplier),
		Notes:        req.Notes,
		CreatedBy:    currentUserID(c),
	}
	if err := config.DB.Create(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create material entry"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, material.CreatedBy,
		models.ActionMaterialAdded, "Added material: "+material.Description, &material.MaterialID)
	evaluateBudgetAlerts(project)

	config.DB.Preload("Category").Preload("Unit").First(&material, material.MaterialID)
	c.JSON(http.StatusCreated, gin.H{
		"material": material,
		"message":  "Material entry created successfully",
	})
}

// loadOwnedMaterial fetches a material entry and verifies its project
// belongs to the current user.
func loadOwnedMaterial(c *gin.Context, materialID uint) (*models.MaterialEntry, *models.Project, bool) {
	var material models.MaterialEntry
	if err := config.DB.First(&material, materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Material entry not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load material entry"})
		}
		return nil, nil, false
	}

	project, ok := loadOwnedProject(c, material.ProjectID)
	if !ok {
		return nil, nil, false
	}
	return &material, project, true
}

// UpdateMaterial updates a material purchase
func UpdateMaterial(c *gin.Context) {
	materialID, ok := paramID(c, "id")
	if !ok {
		return
	}
	material, project, ok := loadOwnedMaterial(c, materialID)
	if !ok {
		return
	}

	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purchaseDate, errs := req.validate()
	if req.Quantity.LessThan(material.QuantityUsed) {
		errs.Add("quantity", "Quantity cannot be less than the quantity already used")
	}
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	material.CategoryID = req.CategoryID
	material.Description = utils.SanitizeInput(req.Description)
	material.Quantity = req.Quantity
	material.UnitID = req.UnitID
	material.Cost = req.Cost
	material.PurchaseDate = purchaseDate
	material.Supplier = utils.SanitizeInput(req.Supplier)
	material.Notes = req.Notes

	if err := config.DB.Save(material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update material entry"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionMaterialUpdated, "Updated material: "+material.Description, &material.MaterialID)
	evaluateBudgetAlerts(project)

	config.DB.Preload("Category").Preload("Unit").First(material, material.MaterialID)
	c.JSON(http.StatusOK, gin.H{
		"material": material,
		"message":  "Material entry updated successfully",
	})
}

// UpdateMaterialUsage records consumption of a purchased material.
func UpdateMaterialUsage(c *gin.Context) {
	materialID, ok := paramID(c, "id")
	if !ok {
		return
	}
	material, project, ok := loadOwnedMaterial(c, materialID)
	if !ok {
		return
	}

	type UsageRequest struct {
		QuantityUsed decimal.Decimal `json:"quantity_used"`
	}
	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var errs utils.FieldErrors
	if req.QuantityUsed.IsNegative() {
		errs.Add("quantity_used", "Quantity used cannot be negative")
	}
	if req.QuantityUsed.GreaterThan(material.Quantity) {
		errs.Add("quantity_used", "Quantity used cannot exceed the purchased quantity")
	}
	if errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	if err := config.DB.Model(material).Update("quantity_used", req.QuantityUsed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update usage"})
		return
	}
	material.QuantityUsed = req.QuantityUsed

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionMaterialUsed,
		fmt.Sprintf("Updated usage of %s to %s", material.Description, req.QuantityUsed.String()),
		&material.MaterialID)

	c.JSON(http.StatusOK, gin.H{
		"material": material,
		"message":  "Material usage updated successfully",
	})
}

// DeleteMaterial removes a material purchase and its receipts.
func DeleteMaterial(c *gin.Context) {
	materialID, ok := paramID(c, "id")
	if !ok {
		return
	}
	material, project, ok := loadOwnedMaterial(c, materialID)
	if !ok {
		return
	}

	if err := config.DB.Delete(material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete material entry"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionMaterialDeleted, "Deleted material: "+material.Description, nil)
	evaluateBudgetAlerts(project)

	c.JSON(http.StatusOK, gin.H{"message": "Material entry deleted successfully"})
}
