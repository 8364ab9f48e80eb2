package controllers

import (
	"net/http"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Key  string `json:"key" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// GetMaterialCategories lists every material category
func GetMaterialCategories(c *gin.Context) {
	var categories []models.MaterialCategory
	if err := config.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateMaterialCategory adds one material category
func CreateMaterialCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.MaterialCategory{
		Key:  utils.SanitizeInput(req.Key),
		Name: utils.SanitizeInput(req.Name),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category key already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// DeleteMaterialCategory removes a category unless material entries or
// catalog items still reference it.
func DeleteMaterialCategory(c *gin.Context) {
	categoryID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var inUse int64
	config.DB.Model(&models.MaterialEntry{}).Where("category_id = ?", categoryID).Count(&inUse)
	if inUse == 0 {
		config.DB.Model(&models.MaterialCatalog{}).Where("category_id = ?", categoryID).Count(&inUse)
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category is in use and cannot be deleted"})
		return
	}

	result := config.DB.Delete(&models.MaterialCategory{}, categoryID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GetLaborCategories lists every labor category
func GetLaborCategories(c *gin.Context) {
	var categories []models.LaborCategory
	if err := config.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateLaborCategory adds one labor category
func CreateLaborCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.LaborCategory{
		Key:  utils.SanitizeInput(req.Key),
		Name: utils.SanitizeInput(req.Name),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category key already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// DeleteLaborCategory removes a category unless labor entries reference it.
func DeleteLaborCategory(c *gin.Context) {
	categoryID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var inUse int64
	config.DB.Model(&models.LaborEntry{}).Where("category_id = ?", categoryID).Count(&inUse)
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Category is in use and cannot be deleted"})
		return
	}

	result := config.DB.Delete(&models.LaborCategory{}, categoryID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GetUnits lists every material unit
func GetUnits(c *gin.Context) {
	var units []models.MaterialUnit
	if err := config.DB.Order("name").Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch units"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}

// CreateUnit adds one measurement unit
func CreateUnit(c *gin.Context) {
	type UnitRequest struct {
		Name         string `json:"name" binding:"required"`
		Abbreviation string `json:"abbreviation" binding:"required"`
	}
	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit := models.MaterialUnit{
		Name:         utils.SanitizeInput(req.Name),
		Abbreviation: utils.SanitizeInput(req.Abbreviation),
	}
	if err := config.DB.Create(&unit).Error; err != nil {
		if isDuplicateErr(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Unit already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create unit"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"unit": unit})
}

// DeleteUnit removes a unit unless material entries reference it.
func DeleteUnit(c *gin.Context) {
	unitID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var inUse int64
	config.DB.Model(&models.MaterialEntry{}).Where("unit_id = ?", unitID).Count(&inUse)
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Unit is in use and cannot be deleted"})
		return
	}

	result := config.DB.Delete(&models.MaterialUnit{}, unitID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete unit"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unit not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted successfully"})
}

// GetMaterialCatalog lists reusable material definitions for autofill.
// ?category_id= narrows to one category; ?search= matches the description.
func GetMaterialCatalog(c *gin.Context) {
	query := config.DB.Preload("Category").Preload("Unit")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("description LIKE ?", "%"+search+"%")
	}

	var items []models.MaterialCatalog
	if err := query.Order("description").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"catalog": items,
		"total":   len(items),
	})
}
