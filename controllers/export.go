package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportMaterials loads the rows both export formats share.
func exportMaterials(projectID uint) ([]models.MaterialEntry, error) {
	var materials []models.MaterialEntry
	err := config.DB.Preload("Category").Preload("Unit").
		Where("project_id = ?", projectID).
		Order("purchase_date, material_id").
		Find(&materials).Error
	return materials, err
}

// ExportMaterialsExcel streams the project's materials as a spreadsheet
func ExportMaterialsExcel(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	materials, err := exportMaterials(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}
	spending, err := services.NewCostAggregator(config.DB).ProjectSpending(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spending"})
		return
	}

	workbook, err := services.BuildMaterialsWorkbook(project, materials, spending.TotalSpent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build spreadsheet"})
		return
	}
	defer workbook.Close()

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render spreadsheet"})
		return
	}

	filename := fmt.Sprintf("%s_materials.xlsx", project.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportProjectPDF streams the project summary report as a PDF
func ExportProjectPDF(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	materials, err := exportMaterials(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch materials"})
		return
	}
	spending, err := services.NewCostAggregator(config.DB).ProjectSpending(project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spending"})
		return
	}

	report, err := services.BuildProjectReport(project, spending, materials)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	filename := fmt.Sprintf("%s_report.pdf", project.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", report.Bytes())
}
