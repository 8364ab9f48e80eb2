package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// uploadDir resolves the storage directory for one upload kind, creating
// it if needed.
func uploadDir(kind string) (string, error) {
	base := os.Getenv("UPLOAD_PATH")
	if base == "" {
		base = "./uploads"
	}
	dir := filepath.Join(base, kind)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// storedFilename builds a collision-free disk name keeping the original
// extension.
func storedFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// UploadReceipt attaches a receipt file to a material entry. Send the file
// as multipart field "file"; set form field "is_primary" to "true" to make
// it the primary receipt.
func UploadReceipt(c *gin.Context) {
	materialID, ok := paramID(c, "id")
	if !ok {
		return
	}
	material, project, ok := loadOwnedMaterial(c, materialID)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if errs := utils.ValidateReceiptUpload(file.Filename, file.Size); errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	dir, err := uploadDir("receipts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}
	storedPath := filepath.Join(dir, storedFilename(file.Filename))
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	receipt := models.Receipt{
		MaterialID:       material.MaterialID,
		StoredPath:       storedPath,
		OriginalFilename: file.Filename,
		FileSize:         file.Size,
		MimeType:         file.Header.Get("Content-Type"),
		UploadedBy:       currentUserID(c),
		UploadedAt:       time.Now(),
	}
	requestPrimary := c.PostForm("is_primary") == "true"

	if err := services.NewReceiptService(config.DB).Attach(&receipt, requestPrimary); err != nil {
		// The row never made it in; do not leave the blob behind.
		_ = os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, receipt.UploadedBy,
		models.ActionReceiptUploaded, "Uploaded receipt for "+material.Description, &material.MaterialID)

	c.JSON(http.StatusCreated, gin.H{
		"receipt": receipt,
		"message": "Receipt uploaded successfully",
	})
}

// GetReceipts lists a material's receipts, primary first.
func GetReceipts(c *gin.Context) {
	materialID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, _, ok := loadOwnedMaterial(c, materialID); !ok {
		return
	}

	receipts, err := services.NewReceiptService(config.DB).ListForMaterial(materialID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receipts": receipts,
		"total":    len(receipts),
	})
}

// loadOwnedReceipt fetches a receipt and checks the chain of ownership
// through its material's project.
func loadOwnedReceipt(c *gin.Context, receiptID uint) (*models.Receipt, *models.Project, bool) {
	var receipt models.Receipt
	if err := config.DB.First(&receipt, receiptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load receipt"})
		}
		return nil, nil, false
	}

	_, project, ok := loadOwnedMaterial(c, receipt.MaterialID)
	if !ok {
		return nil, nil, false
	}
	return &receipt, project, true
}

// DownloadReceipt streams the stored receipt file
func DownloadReceipt(c *gin.Context) {
	receiptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	receipt, _, ok := loadOwnedReceipt(c, receiptID)
	if !ok {
		return
	}

	if _, err := os.Stat(receipt.StoredPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.FileAttachment(receipt.StoredPath, receipt.OriginalFilename)
}

// SetPrimaryReceipt marks a receipt as the primary one for its material
func SetPrimaryReceipt(c *gin.Context) {
	receiptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, _, ok := loadOwnedReceipt(c, receiptID); !ok {
		return
	}

	if err := services.NewReceiptService(config.DB).SetPrimary(receiptID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set primary receipt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Primary receipt updated"})
}

// DeleteReceipt removes a receipt, promoting a replacement primary if
// the deleted one held the flag.
func DeleteReceipt(c *gin.Context) {
	receiptID, ok := paramID(c, "id")
	if !ok {
		return
	}
	receipt, project, ok := loadOwnedReceipt(c, receiptID)
	if !ok {
		return
	}

	if err := services.NewReceiptService(config.DB).Delete(receiptID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete receipt"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionReceiptDeleted, "Deleted receipt "+receipt.OriginalFilename, &receipt.MaterialID)

	c.JSON(http.StatusOK, gin.H{"message": "Receipt deleted successfully"})
}
