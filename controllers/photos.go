package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"construction-tracker-api/config"
	"construction-tracker-api/models"
	"construction-tracker-api/services"
	"construction-tracker-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UploadPhoto attaches a progress photo to a project. Multipart field
// "file" carries the image; "title", "caption" and "taken_date" are
// optional form fields.
func UploadPhoto(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project, ok := loadOwnedProject(c, projectID)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if errs := utils.ValidatePhotoUpload(file.Filename, file.Size); errs.HasErrors() {
		respondFieldErrors(c, errs)
		return
	}

	var takenDate *time.Time
	if raw := c.PostForm("taken_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid taken_date, expected YYYY-MM-DD"})
			return
		}
		takenDate = &parsed
	}

	dir, err := uploadDir("photos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
		return
	}
	storedPath := filepath.Join(dir, storedFilename(file.Filename))
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	photo := models.ProjectPhoto{
		ProjectID:        project.ProjectID,
		Title:            utils.SanitizeInput(c.PostForm("title")),
		Caption:          c.PostForm("caption"),
		StoredPath:       storedPath,
		OriginalFilename: file.Filename,
		FileSize:         file.Size,
		TakenDate:        takenDate,
		UploadedBy:       currentUserID(c),
		UploadedAt:       time.Now(),
	}
	if err := config.DB.Create(&photo).Error; err != nil {
		_ = os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
		return
	}

	services.RecordActivity(config.DB, project.ProjectID, photo.UploadedBy,
		models.ActionPhotoUploaded, "Uploaded photo "+photo.OriginalFilename, nil)

	c.JSON(http.StatusCreated, gin.H{
		"photo":   photo,
		"message": "Photo uploaded successfully",
	})
}

// GetPhotos lists a project's photos, newest upload first.
func GetPhotos(c *gin.Context) {
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, ok := loadOwnedProject(c, projectID); !ok {
		return
	}

	var photos []models.ProjectPhoto
	err := config.DB.Where("project_id = ?", projectID).
		Order("uploaded_at DESC, photo_id DESC").
		Find(&photos).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"photos": photos,
		"total":  len(photos),
	})
}

// DownloadPhoto streams the stored photo file
func DownloadPhoto(c *gin.Context) {
	photoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	photo, _, ok := loadOwnedPhoto(c, photoID)
	if !ok {
		return
	}

	if _, err := os.Stat(photo.StoredPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.FileAttachment(photo.StoredPath, photo.OriginalFilename)
}

// DeletePhoto removes a photo record and, best-effort, its stored file.
func DeletePhoto(c *gin.Context) {
	photoID, ok := paramID(c, "id")
	if !ok {
		return
	}
	photo, project, ok := loadOwnedPhoto(c, photoID)
	if !ok {
		return
	}

	if err := config.DB.Delete(photo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	if photo.StoredPath != "" {
		if err := os.Remove(photo.StoredPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove photo file %s: %v", photo.StoredPath, err)
		}
	}

	services.RecordActivity(config.DB, project.ProjectID, currentUserID(c),
		models.ActionPhotoDeleted, "Deleted photo "+photo.OriginalFilename, nil)

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}

func loadOwnedPhoto(c *gin.Context, photoID uint) (*models.ProjectPhoto, *models.Project, bool) {
	var photo models.ProjectPhoto
	if err := config.DB.First(&photo, photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load photo"})
		}
		return nil, nil, false
	}

	project, ok := loadOwnedProject(c, photo.ProjectID)
	if !ok {
		return nil, nil, false
	}
	return &photo, project, true
}
