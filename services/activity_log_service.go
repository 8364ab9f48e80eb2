package services

import (
	"log"

	"construction-tracker-api/models"

	"gorm.io/gorm"
)

// RecordActivity appends an audit entry for a project. The trail is
// best-effort bookkeeping: a failed write is logged and swallowed so it
// never blocks the mutation being recorded.
func RecordActivity(db *gorm.DB, projectID, userID uint, action, description string, materialID *uint) {
	entry := models.ActivityLog{
		ProjectID:   projectID,
		UserID:      userID,
		Action:      action,
		Description: description,
		MaterialID:  materialID,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to record activity %s for project %d: %v", action, projectID, err)
	}
}

// RecentActivity returns the latest audit entries for a project.
func RecentActivity(db *gorm.DB, projectID uint, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ActivityLog
	err := db.Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at DESC, log_id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
