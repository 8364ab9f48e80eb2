package models

import "time"

// ProjectPhoto represents the project_photos table
type ProjectPhoto struct {
	PhotoID          uint       `gorm:"primaryKey;column:photo_id" json:"photo_id"`
	ProjectID        uint       `gorm:"column:project_id;index" json:"project_id"`
	Title            string     `gorm:"column:title;size:200" json:"title"`
	Caption          string     `gorm:"column:caption;type:text" json:"caption"`
	StoredPath       string     `gorm:"column:stored_path;size:500" json:"-"`
	OriginalFilename string     `gorm:"column:original_filename;size:255" json:"original_filename"`
	FileSize         int64      `gorm:"column:file_size" json:"file_size"`
	TakenDate        *time.Time `gorm:"column:taken_date" json:"taken_date,omitempty"`
	UploadedBy       uint       `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt       time.Time  `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName overrides the table name for ProjectPhoto
func (ProjectPhoto) TableName() string {
	return "project_photos"
}
