package models

import "time"

// Activity log actions
const (
	ActionProjectCreated  = "project_created"
	ActionMaterialAdded   = "material_added"
	ActionMaterialUpdated = "material_updated"
	ActionMaterialDeleted = "material_deleted"
	ActionMaterialUsed    = "material_used"
	ActionLaborAdded      = "labor_added"
	ActionLaborUpdated    = "labor_updated"
	ActionLaborDeleted    = "labor_deleted"
	ActionReceiptUploaded = "receipt_uploaded"
	ActionReceiptDeleted  = "receipt_deleted"
	ActionPhotoUploaded   = "photo_uploaded"
	ActionPhotoDeleted    = "photo_deleted"
)

// ActivityLog represents the activity_logs table. Rows are append-only:
// nothing in the API mutates or deletes them short of deleting the
// owning project.
type ActivityLog struct {
	LogID       uint      `gorm:"primaryKey;column:log_id" json:"log_id"`
	ProjectID   uint      `gorm:"column:project_id;index" json:"project_id"`
	UserID      uint      `gorm:"column:user_id" json:"user_id"`
	Action      string    `gorm:"column:action;size:50" json:"action"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	MaterialID  *uint     `gorm:"column:material_id" json:"material_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	User User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName overrides the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}
