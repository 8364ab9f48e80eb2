package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project status values
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

// IsValidProjectStatus reports whether s is a known status value.
func IsValidProjectStatus(s string) bool {
	for _, status := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Project represents the projects table. Spend totals and utilization are
// derived by the cost aggregator, never stored here.
type Project struct {
	ProjectID   uint            `gorm:"primaryKey;column:project_id" json:"project_id"`
	Name        string          `gorm:"column:name;size:200" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Location    string          `gorm:"column:location;size:300" json:"location"`
	Budget      decimal.Decimal `gorm:"column:budget;type:decimal(12,2)" json:"budget"`
	Status      string          `gorm:"column:status;size:20;default:planning" json:"status"`
	StartDate   time.Time       `gorm:"column:start_date" json:"start_date"`
	EndDate     *time.Time      `gorm:"column:end_date" json:"end_date,omitempty"`
	CreatedBy   uint            `gorm:"column:created_by;index" json:"created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Owner           User            `gorm:"foreignKey:CreatedBy;references:UserID" json:"owner,omitempty"`
	MaterialEntries []MaterialEntry `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"material_entries,omitempty"`
	LaborEntries    []LaborEntry    `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"labor_entries,omitempty"`
	Photos          []ProjectPhoto  `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	ActivityLogs    []ActivityLog   `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"activity_logs,omitempty"`
	BudgetAlerts    []BudgetAlert   `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"budget_alerts,omitempty"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}
