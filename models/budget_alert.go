package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget alert types, ordered by severity.
const (
	AlertTypeWarning  = "warning"  // >= 75% of budget
	AlertTypeCritical = "critical" // >= 90% of budget
	AlertTypeExceeded = "exceeded" // >= 100% of budget
)

// BudgetAlert represents the budget_alerts table. The evaluator creates at
// most one alert per (project, alert_type); alerts are a notification log
// and are never downgraded or removed when spend decreases.
type BudgetAlert struct {
	AlertID    uint            `gorm:"primaryKey;column:alert_id" json:"alert_id"`
	ProjectID  uint            `gorm:"column:project_id;index" json:"project_id"`
	AlertType  string          `gorm:"column:alert_type;size:20" json:"alert_type"`
	Percentage decimal.Decimal `gorm:"column:percentage;type:decimal(6,1)" json:"percentage"`
	Message    string          `gorm:"column:message;size:500" json:"message"`
	IsRead     bool            `gorm:"column:is_read;default:false" json:"is_read"`
	EmailSent  bool            `gorm:"column:email_sent;default:false" json:"email_sent"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`

	Project Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
}

// TableName overrides the table name for BudgetAlert
func (BudgetAlert) TableName() string {
	return "budget_alerts"
}
