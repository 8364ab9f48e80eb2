package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborCategory represents the labor_categories reference table
// (roles such as mason or carpenter). Deleting a category is restricted
// while labor entries reference it.
type LaborCategory struct {
	CategoryID uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	Key        string    `gorm:"column:category_key;size:50;uniqueIndex" json:"key"`
	Name       string    `gorm:"column:name;size:100" json:"name"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for LaborCategory
func (LaborCategory) TableName() string {
	return "labor_categories"
}

// LaborEntry represents the labor_entries table. The composite unique
// index allows at most one entry per role per day per project; correctness
// under concurrent writers depends on this constraint, not on the
// read-then-write check in the handler.
type LaborEntry struct {
	LaborID          uint            `gorm:"primaryKey;column:labor_id" json:"labor_id"`
	ProjectID        uint            `gorm:"column:project_id;index;uniqueIndex:idx_labor_project_category_date" json:"project_id"`
	CategoryID       uint            `gorm:"column:category_id;uniqueIndex:idx_labor_project_category_date" json:"category_id"`
	WorkDate         time.Time       `gorm:"column:work_date;uniqueIndex:idx_labor_project_category_date" json:"work_date"`
	NumberOfWorkers  int             `gorm:"column:number_of_workers" json:"number_of_workers"`
	RatePerWorkerDay decimal.Decimal `gorm:"column:rate_per_worker_per_day;type:decimal(10,2)" json:"rate_per_worker_per_day"`
	Notes            string          `gorm:"column:notes;type:text" json:"notes"`
	CreatedBy        uint            `gorm:"column:created_by" json:"created_by"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Category LaborCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
}

// TableName overrides the table name for LaborEntry
func (LaborEntry) TableName() string {
	return "labor_entries"
}

// TotalCost returns workers multiplied by the daily rate.
func (l *LaborEntry) TotalCost() decimal.Decimal {
	return l.RatePerWorkerDay.Mul(decimal.NewFromInt(int64(l.NumberOfWorkers)))
}
