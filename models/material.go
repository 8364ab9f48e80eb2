package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialCategory represents the material_categories reference table.
// Deleting a category is restricted while material entries reference it.
type MaterialCategory struct {
	CategoryID uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	Key        string    `gorm:"column:category_key;size:50;uniqueIndex" json:"key"`
	Name       string    `gorm:"column:name;size:100" json:"name"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for MaterialCategory
func (MaterialCategory) TableName() string {
	return "material_categories"
}

// MaterialUnit represents the material_units reference table
type MaterialUnit struct {
	UnitID       uint      `gorm:"primaryKey;column:unit_id" json:"unit_id"`
	Name         string    `gorm:"column:name;size:50;uniqueIndex" json:"name"`
	Abbreviation string    `gorm:"column:abbreviation;size:10" json:"abbreviation"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for MaterialUnit
func (MaterialUnit) TableName() string {
	return "material_units"
}

// MaterialCatalog represents the material_catalog table of reusable
// material definitions loaded through the bulk importer.
type MaterialCatalog struct {
	CatalogID   uint            `gorm:"primaryKey;column:catalog_id" json:"catalog_id"`
	CategoryID  uint            `gorm:"column:category_id;index" json:"category_id"`
	Description string          `gorm:"column:description;size:300" json:"description"`
	UnitID      *uint           `gorm:"column:unit_id" json:"unit_id,omitempty"`
	DefaultCost decimal.Decimal `gorm:"column:default_cost;type:decimal(10,2)" json:"default_cost"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`

	Category MaterialCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	Unit     *MaterialUnit    `gorm:"foreignKey:UnitID;references:UnitID" json:"unit,omitempty"`
}

// TableName overrides the table name for MaterialCatalog
func (MaterialCatalog) TableName() string {
	return "material_catalog"
}

// MaterialEntry represents the material_entries table
type MaterialEntry struct {
	MaterialID   uint            `gorm:"primaryKey;column:material_id" json:"material_id"`
	ProjectID    uint            `gorm:"column:project_id;index" json:"project_id"`
	CategoryID   uint            `gorm:"column:category_id;index" json:"category_id"`
	Description  string          `gorm:"column:description;size:300" json:"description"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:decimal(10,2)" json:"quantity"`
	QuantityUsed decimal.Decimal `gorm:"column:quantity_used;type:decimal(10,2);default:0" json:"quantity_used"`
	UnitID       uint            `gorm:"column:unit_id" json:"unit_id"`
	Cost         decimal.Decimal `gorm:"column:cost;type:decimal(10,2)" json:"cost"`
	PurchaseDate time.Time       `gorm:"column:purchase_date" json:"purchase_date"`
	Supplier     string          `gorm:"column:supplier;size:200" json:"supplier"`
	Notes        string          `gorm:"column:notes;type:text" json:"notes"`
	HasReceipt   bool            `gorm:"column:has_receipt;default:false" json:"has_receipt"`
	CreatedBy    uint            `gorm:"column:created_by" json:"created_by"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Category MaterialCategory `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	Unit     MaterialUnit     `gorm:"foreignKey:UnitID;references:UnitID" json:"unit,omitempty"`
	Receipts []Receipt        `gorm:"foreignKey:MaterialID;references:MaterialID;constraint:OnDelete:CASCADE" json:"receipts,omitempty"`
}

// TableName overrides the table name for MaterialEntry
func (MaterialEntry) TableName() string {
	return "material_entries"
}

// UnitCost returns cost per unit, zero when quantity is zero.
func (m *MaterialEntry) UnitCost() decimal.Decimal {
	if m.Quantity.IsZero() {
		return decimal.Zero
	}
	return m.Cost.DivRound(m.Quantity, 2)
}

// QuantityRemaining returns quantity minus quantity used.
func (m *MaterialEntry) QuantityRemaining() decimal.Decimal {
	return m.Quantity.Sub(m.QuantityUsed)
}

// UsagePercentage returns how much of the quantity has been consumed.
func (m *MaterialEntry) UsagePercentage() decimal.Decimal {
	if m.Quantity.IsZero() {
		return decimal.Zero
	}
	return m.QuantityUsed.Div(m.Quantity).Mul(decimal.NewFromInt(100)).Round(1)
}

// IsDepleted reports whether the material is fully used up.
func (m *MaterialEntry) IsDepleted() bool {
	return m.QuantityRemaining().IsZero()
}
