package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Receipt represents the receipts table. A material can carry many
// receipts but at most one with is_primary set; the receipt service
// maintains that invariant on every write.
type Receipt struct {
	ReceiptID        uint      `gorm:"primaryKey;column:receipt_id" json:"receipt_id"`
	MaterialID       uint      `gorm:"column:material_id;index" json:"material_id"`
	StoredPath       string    `gorm:"column:stored_path;size:500" json:"-"`
	OriginalFilename string    `gorm:"column:original_filename;size:255" json:"original_filename"`
	FileSize         int64     `gorm:"column:file_size" json:"file_size"`
	MimeType         string    `gorm:"column:mime_type;size:100" json:"mime_type"`
	IsPrimary        bool      `gorm:"column:is_primary;default:false" json:"is_primary"`
	UploadedBy       uint      `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt       time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName overrides the table name for Receipt
func (Receipt) TableName() string {
	return "receipts"
}

// FileExtension returns the lower-cased extension of the original filename.
func (r *Receipt) FileExtension() string {
	return strings.ToLower(filepath.Ext(r.OriginalFilename))
}

// IsImage reports whether the receipt file is an image.
func (r *Receipt) IsImage() bool {
	switch r.FileExtension() {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// IsPDF reports whether the receipt file is a PDF document.
func (r *Receipt) IsPDF() bool {
	return r.FileExtension() == ".pdf"
}

// FileSizeMB returns the file size in megabytes.
func (r *Receipt) FileSizeMB() float64 {
	return float64(r.FileSize) / (1024 * 1024)
}
