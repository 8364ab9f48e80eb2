package services

import (
	"fmt"
	"log"
	"os"

	"construction-tracker-api/models"

	"gorm.io/gorm"
)

// receiptOrdering is the default receipt ordering: primary first, then most
// recent. Promotion after deleting the primary picks the head of this order.
const receiptOrdering = "is_primary DESC, uploaded_at DESC, receipt_id DESC"

// ReceiptService maintains the receipt-primacy invariant: at most one
// receipt per material is primary, and the material's has_receipt flag
// always matches whether any receipts remain. Every operation runs its
// sibling updates inside one transaction so the invariant cannot be
// observed half-applied.
type ReceiptService struct {
	db *gorm.DB
}

func NewReceiptService(db *gorm.DB) *ReceiptService {
	return &ReceiptService{db: db}
}

// Attach stores a new receipt row for a material. The first receipt of a
// material is always primary, whatever was requested; a later receipt
// requested as primary demotes all its siblings first.
func (s *ReceiptService) Attach(receipt *models.Receipt, requestPrimary bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var material models.MaterialEntry
		if err := tx.First(&material, receipt.MaterialID).Error; err != nil {
			return fmt.Errorf("loading material %d: %w", receipt.MaterialID, err)
		}

		var existing int64
		if err := tx.Model(&models.Receipt{}).
			Where("material_id = ?", receipt.MaterialID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("counting receipts: %w", err)
		}

		if existing == 0 {
			receipt.IsPrimary = true
		} else if requestPrimary {
			err := tx.Model(&models.Receipt{}).
				Where("material_id = ?", receipt.MaterialID).
				Update("is_primary", false).Error
			if err != nil {
				return fmt.Errorf("demoting sibling receipts: %w", err)
			}
			receipt.IsPrimary = true
		}

		if err := tx.Create(receipt).Error; err != nil {
			return fmt.Errorf("creating receipt: %w", err)
		}

		return tx.Model(&models.MaterialEntry{}).
			Where("material_id = ?", receipt.MaterialID).
			Update("has_receipt", true).Error
	})
}

// SetPrimary makes the given receipt the primary one for its material,
// demoting every sibling.
func (s *ReceiptService) SetPrimary(receiptID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var receipt models.Receipt
		if err := tx.First(&receipt, receiptID).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Receipt{}).
			Where("material_id = ?", receipt.MaterialID).
			Update("is_primary", false).Error
		if err != nil {
			return fmt.Errorf("demoting sibling receipts: %w", err)
		}

		return tx.Model(&models.Receipt{}).
			Where("receipt_id = ?", receiptID).
			Update("is_primary", true).Error
	})
}

// Delete removes a receipt. Deleting the primary promotes the first
// remaining receipt (by the default ordering) so a material with receipts
// always has exactly one primary. The stored file is removed best-effort
// after the row is gone; a leftover blob never blocks the delete.
func (s *ReceiptService) Delete(receiptID uint) error {
	var storedPath string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var receipt models.Receipt
		if err := tx.First(&receipt, receiptID).Error; err != nil {
			return err
		}
		storedPath = receipt.StoredPath

		if err := tx.Delete(&models.Receipt{}, receiptID).Error; err != nil {
			return fmt.Errorf("deleting receipt: %w", err)
		}

		var remaining int64
		if err := tx.Model(&models.Receipt{}).
			Where("material_id = ?", receipt.MaterialID).
			Count(&remaining).Error; err != nil {
			return fmt.Errorf("counting remaining receipts: %w", err)
		}

		if receipt.IsPrimary && remaining > 0 {
			var next models.Receipt
			err := tx.Where("material_id = ?", receipt.MaterialID).
				Order(receiptOrdering).
				First(&next).Error
			if err != nil {
				return fmt.Errorf("selecting replacement primary: %w", err)
			}
			err = tx.Model(&models.Receipt{}).
				Where("receipt_id = ?", next.ReceiptID).
				Update("is_primary", true).Error
			if err != nil {
				return fmt.Errorf("promoting replacement primary: %w", err)
			}
		}

		return tx.Model(&models.MaterialEntry{}).
			Where("material_id = ?", receipt.MaterialID).
			Update("has_receipt", remaining > 0).Error
	})
	if err != nil {
		return err
	}

	if storedPath != "" {
		if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove receipt file %s: %v", storedPath, err)
		}
	}
	return nil
}

// ListForMaterial returns a material's receipts in the default ordering.
func (s *ReceiptService) ListForMaterial(materialID uint) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := s.db.Where("material_id = ?", materialID).
		Order(receiptOrdering).
		Find(&receipts).Error
	return receipts, err
}
