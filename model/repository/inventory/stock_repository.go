package inventory

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brickyard.GO/core/apperr"
	inventoryEntity "brickyard.GO/model/entity/inventory"
)

// StockRepository is the stock ledger: the single authoritative mutable state
// for raw-material and finished-goods quantities. Every mutation bumps the row
// version; Set is compare-and-swap so a stale snapshot cannot overwrite a
// concurrent credit or debit.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StockRepository) WithTx(tx *gorm.DB) *StockRepository {
	return &StockRepository{db: tx}
}

// List returns all stock entries ordered by material id.
func (r *StockRepository) List() ([]inventoryEntity.StockEntry, error) {
	var entries []inventoryEntity.StockEntry
	err := r.db.Order("material_id").Find(&entries).Error
	return entries, err
}

// GetByMaterial returns the stock entry for a material.
func (r *StockRepository) GetByMaterial(materialID uint) (*inventoryEntity.StockEntry, error) {
	var entry inventoryEntity.StockEntry
	err := r.db.Where("material_id = ?", materialID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("stock entry for material %d: %w", materialID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Credit increases a material's stock. Amount must be positive.
func (r *StockRepository) Credit(materialID uint, amount float64) error {
	if amount <= 0 {
		return apperr.Validation("amount", "must be > 0")
	}
	res := r.db.Model(&inventoryEntity.StockEntry{}).
		Where("material_id = ?", materialID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", amount),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("stock entry for material %d: %w", materialID, apperr.ErrNotFound)
	}
	return nil
}

// Debit decreases a material's stock. A debit beyond the current balance is
// rejected with InsufficientStockError; stock never goes negative. The
// quantity guard in the WHERE clause keeps the check-and-write atomic.
func (r *StockRepository) Debit(materialID uint, amount float64) error {
	if amount <= 0 {
		return apperr.Validation("amount", "must be > 0")
	}
	res := r.db.Model(&inventoryEntity.StockEntry{}).
		Where("material_id = ? AND quantity >= ?", materialID, amount).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", amount),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		entry, err := r.GetByMaterial(materialID)
		if err != nil {
			return err
		}
		return &apperr.InsufficientStockError{
			Material:  r.materialKind(materialID),
			Requested: amount,
			Available: entry.Quantity,
		}
	}
	return nil
}

// Set overwrites a material's stock with a corrected value. expectedVersion is
// the version read when the caller snapshotted the ledger; a mismatch means a
// concurrent mutation landed in between and the caller must re-snapshot.
func (r *StockRepository) Set(materialID uint, quantity float64, expectedVersion uint64) error {
	if quantity < 0 {
		return apperr.Validation("quantity", "must be >= 0")
	}
	res := r.db.Model(&inventoryEntity.StockEntry{}).
		Where("material_id = ? AND version = ?", materialID, expectedVersion).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByMaterial(materialID); err != nil {
			return err
		}
		return fmt.Errorf("stock entry for material %d changed since snapshot: %w", materialID, apperr.ErrConflict)
	}
	return nil
}

// UpsertOpening writes an opening balance for a material, creating the ledger
// row if missing. Used only by the bulk import bootstrap path.
func (r *StockRepository) UpsertOpening(materialID uint, quantity float64) error {
	if quantity < 0 {
		return apperr.Validation("quantity", "must be >= 0")
	}
	entry := inventoryEntity.StockEntry{MaterialID: materialID, Quantity: quantity}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "material_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   quantity,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&entry).Error
}

func (r *StockRepository) materialKind(materialID uint) string {
	var kind string
	if err := r.db.Table("material").Select("kind").
		Where("material_id = ?", materialID).Scan(&kind).Error; err != nil || kind == "" {
		return fmt.Sprintf("material %d", materialID)
	}
	return kind
}
