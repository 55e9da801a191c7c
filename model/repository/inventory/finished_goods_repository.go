package inventory

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	inventoryEntity "brickyard.GO/model/entity/inventory"
)

// FinishedGoodsRepository manages the single finished-goods row with the same
// version discipline as the raw-material ledger.
type FinishedGoodsRepository struct {
	db *gorm.DB
}

func NewFinishedGoodsRepository(db *gorm.DB) *FinishedGoodsRepository {
	return &FinishedGoodsRepository{db: db}
}

func (r *FinishedGoodsRepository) WithTx(tx *gorm.DB) *FinishedGoodsRepository {
	return &FinishedGoodsRepository{db: tx}
}

// Get returns the finished-goods row, creating it at zero if missing.
func (r *FinishedGoodsRepository) Get() (*inventoryEntity.FinishedGoods, error) {
	var fg inventoryEntity.FinishedGoods
	err := r.db.Where("id = ?", inventoryEntity.FinishedGoodsID).First(&fg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fg = inventoryEntity.FinishedGoods{ID: inventoryEntity.FinishedGoodsID}
		if err := r.db.Create(&fg).Error; err != nil {
			return nil, err
		}
		return &fg, nil
	}
	if err != nil {
		return nil, err
	}
	return &fg, nil
}

// Credit adds produced bricks.
func (r *FinishedGoodsRepository) Credit(bricks float64) error {
	if bricks <= 0 {
		return apperr.Validation("bricks", "must be > 0")
	}
	if _, err := r.Get(); err != nil {
		return err
	}
	return r.db.Model(&inventoryEntity.FinishedGoods{}).
		Where("id = ?", inventoryEntity.FinishedGoodsID).
		Updates(map[string]interface{}{
			"bricks":     gorm.Expr("bricks + ?", bricks),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		}).Error
}

// Set overwrites the brick count, compare-and-swap on version like StockRepository.Set.
func (r *FinishedGoodsRepository) Set(bricks float64, expectedVersion uint64) error {
	if bricks < 0 {
		return apperr.Validation("bricks", "must be >= 0")
	}
	res := r.db.Model(&inventoryEntity.FinishedGoods{}).
		Where("id = ? AND version = ?", inventoryEntity.FinishedGoodsID, expectedVersion).
		Updates(map[string]interface{}{
			"bricks":     bricks,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("finished goods changed since snapshot: %w", apperr.ErrConflict)
	}
	return nil
}
