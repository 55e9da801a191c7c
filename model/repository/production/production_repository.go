package production

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	productionEntity "brickyard.GO/model/entity/production"
)

type ProductionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

func (r *ProductionRepository) WithTx(tx *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: tx}
}

// Create persists a production entry with its consumption lines.
func (r *ProductionRepository) Create(e *productionEntity.ProductionEntry) error {
	return r.db.Create(e).Error
}

// FindByID returns one entry with consumption lines.
func (r *ProductionRepository) FindByID(id uint) (*productionEntity.ProductionEntry, error) {
	var e productionEntity.ProductionEntry
	err := r.db.Preload("Consumptions").Where("entry_id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("production entry %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByDateRange returns entries with produced_on in [from, to] inclusive.
func (r *ProductionRepository) ListByDateRange(from, to time.Time) ([]productionEntity.ProductionEntry, error) {
	var out []productionEntity.ProductionEntry
	err := r.db.Preload("Consumptions").
		Where("produced_on BETWEEN ? AND ?", from, to).
		Order("produced_on, entry_id").Find(&out).Error
	return out, err
}
