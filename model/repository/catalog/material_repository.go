package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	catalogEntity "brickyard.GO/model/entity/catalog"
	inventoryEntity "brickyard.GO/model/entity/inventory"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// List returns all materials in declaration order (sort_order). This order is
// load-bearing: the capacity calculator breaks limiting-material ties with it.
func (r *MaterialRepository) List() ([]catalogEntity.Material, error) {
	var materials []catalogEntity.Material
	err := r.db.Order("sort_order, material_id").Find(&materials).Error
	return materials, err
}

// GetByID returns one material.
func (r *MaterialRepository) GetByID(id uint) (*catalogEntity.Material, error) {
	var m catalogEntity.Material
	err := r.db.Where("material_id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("material %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByKind returns one material by its typed kind key.
func (r *MaterialRepository) GetByKind(kind catalogEntity.Kind) (*catalogEntity.Material, error) {
	var m catalogEntity.Material
	err := r.db.Where("kind = ?", kind).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("material %q: %w", kind, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Seed inserts the default catalog plus zero stock rows and the finished-goods
// row. Idempotent: existing rows are left untouched.
func (r *MaterialRepository) Seed() error {
	for _, def := range catalogEntity.DefaultCatalog {
		var m catalogEntity.Material
		err := r.db.Where("kind = ?", def.Kind).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = def
			if err := r.db.Create(&m).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var entry inventoryEntity.StockEntry
		err = r.db.Where("material_id = ?", m.MaterialID).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&inventoryEntity.StockEntry{MaterialID: m.MaterialID}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	var fg inventoryEntity.FinishedGoods
	err := r.db.Where("id = ?", inventoryEntity.FinishedGoodsID).First(&fg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&inventoryEntity.FinishedGoods{ID: inventoryEntity.FinishedGoodsID}).Error
	}
	return err
}
