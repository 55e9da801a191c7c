package adjustment

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	adjustmentEntity "brickyard.GO/model/entity/adjustment"
)

type AdjustmentRepository struct {
	db *gorm.DB
}

func NewAdjustmentRepository(db *gorm.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db: db}
}

func (r *AdjustmentRepository) WithTx(tx *gorm.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db: tx}
}

// Create persists an adjustment with its lines. Adjustments are append-only;
// there is no update or delete path.
func (r *AdjustmentRepository) Create(a *adjustmentEntity.Adjustment) error {
	return r.db.Create(a).Error
}

// FindByID returns one adjustment with lines.
func (r *AdjustmentRepository) FindByID(id uint) (*adjustmentEntity.Adjustment, error) {
	var a adjustmentEntity.Adjustment
	err := r.db.Preload("Lines").Where("adjustment_id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("adjustment %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByDateRange returns adjustments with adjusted_on in [from, to] inclusive.
func (r *AdjustmentRepository) ListByDateRange(from, to time.Time) ([]adjustmentEntity.Adjustment, error) {
	var out []adjustmentEntity.Adjustment
	err := r.db.Preload("Lines").
		Where("adjusted_on BETWEEN ? AND ?", from, to).
		Order("adjusted_on, adjustment_id").Find(&out).Error
	return out, err
}
