package procurement

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	procurementEntity "brickyard.GO/model/entity/procurement"
)

type ProcurementRepository struct {
	db *gorm.DB
}

func NewProcurementRepository(db *gorm.DB) *ProcurementRepository {
	return &ProcurementRepository{db: db}
}

func (r *ProcurementRepository) WithTx(tx *gorm.DB) *ProcurementRepository {
	return &ProcurementRepository{db: tx}
}

// Create persists a new unapproved procurement. Rate and total stay null until
// approval.
func (r *ProcurementRepository) Create(p *procurementEntity.Procurement) error {
	p.Approved = false
	p.RatePerUnit = decimal.NullDecimal{}
	p.TotalPrice = decimal.NullDecimal{}
	return r.db.Create(p).Error
}

// FindByID returns one procurement.
func (r *ProcurementRepository) FindByID(id uint) (*procurementEntity.Procurement, error) {
	var p procurementEntity.Procurement
	err := r.db.Where("procurement_id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("procurement %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Approve marks a procurement approved with its price, guarded on
// approved = false so a second approval never matches. Returns
// ErrAlreadyApproved when the row exists but was approved before.
func (r *ProcurementRepository) Approve(id uint, rate, total decimal.Decimal, at time.Time) error {
	res := r.db.Model(&procurementEntity.Procurement{}).
		Where("procurement_id = ? AND approved = ?", id, false).
		Updates(map[string]interface{}{
			"approved":      true,
			"rate_per_unit": rate,
			"total_price":   total,
			"approved_at":   at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(id); err != nil {
			return err
		}
		return fmt.Errorf("procurement %d: %w", id, apperr.ErrAlreadyApproved)
	}
	return nil
}

// ListUnapproved returns the pending-approval queue, oldest first.
func (r *ProcurementRepository) ListUnapproved() ([]procurementEntity.Procurement, error) {
	var out []procurementEntity.Procurement
	err := r.db.Where("approved = ?", false).Order("procured_on, procurement_id").Find(&out).Error
	return out, err
}

// ListPage returns one page of procurement history, newest first, with the
// total row count for the filter.
func (r *ProcurementRepository) ListPage(pageSize, currentPage int, approved *bool) ([]procurementEntity.Procurement, int64, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if currentPage <= 0 {
		currentPage = 1
	}
	q := r.db.Model(&procurementEntity.Procurement{})
	if approved != nil {
		q = q.Where("approved = ?", *approved)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []procurementEntity.Procurement
	err := q.Order("procured_on DESC, procurement_id DESC").
		Limit(pageSize).Offset((currentPage - 1) * pageSize).
		Find(&out).Error
	return out, total, err
}

// ListByDateRange returns procurements with procured_on in [from, to] inclusive.
func (r *ProcurementRepository) ListByDateRange(from, to time.Time, approvedOnly bool) ([]procurementEntity.Procurement, error) {
	q := r.db.Where("procured_on BETWEEN ? AND ?", from, to)
	if approvedOnly {
		q = q.Where("approved = ?", true)
	}
	var out []procurementEntity.Procurement
	err := q.Order("procured_on, procurement_id").Find(&out).Error
	return out, err
}
