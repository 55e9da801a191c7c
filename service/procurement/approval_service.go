package procurement

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	"brickyard.GO/core/metrics"
	procurementEntity "brickyard.GO/model/entity/procurement"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
	procurementRepo "brickyard.GO/model/repository/procurement"
)

// ApprovalService owns the procurement lifecycle: submission of unapproved
// purchases and the approval that prices them and credits the stock ledger.
type ApprovalService struct {
	db        *gorm.DB
	procs     *procurementRepo.ProcurementRepository
	stock     *inventoryRepo.StockRepository
	materials *catalogRepo.MaterialRepository
}

func NewApprovalService(db *gorm.DB) *ApprovalService {
	return &ApprovalService{
		db:        db,
		procs:     procurementRepo.NewProcurementRepository(db),
		stock:     inventoryRepo.NewStockRepository(db),
		materials: catalogRepo.NewMaterialRepository(db),
	}
}

// SubmitInput carries a new purchase request. Price is unknown at this point.
type SubmitInput struct {
	MaterialID uint
	VendorID   uint
	Quantity   float64
	Date       time.Time
	CreatedBy  string
}

// Submit creates an unapproved procurement.
func (s *ApprovalService) Submit(in SubmitInput) (*procurementEntity.Procurement, error) {
	if in.Quantity <= 0 {
		return nil, apperr.Validation("quantity", "must be > 0")
	}
	if in.VendorID == 0 {
		return nil, apperr.Validation("vendor_id", "required")
	}
	if _, err := s.materials.GetByID(in.MaterialID); err != nil {
		return nil, err
	}
	p := &procurementEntity.Procurement{
		MaterialID: in.MaterialID,
		VendorID:   in.VendorID,
		Quantity:   in.Quantity,
		ProcuredOn: datatypes.Date(in.Date),
		CreatedBy:  in.CreatedBy,
	}
	if err := s.procs.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Approve prices a pending procurement and credits stock, as one transaction.
// total = quantity * rate, rounded to currency precision. A second approval of
// the same id fails with ErrAlreadyApproved and stock is credited exactly once.
func (s *ApprovalService) Approve(id uint, ratePerUnit decimal.Decimal) (*procurementEntity.Procurement, error) {
	if ratePerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.Validation("rate_per_unit", "must be > 0")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		procs := s.procs.WithTx(tx)
		p, err := procs.FindByID(id)
		if err != nil {
			return err
		}
		if p.Approved {
			return apperr.ErrAlreadyApproved
		}
		total := ratePerUnit.Mul(decimal.NewFromFloat(p.Quantity)).Round(2)
		if err := procs.Approve(id, ratePerUnit.Round(2), total, time.Now()); err != nil {
			return err
		}
		return s.stock.WithTx(tx).Credit(p.MaterialID, p.Quantity)
	})
	metrics.ProcurementApprovals.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		return nil, err
	}
	return s.procs.FindByID(id)
}

// ListUnapproved returns the pending approval queue.
func (s *ApprovalService) ListUnapproved() ([]procurementEntity.Procurement, error) {
	return s.procs.ListUnapproved()
}
