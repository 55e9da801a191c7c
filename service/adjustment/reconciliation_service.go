package adjustment

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	"brickyard.GO/core/metrics"
	adjustmentEntity "brickyard.GO/model/entity/adjustment"
	catalogEntity "brickyard.GO/model/entity/catalog"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
	adjustmentRepo "brickyard.GO/model/repository/adjustment"
)

// ReconciliationService turns an operator-entered stock count into an
// immutable audit record and overwrites the ledger with the counted values.
// The snapshot's row versions guard the overwrite: if any tracked quantity
// mutated between snapshot and commit the whole submission fails with
// ErrConflict and must be re-entered against the fresh ledger.
type ReconciliationService struct {
	db          *gorm.DB
	adjustments *adjustmentRepo.AdjustmentRepository
	stock       *inventoryRepo.StockRepository
	finished    *inventoryRepo.FinishedGoodsRepository
	materials   *catalogRepo.MaterialRepository
}

func NewReconciliationService(db *gorm.DB) *ReconciliationService {
	return &ReconciliationService{
		db:          db,
		adjustments: adjustmentRepo.NewAdjustmentRepository(db),
		stock:       inventoryRepo.NewStockRepository(db),
		finished:    inventoryRepo.NewFinishedGoodsRepository(db),
		materials:   catalogRepo.NewMaterialRepository(db),
	}
}

// SubmitInput carries one full stock count: a corrected value for bricks and
// for every raw material, keyed by material kind or catalog.KeyBricks.
type SubmitInput struct {
	Date      time.Time
	Reason    string
	CreatedBy string
	Adjusted  map[string]float64
}

// Submit snapshots the ledger, persists the (actual, adjusted) audit record
// and overwrites every tracked quantity, all in one transaction.
func (s *ReconciliationService) Submit(in SubmitInput) (*adjustmentEntity.Adjustment, error) {
	adj, err := s.submit(in)
	metrics.Adjustments.WithLabelValues(metrics.Status(err)).Inc()
	return adj, err
}

func (s *ReconciliationService) submit(in SubmitInput) (*adjustmentEntity.Adjustment, error) {
	materials, err := s.materials.List()
	if err != nil {
		return nil, err
	}

	// The schema is fixed: every tracked quantity needs a counted value, and
	// nothing outside the tracked set is accepted.
	tracked := map[string]bool{catalogEntity.KeyBricks: true}
	for _, m := range materials {
		tracked[string(m.Kind)] = true
	}
	for key, v := range in.Adjusted {
		if !tracked[key] {
			return nil, apperr.Validation(key, "unknown tracked quantity")
		}
		if v < 0 {
			return nil, apperr.Validation(key, "must be >= 0")
		}
	}
	for key := range tracked {
		if _, ok := in.Adjusted[key]; !ok {
			return nil, apperr.Validation(key, "adjusted value required")
		}
	}

	adj := &adjustmentEntity.Adjustment{
		AdjustedOn: datatypes.Date(in.Date),
		Reason:     in.Reason,
		CreatedBy:  in.CreatedBy,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		stock := s.stock.WithTx(tx)
		finished := s.finished.WithTx(tx)

		// Snapshot ledger values and versions for all tracked quantities.
		fg, err := finished.Get()
		if err != nil {
			return err
		}
		adj.Lines = []adjustmentEntity.Line{{
			TrackedKey:  catalogEntity.KeyBricks,
			ActualQty:   fg.Bricks,
			AdjustedQty: in.Adjusted[catalogEntity.KeyBricks],
		}}

		type snapshot struct {
			materialID uint
			version    uint64
			adjusted   float64
		}
		snaps := make([]snapshot, 0, len(materials))
		for _, m := range materials {
			entry, err := stock.GetByMaterial(m.MaterialID)
			if err != nil {
				return err
			}
			adjusted := in.Adjusted[string(m.Kind)]
			adj.Lines = append(adj.Lines, adjustmentEntity.Line{
				TrackedKey:  string(m.Kind),
				ActualQty:   entry.Quantity,
				AdjustedQty: adjusted,
			})
			snaps = append(snaps, snapshot{m.MaterialID, entry.Version, adjusted})
		}

		if err := s.adjustments.WithTx(tx).Create(adj); err != nil {
			return err
		}

		// Overwrite against the snapshotted versions. Any concurrent mutation
		// since the snapshot fails the CAS and rolls back the whole adjustment.
		if err := finished.Set(in.Adjusted[catalogEntity.KeyBricks], fg.Version); err != nil {
			return err
		}
		for _, sn := range snaps {
			if err := stock.Set(sn.materialID, sn.adjusted, sn.version); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// ListByDateRange exposes adjustment history for reporting.
func (s *ReconciliationService) ListByDateRange(from, to time.Time) ([]adjustmentEntity.Adjustment, error) {
	return s.adjustments.ListByDateRange(from, to)
}
