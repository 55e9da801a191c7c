package production

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	"brickyard.GO/core/metrics"
	catalogEntity "brickyard.GO/model/entity/catalog"
	productionEntity "brickyard.GO/model/entity/production"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
	productionRepo "brickyard.GO/model/repository/production"
)

// ConsumptionService records production runs. The operator-entered actuals are
// what gets debited from stock; the catalog's per-round constants are only the
// capacity calculator's forward projection.
type ConsumptionService struct {
	db        *gorm.DB
	entries   *productionRepo.ProductionRepository
	stock     *inventoryRepo.StockRepository
	finished  *inventoryRepo.FinishedGoodsRepository
	materials *catalogRepo.MaterialRepository
}

func NewConsumptionService(db *gorm.DB) *ConsumptionService {
	return &ConsumptionService{
		db:        db,
		entries:   productionRepo.NewProductionRepository(db),
		stock:     inventoryRepo.NewStockRepository(db),
		finished:  inventoryRepo.NewFinishedGoodsRepository(db),
		materials: catalogRepo.NewMaterialRepository(db),
	}
}

// RecordInput is one production run as entered by the operator.
type RecordInput struct {
	Date      time.Time
	Rounds    int
	Bricks    int
	CreatedBy string
	// Consumption maps material kind to kg consumed in this run.
	Consumption map[catalogEntity.Kind]float64
}

// Record persists the entry, debits every consumed material and credits
// finished goods in a single transaction. A failed debit (unknown material,
// insufficient stock) aborts the whole batch; the caller resubmits in full.
func (s *ConsumptionService) Record(in RecordInput) (*productionEntity.ProductionEntry, error) {
	entry, err := s.record(in)
	metrics.ProductionEntries.WithLabelValues(metrics.Status(err)).Inc()
	return entry, err
}

func (s *ConsumptionService) record(in RecordInput) (*productionEntity.ProductionEntry, error) {
	if in.Rounds <= 0 {
		return nil, apperr.Validation("rounds", "must be > 0")
	}
	if in.Bricks <= 0 {
		return nil, apperr.Validation("bricks", "must be > 0")
	}
	for kind, kg := range in.Consumption {
		if kg < 0 {
			return nil, apperr.Validation(string(kind), "consumption must be >= 0")
		}
	}

	materials, err := s.materials.List()
	if err != nil {
		return nil, err
	}
	idByKind := make(map[catalogEntity.Kind]uint, len(materials))
	for _, m := range materials {
		idByKind[m.Kind] = m.MaterialID
	}
	for kind := range in.Consumption {
		if _, ok := idByKind[kind]; !ok {
			return nil, apperr.Validation(string(kind), "unknown material")
		}
	}

	entry := &productionEntity.ProductionEntry{
		ProducedOn: datatypes.Date(in.Date),
		Rounds:     in.Rounds,
		Bricks:     in.Bricks,
		CreatedBy:  in.CreatedBy,
	}
	// Debit in catalog order so retries hit the same bottleneck first.
	for _, m := range materials {
		kg := in.Consumption[m.Kind]
		if kg > 0 {
			entry.Consumptions = append(entry.Consumptions, productionEntity.Consumption{
				MaterialID: m.MaterialID,
				QuantityKg: kg,
			})
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entries.WithTx(tx).Create(entry); err != nil {
			return err
		}
		stock := s.stock.WithTx(tx)
		for _, c := range entry.Consumptions {
			if err := stock.Debit(c.MaterialID, c.QuantityKg); err != nil {
				return err
			}
		}
		return s.finished.WithTx(tx).Credit(float64(in.Bricks))
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByDateRange exposes production history for reporting.
func (s *ConsumptionService) ListByDateRange(from, to time.Time) ([]productionEntity.ProductionEntry, error) {
	return s.entries.ListByDateRange(from, to)
}
