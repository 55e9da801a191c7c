package report

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"brickyard.GO/core/apperr"
	adjustmentEntity "brickyard.GO/model/entity/adjustment"
	catalogEntity "brickyard.GO/model/entity/catalog"
	procurementEntity "brickyard.GO/model/entity/procurement"
	productionEntity "brickyard.GO/model/entity/production"
	adjustmentRepo "brickyard.GO/model/repository/adjustment"
	catalogRepo "brickyard.GO/model/repository/catalog"
	procurementRepo "brickyard.GO/model/repository/procurement"
	productionRepo "brickyard.GO/model/repository/production"
)

// Range names accepted by the report endpoints.
const (
	RangeCurrentMonth = "current_month"
	RangeLastMonth    = "last_month"
	RangeLastYear     = "last_year"
	RangeCustom       = "custom"
)

// ResolveRange turns a named range into a closed [from, to] date interval.
// Custom ranges use the supplied bounds; both are inclusive calendar dates.
func ResolveRange(now time.Time, name string, from, to time.Time) (time.Time, time.Time, error) {
	switch name {
	case RangeCurrentMonth, "":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, -1), nil
	case RangeLastMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		return start, start.AddDate(0, 1, -1), nil
	case RangeLastYear:
		start := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location())
		return start, time.Date(now.Year()-1, time.December, 31, 0, 0, 0, 0, now.Location()), nil
	case RangeCustom:
		if from.IsZero() || to.IsZero() {
			return time.Time{}, time.Time{}, apperr.Validation("range", "custom range needs from and to")
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, apperr.Validation("range", "to before from")
		}
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, apperr.Validation("range", "unknown range "+name)
	}
}

// CategoryTotal is one pie-chart slice: approved procurement spend per material.
type CategoryTotal struct {
	Kind  catalogEntity.Kind `json:"kind"`
	Name  string             `json:"name"`
	Total decimal.Decimal    `json:"total"`
}

// Summary aggregates one date interval for the dashboard.
type Summary struct {
	From              time.Time       `json:"from"`
	To                time.Time       `json:"to"`
	ProcurementCount  int             `json:"procurement_count"`
	ProcurementSpend  decimal.Decimal `json:"procurement_spend"`
	ProductionRounds  int             `json:"production_rounds"`
	ProductionBricks  int             `json:"production_bricks"`
	AdjustmentCount   int             `json:"adjustment_count"`
	SpendByMaterial   []CategoryTotal `json:"spend_by_material"`
}

// Service serves the thin reporting views: date-range filtering and grouping
// over procurement, production and adjustment history.
type Service struct {
	procurements *procurementRepo.ProcurementRepository
	productions  *productionRepo.ProductionRepository
	adjustments  *adjustmentRepo.AdjustmentRepository
	materials    *catalogRepo.MaterialRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		procurements: procurementRepo.NewProcurementRepository(db),
		productions:  productionRepo.NewProductionRepository(db),
		adjustments:  adjustmentRepo.NewAdjustmentRepository(db),
		materials:    catalogRepo.NewMaterialRepository(db),
	}
}

// Procurements lists procurement history within [from, to].
func (s *Service) Procurements(from, to time.Time, approvedOnly bool) ([]procurementEntity.Procurement, error) {
	return s.procurements.ListByDateRange(from, to, approvedOnly)
}

// Productions lists production history within [from, to].
func (s *Service) Productions(from, to time.Time) ([]productionEntity.ProductionEntry, error) {
	return s.productions.ListByDateRange(from, to)
}

// Adjustments lists adjustment history within [from, to].
func (s *Service) Adjustments(from, to time.Time) ([]adjustmentEntity.Adjustment, error) {
	return s.adjustments.ListByDateRange(from, to)
}

// Summarize aggregates the interval into dashboard totals and the per-material
// spend grouping.
func (s *Service) Summarize(from, to time.Time) (*Summary, error) {
	sum := &Summary{
		From:             from,
		To:               to,
		ProcurementSpend: decimal.Zero,
	}

	materials, err := s.materials.List()
	if err != nil {
		return nil, err
	}
	spend := make(map[uint]decimal.Decimal, len(materials))

	procs, err := s.procurements.ListByDateRange(from, to, false)
	if err != nil {
		return nil, err
	}
	sum.ProcurementCount = len(procs)
	for _, p := range procs {
		if !p.Approved || !p.TotalPrice.Valid {
			continue
		}
		sum.ProcurementSpend = sum.ProcurementSpend.Add(p.TotalPrice.Decimal)
		spend[p.MaterialID] = spend[p.MaterialID].Add(p.TotalPrice.Decimal)
	}
	for _, m := range materials {
		sum.SpendByMaterial = append(sum.SpendByMaterial, CategoryTotal{
			Kind:  m.Kind,
			Name:  m.Name,
			Total: spend[m.MaterialID],
		})
	}

	prods, err := s.productions.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	for _, p := range prods {
		sum.ProductionRounds += p.Rounds
		sum.ProductionBricks += p.Bricks
	}

	adjs, err := s.adjustments.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	sum.AdjustmentCount = len(adjs)

	return sum, nil
}
