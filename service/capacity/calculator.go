package capacity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogEntity "brickyard.GO/model/entity/catalog"
	catalogRepo "brickyard.GO/model/repository/catalog"
	inventoryRepo "brickyard.GO/model/repository/inventory"
)

// Fixed production constants of the plant: one round consumes the catalog's
// per-material kg and yields 175 bricks.
const BricksPerRound = 175

var (
	CostPerRound = decimal.NewFromInt(640)                // ₹ per round
	CostPerBrick = decimal.New(365, -2)                   // ₹3.65 per brick
)

// MaterialRounds is the per-material breakdown in a capacity report.
type MaterialRounds struct {
	Kind       catalogEntity.Kind `json:"kind"`
	Name       string             `json:"name"`
	StockKg    float64            `json:"stock_kg"`
	PerRoundKg float64            `json:"per_round_kg"`
	Rounds     int64              `json:"rounds"`
}

// Report is the read model consumed by dashboards. Stateless, safe to
// recompute on every read.
type Report struct {
	MaxRounds           int64              `json:"max_rounds"`
	LimitingMaterial    catalogEntity.Kind `json:"limiting_material"`
	Materials           []MaterialRounds   `json:"materials"`
	TotalBricks         int64              `json:"total_bricks"`
	TotalRoundCost      decimal.Decimal    `json:"total_round_cost"`
	TotalProductionCost decimal.Decimal    `json:"total_production_cost"`
	ComputedAt          time.Time          `json:"computed_at"`
}

// Compute derives producible rounds from current stock. Pure function:
// floor(stock/perRound) per material, minimum over all materials, first
// minimum in catalog order wins ties. A material with no stock entry counts
// as zero stock, never as infinite capacity.
func Compute(materials []catalogEntity.Material, stockByMaterial map[uint]float64) Report {
	report := Report{
		Materials:  make([]MaterialRounds, 0, len(materials)),
		ComputedAt: time.Now(),
	}

	first := true
	for _, m := range materials {
		stock := stockByMaterial[m.MaterialID]
		var rounds int64
		if m.PerRoundKg > 0 && stock > 0 {
			rounds = int64(math.Floor(stock / m.PerRoundKg))
		}
		report.Materials = append(report.Materials, MaterialRounds{
			Kind:       m.Kind,
			Name:       m.Name,
			StockKg:    stock,
			PerRoundKg: m.PerRoundKg,
			Rounds:     rounds,
		})
		if m.PerRoundKg <= 0 {
			// consumes nothing per round, cannot be the bottleneck
			continue
		}
		if first || rounds < report.MaxRounds {
			report.MaxRounds = rounds
			report.LimitingMaterial = m.Kind
			first = false
		}
	}
	if first {
		report.MaxRounds = 0
	}

	report.TotalBricks = report.MaxRounds * BricksPerRound
	report.TotalRoundCost = CostPerRound.Mul(decimal.NewFromInt(report.MaxRounds))
	report.TotalProductionCost = CostPerBrick.Mul(decimal.NewFromInt(report.TotalBricks))
	return report
}

// Calculator loads catalog and ledger state and computes capacity reports.
type Calculator struct {
	materials *catalogRepo.MaterialRepository
	stock     *inventoryRepo.StockRepository
}

func NewCalculator(db *gorm.DB) *Calculator {
	return &Calculator{
		materials: catalogRepo.NewMaterialRepository(db),
		stock:     inventoryRepo.NewStockRepository(db),
	}
}

// Report computes capacity from the current ledger. Read-only.
func (c *Calculator) Report() (*Report, error) {
	materials, err := c.materials.List()
	if err != nil {
		return nil, err
	}
	entries, err := c.stock.List()
	if err != nil {
		return nil, err
	}
	stockByMaterial := make(map[uint]float64, len(entries))
	for _, e := range entries {
		stockByMaterial[e.MaterialID] = e.Quantity
	}
	report := Compute(materials, stockByMaterial)
	return &report, nil
}
