package production

import (
	"time"

	"gorm.io/datatypes"
)

// ProductionEntry represents the production_entry table: one immutable row per
// production run. Consumption rows hold the operator-recorded actuals that
// were debited from stock — not the catalog's per-round projection constants.
type ProductionEntry struct {
	EntryID      uint           `gorm:"column:entry_id;primaryKey;autoIncrement" json:"entry_id"`
	ProducedOn   datatypes.Date `gorm:"column:produced_on;not null;index" json:"produced_on"`
	Rounds       int            `gorm:"column:rounds;not null" json:"rounds"`
	Bricks       int            `gorm:"column:bricks;not null" json:"bricks"`
	CreatedBy    string         `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Consumptions []Consumption  `gorm:"foreignKey:EntryID;references:EntryID" json:"consumptions"`
}

func (ProductionEntry) TableName() string {
	return "production_entry"
}

// Consumption represents the production_consumption table: kg of one material
// consumed by one production run.
type Consumption struct {
	ConsumptionID uint    `gorm:"column:consumption_id;primaryKey;autoIncrement" json:"consumption_id,omitempty"`
	EntryID       uint    `gorm:"column:entry_id;not null;index" json:"entry_id"`
	MaterialID    uint    `gorm:"column:material_id;not null" json:"material_id"`
	QuantityKg    float64 `gorm:"column:quantity_kg;type:decimal(12,3);not null" json:"quantity_kg"`
}

func (Consumption) TableName() string {
	return "production_consumption"
}
