package inventory

import "time"

// StockEntry represents the stock_entry table: one row per material with the
// current on-hand quantity. Quantity never goes negative; version increments
// on every mutation and backs the compare-and-swap on Set.
type StockEntry struct {
	EntryID    uint      `gorm:"column:entry_id;primaryKey;autoIncrement" json:"entry_id,omitempty"`
	MaterialID uint      `gorm:"column:material_id;not null;uniqueIndex" json:"material_id"`
	Quantity   float64   `gorm:"column:quantity;type:decimal(12,3);not null;default:0" json:"quantity"`
	Version    uint64    `gorm:"column:version;not null;default:0" json:"version"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StockEntry) TableName() string {
	return "stock_entry"
}
