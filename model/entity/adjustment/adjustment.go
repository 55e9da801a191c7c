package adjustment

import (
	"time"

	"gorm.io/datatypes"
)

// Adjustment represents the adjustment table: an immutable audit record of a
// manual stock correction. Lines snapshot the ledger value at creation time
// (actual) next to the operator-supplied corrected value (adjusted); the
// signed delta is derivable and not stored. Never edited after creation — a
// further correction is a new Adjustment against the then-current ledger.
type Adjustment struct {
	AdjustmentID uint           `gorm:"column:adjustment_id;primaryKey;autoIncrement" json:"adjustment_id"`
	AdjustedOn   datatypes.Date `gorm:"column:adjusted_on;not null;index" json:"adjusted_on"`
	Reason       string         `gorm:"column:reason;type:text" json:"reason"`
	CreatedBy    string         `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Lines        []Line         `gorm:"foreignKey:AdjustmentID;references:AdjustmentID" json:"lines"`
}

func (Adjustment) TableName() string {
	return "adjustment"
}

// Line represents the adjustment_line table: one tracked quantity per row.
// TrackedKey is a material kind or catalog.KeyBricks for finished goods.
type Line struct {
	LineID       uint    `gorm:"column:line_id;primaryKey;autoIncrement" json:"line_id,omitempty"`
	AdjustmentID uint    `gorm:"column:adjustment_id;not null;index" json:"adjustment_id"`
	TrackedKey   string  `gorm:"column:tracked_key;type:varchar(32);not null" json:"tracked_key"`
	ActualQty    float64 `gorm:"column:actual_qty;type:decimal(12,3);not null" json:"actual_qty"`
	AdjustedQty  float64 `gorm:"column:adjusted_qty;type:decimal(12,3);not null" json:"adjusted_qty"`
}

func (Line) TableName() string {
	return "adjustment_line"
}

// Delta returns the signed correction applied to the ledger for this line.
func (l Line) Delta() float64 {
	return l.AdjustedQty - l.ActualQty
}
