package procurement

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Procurement represents the procurement table. Lifecycle: created unapproved
// (rate and total null) -> approved exactly once (rate supplied, total derived,
// stock credited) -> terminal. Never re-approved or reversed here.
type Procurement struct {
	ProcurementID uint                `gorm:"column:procurement_id;primaryKey;autoIncrement" json:"procurement_id"`
	MaterialID    uint                `gorm:"column:material_id;not null;index" json:"material_id"`
	VendorID      uint                `gorm:"column:vendor_id;not null;index" json:"vendor_id"`
	Quantity      float64             `gorm:"column:quantity;type:decimal(12,3);not null" json:"quantity"`
	ProcuredOn    datatypes.Date      `gorm:"column:procured_on;not null;index" json:"procured_on"`
	Approved      bool                `gorm:"column:approved;not null;default:false;index" json:"approved"`
	RatePerUnit   decimal.NullDecimal `gorm:"column:rate_per_unit;type:decimal(12,2)" json:"rate_per_unit"`
	TotalPrice    decimal.NullDecimal `gorm:"column:total_price;type:decimal(12,2)" json:"total_price"`
	CreatedBy     string              `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ApprovedAt    *time.Time          `gorm:"column:approved_at" json:"approved_at,omitempty"`
}

func (Procurement) TableName() string {
	return "procurement"
}
