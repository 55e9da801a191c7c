package inventory

import "time"

// FinishedGoodsID is the single logical finished-goods row.
const FinishedGoodsID uint = 1

// FinishedGoods represents the finished_goods table: ready brick count.
// Credited by production, overwritten by adjustments; sales fulfillment
// debits it outside this subsystem.
type FinishedGoods struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Bricks    float64   `gorm:"column:bricks;type:decimal(12,3);not null;default:0" json:"bricks"`
	Version   uint64    `gorm:"column:version;not null;default:0" json:"version"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FinishedGoods) TableName() string {
	return "finished_goods"
}
