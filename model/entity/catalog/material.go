package catalog

import "time"

// Kind is the typed key for a raw material. Resolved once at catalog load,
// never inferred from display names.
type Kind string

const (
	KindCement        Kind = "cement"
	KindFlyAsh        Kind = "fly_ash"
	KindWetAsh        Kind = "wet_ash"
	KindMarblePowder  Kind = "marble_powder"
	KindCrusherPowder Kind = "crusher_powder"
)

// KeyBricks is the tracked-quantity key for finished goods in adjustments.
// It is not a material and never appears in the material table.
const KeyBricks = "bricks"

// Material represents the material table. Reference data: created by catalog
// seeding, never deleted while referenced by stock or procurement rows.
type Material struct {
	MaterialID uint      `gorm:"column:material_id;primaryKey;autoIncrement" json:"material_id"`
	Kind       Kind      `gorm:"column:kind;type:varchar(32);not null;uniqueIndex" json:"kind"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Unit       string    `gorm:"column:unit;type:varchar(16);not null;default:'kg'" json:"unit"`
	PerRoundKg float64   `gorm:"column:per_round_kg;type:decimal(12,3);not null" json:"per_round_kg"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Material) TableName() string {
	return "material"
}

// DefaultCatalog is the fixed five-material catalog of the brick plant.
// SortOrder is the declaration order and decides limiting-material tie-breaks.
var DefaultCatalog = []Material{
	{Kind: KindCement, Name: "Cement", Unit: "kg", PerRoundKg: 25, SortOrder: 1},
	{Kind: KindFlyAsh, Name: "Fly Ash", Unit: "kg", PerRoundKg: 110, SortOrder: 2},
	{Kind: KindWetAsh, Name: "Wet Ash", Unit: "kg", PerRoundKg: 90, SortOrder: 3},
	{Kind: KindMarblePowder, Name: "Marble Powder", Unit: "kg", PerRoundKg: 90, SortOrder: 4},
	{Kind: KindCrusherPowder, Name: "Crusher Powder", Unit: "kg", PerRoundKg: 1800, SortOrder: 5},
}
